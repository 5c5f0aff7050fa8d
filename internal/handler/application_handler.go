package handler

import (
	"net/http"

	"Volunteer_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	svc *service.ApplicationService
}

func NewApplicationHandler(svc *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

// Apply 志愿者报名，:id 是活动/任务 id
func (h *ApplicationHandler) Apply(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		NeedsRelease        bool `json:"needs_release"`
		NeedsVolunteerHours bool `json:"needs_volunteer_hours"`
	}
	// 请求体可空
	_ = c.ShouldBindJSON(&req)

	app, err := h.svc.Submit(id, principalFrom(c), req.NeedsRelease, req.NeedsVolunteerHours)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok", "application": app})
}

// Moderation 审核列表，?status=pending|approved|rejected|all
func (h *ApplicationHandler) Moderation(c *gin.Context) {
	view, err := h.svc.Moderation(principalFrom(c), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ApplicationHandler) Approve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Approve(id, principalFrom(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "application approved"})
}

func (h *ApplicationHandler) Reject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Reject(id, principalFrom(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "application rejected"})
}
