package handler

import (
	"net/http"
	"time"

	"Volunteer_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type OpportunityHandler struct {
	svc *service.OpportunityService
}

func NewOpportunityHandler(svc *service.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{svc: svc}
}

// OpportunityReq 创建/编辑活动或任务的请求体
type OpportunityReq struct {
	Kind            string     `json:"kind"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Link            string     `json:"link"`
	Points          int64      `json:"points"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	MaxParticipants int        `json:"max_participants"`
}

func (r *OpportunityReq) input() service.OpportunityInput {
	return service.OpportunityInput{
		Name:            r.Name,
		Description:     r.Description,
		Link:            r.Link,
		Points:          r.Points,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		MaxParticipants: r.MaxParticipants,
	}
}

func (h *OpportunityHandler) Create(c *gin.Context) {
	var req OpportunityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	opp, err := h.svc.Create(principalFrom(c), req.Kind, req.input())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok", "opportunity": opp})
}

func (h *OpportunityHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req OpportunityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	opp, err := h.svc.Update(principalFrom(c), id, req.input())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok", "opportunity": opp})
}

// Delete 级联删除名下的报名与报告
func (h *OpportunityHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(principalFrom(c), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// List 公开列表，?kind=event|task 过滤
func (h *OpportunityHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Query("kind"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *OpportunityHandler) Detail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	opp, applicants, err := h.svc.Detail(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"opportunity": opp, "applicant_count": applicants})
}
