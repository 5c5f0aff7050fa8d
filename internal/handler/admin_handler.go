package handler

import (
	"net/http"

	"Volunteer_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListUsers 用户列表，?q= 按用户名/姓名模糊搜
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": users})
}

func (h *AdminHandler) Warn(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, err := h.svc.Warn(principalFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "warnings": user.WarningsCount, "blocked": user.IsBlocked})
}

func (h *AdminHandler) ToggleBlock(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	blocked, err := h.svc.ToggleBlock(principalFrom(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "blocked": blocked})
}

func (h *AdminHandler) ChangeRole(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.ChangeRole(principalFrom(c), id, req.Role); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *AdminHandler) AddUniversity(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	uni, err := h.svc.AddUniversity(req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "university": uni})
}

// DeleteUniversity 返回被解绑学校的用户数
func (h *AdminHandler) DeleteUniversity(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	detached, err := h.svc.DeleteUniversity(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "detached_users": detached})
}

func (h *AdminHandler) ListUniversities(c *gin.Context) {
	unis, err := h.svc.ListUniversities()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": unis})
}
