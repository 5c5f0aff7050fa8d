package handler

import (
	"errors"
	"net/http"
	"strconv"

	"Volunteer_Hub/internal/middleware"
	"Volunteer_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

// principalFrom 认证中间件之后才可用
func principalFrom(c *gin.Context) service.Principal {
	uid, _ := c.Get(middleware.ContextUserIDKey)
	role, _ := c.Get(middleware.ContextRoleKey)
	return service.Principal{ID: uid.(uint64), Role: role.(string)}
}

func idParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid id"})
		return 0, false
	}
	return id, true
}

// fail 业务错误到状态码的统一映射
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrDuplicateApplication),
		errors.Is(err, service.ErrDuplicateReport),
		errors.Is(err, service.ErrAlreadyProcessed),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrUniversityExists),
		errors.Is(err, service.ErrSelfModeration),
		errors.Is(err, service.ErrLastAdmin):
		c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
	case errors.Is(err, service.ErrNoApplication),
		errors.Is(err, service.ErrApplicationNotApproved):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"msg": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
	}
}
