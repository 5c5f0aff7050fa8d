package middleware

import (
	"net/http"
	"strings"

	"Volunteer_Hub/internal/pkg"
	"Volunteer_Hub/internal/repository/mysql"
	"Volunteer_Hub/internal/repository/redis"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "role"
)

func AuthMiddleware() gin.HandlerFunc {
	sessions := &redis.SessionRepository{}
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid authorization format"})
			c.Abort()
			return
		}

		tokenStr := parts[1]
		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			c.Abort()
			return
		}

		// redis 校验是否是当前有效会话
		originToken, err := sessions.Get(claims.UserID)
		if err != nil || originToken != tokenStr {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "session expired, please login again"})
			c.Abort()
			return
		}

		// 封禁用户等同未认证，顺手作废会话
		users := &mysql.UserRepository{DB: mysql.DB}
		user, err := users.FindByID(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
			c.Abort()
			return
		}
		if user.IsBlocked {
			_ = sessions.Delete(claims.UserID)
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "account blocked"})
			c.Abort()
			return
		}

		// 校验通过后顺延过期时间
		if err = sessions.Extend(claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": err.Error()})
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextRoleKey, user.Role)
		c.Next()
	}
}

// RequireRoles 角色闸门：已认证但角色不符给 403
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		roleAny, ok := c.Get(ContextRoleKey)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
			c.Abort()
			return
		}
		if _, ok := allowed[roleAny.(string)]; !ok {
			c.JSON(http.StatusForbidden, gin.H{"msg": "insufficient role"})
			c.Abort()
			return
		}
		c.Next()
	}
}
