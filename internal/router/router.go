package router

import (
	"Volunteer_Hub/internal/config"
	"Volunteer_Hub/internal/handler"
	"Volunteer_Hub/internal/middleware"
	"Volunteer_Hub/internal/model"
	"Volunteer_Hub/internal/pkg"
	"Volunteer_Hub/internal/repository/mysql"
	"Volunteer_Hub/internal/repository/redis"
	"Volunteer_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(cfg *config.Config, store *pkg.MediaStore) *gin.Engine {
	r := gin.Default()

	// 仓储
	users := &mysql.UserRepository{DB: mysql.DB}
	unis := &mysql.UniversityRepository{DB: mysql.DB}
	opps := &mysql.OpportunityRepository{DB: mysql.DB}
	apps := &mysql.ApplicationRepository{DB: mysql.DB}
	reports := &mysql.ReportRepository{DB: mysql.DB}
	outbox := &mysql.OutboxRepository{DB: mysql.DB}
	sessions := &redis.SessionRepository{}

	// 通知只在配了 SMTP 时启用
	var notifier service.Notifier
	if cfg.SMTP.Host != "" {
		notifier = service.NewEmailNotifier(cfg.SMTP)
	}

	audit := service.NewAuditService(outbox)

	userSvc := service.NewUserService(users, apps, reports, unis, sessions)
	oppSvc := service.NewOpportunityService(opps)
	appSvc := service.NewApplicationService(apps, opps, users, notifier, audit)
	repSvc := service.NewReportService(reports, apps, opps, store, audit)
	adminSvc := service.NewAdminService(users, unis, sessions, audit)

	user := handler.NewUserHandler(userSvc)
	opp := handler.NewOpportunityHandler(oppSvc)
	app := handler.NewApplicationHandler(appSvc)
	rep := handler.NewReportHandler(repSvc, store)
	admin := handler.NewAdminHandler(adminSvc)

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
		authGroup.GET("/profile", user.Profile)
		authGroup.PUT("/profile", user.UpdateProfile)
		authGroup.POST("/subscribe", user.Subscribe)
	}

	// 活动/任务：列表与详情公开，报名和交报告只开放给志愿者
	oppGroup := r.Group("/api/opportunities")
	{
		oppGroup.GET("", opp.List)
		oppGroup.GET("/:id", opp.Detail)
	}
	volGroup := r.Group("/api/opportunities")
	volGroup.Use(middleware.AuthMiddleware(), middleware.RequireRoles(model.RoleVolunteer))
	{
		volGroup.POST("/:id/apply", app.Apply)
		volGroup.POST("/:id/report", rep.Submit)
	}

	// 管理端：admin 全量，organizer 只对自己创建的内容有效
	manageGroup := r.Group("/api/manage")
	manageGroup.Use(middleware.AuthMiddleware(), middleware.RequireRoles(model.RoleAdmin, model.RoleOrganizer))
	{
		manageGroup.POST("/opportunities", opp.Create)
		manageGroup.PUT("/opportunities/:id", opp.Update)
		manageGroup.DELETE("/opportunities/:id", opp.Delete)

		manageGroup.GET("/applications", app.Moderation)
		manageGroup.POST("/applications/:id/approve", app.Approve)
		manageGroup.POST("/applications/:id/reject", app.Reject)

		manageGroup.GET("/reports", rep.Moderation)
		manageGroup.POST("/reports/:id/approve", rep.Approve)
		manageGroup.POST("/reports/:id/reject", rep.Reject)
		manageGroup.DELETE("/reports/:id/media", rep.DeleteMedia)
	}

	// 管理员专属
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.RequireRoles(model.RoleAdmin))
	{
		adminGroup.GET("/users", admin.ListUsers)
		adminGroup.POST("/users/:id/warn", admin.Warn)
		adminGroup.POST("/users/:id/toggle-block", admin.ToggleBlock)
		adminGroup.PUT("/users/:id/role", admin.ChangeRole)

		adminGroup.GET("/universities", admin.ListUniversities)
		adminGroup.POST("/universities", admin.AddUniversity)
		adminGroup.DELETE("/universities/:id", admin.DeleteUniversity)
	}

	// 附件下载走权限校验，不直接暴露静态目录
	uploadGroup := r.Group("/api/uploads")
	uploadGroup.Use(middleware.AuthMiddleware())
	{
		uploadGroup.GET("/:name", rep.Download)
	}

	return r
}
