package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"brian-crafts/backend/config"
	"brian-crafts/backend/internal/api/handler"
	"brian-crafts/backend/internal/api/middleware"
	"brian-crafts/backend/pkg/jwt"
	"brian-crafts/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，验证码接口限流防刷）
		auth := v1.Group("/auth")
		{
			auth.POST("/otp", middleware.RateLimit(rdb, 5, time.Minute), h.Auth.RequestOTP)
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 考勤模块
			attendance := authorized.Group("/attendance")
			{
				attendance.POST("/sign", h.Attendance.Sign) // 代签权限在 Service 层判定
				attendance.POST("/approve", middleware.RoleAuth("team_lead", "admin"), h.Attendance.Approve)
				attendance.GET("/today", middleware.RoleAuth("team_lead", "admin"), h.Attendance.ListToday)
			}

			// 报表模块
			reports := authorized.Group("/reports")
			{
				reports.GET("/individual/:user_id", h.Report.Individual) // 本人或管理角色（Service 层鉴权）
				reports.GET("/team", middleware.RoleAuth("team_lead", "admin"), h.Report.Team)
			}

			// 导出模块
			export := authorized.Group("/export")
			export.Use(middleware.RoleAuth("team_lead", "admin"))
			{
				export.GET("/attendance.csv", h.Export.CSV)
				export.GET("/attendance.xlsx", h.Export.XLSX)
				export.GET("/attendance.pdf", h.Export.PDF)
			}

			// 用户模块
			users := authorized.Group("/users")
			{
				users.POST("", middleware.RoleAuth("admin"), h.User.CreateUser)
				users.GET("", middleware.RoleAuth("team_lead", "admin"), h.User.ListUsers)
			}

			// 工种组模块
			jobGroups := authorized.Group("/job-groups")
			{
				jobGroups.POST("", middleware.RoleAuth("admin"), h.JobGroup.CreateJobGroup)
				jobGroups.GET("", middleware.RoleAuth("team_lead", "admin"), h.JobGroup.ListJobGroups)
			}

			// 安全文档模块
			safetyDocs := authorized.Group("/safety-docs")
			{
				safetyDocs.POST("", middleware.RoleAuth("team_lead", "admin"), h.SafetyDocument.Create)
				safetyDocs.GET("/today", h.SafetyDocument.GetToday)
			}
		}
	}

	return r
}
