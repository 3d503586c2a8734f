package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/config"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/api/handler"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/api/middleware"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/jwt"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1（全部需要认证）──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr))
	{
		// 成绩单模块
		transcript := v1.Group("/transcript")
		{
			transcript.GET("", h.Transcript.Get)
			transcript.POST("/upload",
				middleware.RateLimit(rdb, cfg.Server.UploadRatePerIP, time.Minute),
				middleware.BodyLimit(int64(cfg.Server.UploadLimitMB)<<20),
				h.Transcript.Upload)
			transcript.POST("/attempts", h.Transcript.AddAttempt)
			transcript.DELETE("/attempts/:id", h.Transcript.DeleteAttempt)
			transcript.PUT("/attempts/:id/grade", h.Transcript.SetGrade)
			transcript.PUT("/attempts/:id/session", h.Transcript.SetSession)
			transcript.POST("/dirty", h.Transcript.CheckDirty)
			transcript.DELETE("", h.Transcript.Delete)
		}

		// 培养方案模块
		plan := v1.Group("/plan")
		{
			plan.GET("/catalog", h.Plan.Catalog)
			plan.POST("", h.Plan.Select)
			plan.GET("", h.Plan.Get)
			plan.DELETE("", h.Plan.Delete)
		}

		// 评估模块
		evaluation := v1.Group("/evaluation")
		{
			evaluation.GET("/overlay", h.Evaluation.Overlay)
			evaluation.GET("/progress", h.Evaluation.Progress)
			evaluation.GET("/courses/:code", h.Evaluation.CheckCourse)
		}

		// 开课场次模块
		lessons := v1.Group("/lessons")
		{
			lessons.GET("", h.Lesson.List)
			lessons.GET("/selected", h.Lesson.Selected)
			lessons.GET("/export/ics", h.Lesson.ExportICS)
		}

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/progress", h.Export.ExportProgress)
		}
	}

	return r
}
