package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/auth"
	"resumeBuilder/internal/completion"
	"resumeBuilder/internal/database"
	"resumeBuilder/internal/editor"
)

const sessionsPerHour = 60

// Deps 汇总路由所需的服务。Snapshots、Exports、Redis、Completion 可为 nil，对应路由不注册。
type Deps struct {
	Editor         *editor.Service
	Auth           *auth.AuthService
	Snapshots      *database.SnapshotRepository
	Exports        *database.ExportRepository
	Queue          TaskEnqueuer
	Storage        LinkSigner
	ExportMaxRetry int
	Redis          *redis.Client
	Completion     *completion.Service
	AllowedOrigins []string
	Logger         *slog.Logger
}

// RegisterRoutes 注册 /v1 下的全部路由。
func RegisterRoutes(router *gin.Engine, deps Deps) {
	sessionHandler := NewSessionHandler(deps.Editor, deps.Auth)
	authMiddleware := middleware.SessionAuthMiddleware(deps.Auth)

	v1 := router.Group("/v1")
	{
		if deps.Redis != nil {
			wsHandler := NewWsHandler(deps.Redis, deps.Auth, deps.Logger, deps.AllowedOrigins)
			v1.GET("/ws", wsHandler.HandleConnection)
		}
		if deps.Completion != nil {
			registerCompletion(v1, deps.Completion)
		}

		if deps.Redis != nil {
			v1.POST("/sessions", sessionCreateLimit(deps.Redis, sessionsPerHour, time.Hour), sessionHandler.CreateSession)
		} else {
			v1.POST("/sessions", sessionHandler.CreateSession)
		}

		s := v1.Group("/session")
		s.Use(authMiddleware)
		{
			s.GET("", sessionHandler.GetSession)
			s.PUT("/tab", sessionHandler.SetTab)

			s.PATCH("/personal", sessionHandler.UpdatePersonal)
			s.POST("/personal/summary/generate", sessionHandler.GenerateSummary)
			s.POST("/personal/summary/improve", sessionHandler.ImproveSummary)

			s.POST("/experience", sessionHandler.AddExperience)
			s.PATCH("/experience/:id", sessionHandler.UpdateExperience)
			s.DELETE("/experience/:id", sessionHandler.RemoveExperience)
			s.POST("/experience/:id/generate", sessionHandler.GenerateExperience)
			s.POST("/experience/:id/improve", sessionHandler.ImproveExperience)

			s.POST("/education", sessionHandler.AddEducation)
			s.PATCH("/education/:id", sessionHandler.UpdateEducation)
			s.DELETE("/education/:id", sessionHandler.RemoveEducation)

			s.POST("/skills", sessionHandler.AddSkill)
			s.PATCH("/skills/:id", sessionHandler.UpdateSkill)
			s.DELETE("/skills/:id", sessionHandler.RemoveSkill)
			s.PUT("/skills/profession", sessionHandler.SetProfession)
			s.POST("/skills/generate", sessionHandler.GenerateSkills)

			s.GET("/preview", sessionHandler.Preview)
			s.GET("/preview.json", sessionHandler.PreviewJSON)
			s.POST("/import", sessionHandler.ImportRecord)
			s.GET("/export.json", sessionHandler.ExportRecord)

			if deps.Snapshots != nil {
				snapshotHandler := NewSnapshotHandler(deps.Snapshots, sessionHandler)
				s.POST("/snapshots", snapshotHandler.CreateSnapshot)
				s.GET("/snapshots", snapshotHandler.ListSnapshots)
				s.POST("/snapshots/:id/restore", snapshotHandler.RestoreSnapshot)
				s.DELETE("/snapshots/:id", snapshotHandler.DeleteSnapshot)
			}

			if deps.Exports != nil && deps.Queue != nil && deps.Storage != nil {
				pdfHandler := NewPDFHandler(deps.Exports, sessionHandler, deps.Queue, deps.Storage, deps.ExportMaxRetry)
				s.POST("/pdf", pdfHandler.EnqueueExport)
				s.GET("/pdf/:exportID/link", pdfHandler.DownloadLink)
			}
		}
	}
}
