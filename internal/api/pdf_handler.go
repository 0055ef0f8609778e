package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/database"
	"resumeBuilder/internal/tasks"
)

const downloadLinkTTL = 5 * time.Minute

// TaskEnqueuer 由 *asynq.Client 实现。
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// LinkSigner 为导出文件签发限时下载链接。
type LinkSigner interface {
	PresignDownload(ctx context.Context, objectKey string, ttl time.Duration, filename string) (string, error)
}

// PDFHandler 负责 PDF 导出任务的入队与下载链接。
type PDFHandler struct {
	exports  *database.ExportRepository
	sessions *SessionHandler
	queue    TaskEnqueuer
	signer   LinkSigner
	maxRetry int
}

func NewPDFHandler(exports *database.ExportRepository, sessions *SessionHandler, queue TaskEnqueuer, signer LinkSigner, maxRetry int) *PDFHandler {
	return &PDFHandler{exports: exports, sessions: sessions, queue: queue, signer: signer, maxRetry: maxRetry}
}

// EnqueueExport 固定当前简历内容并提交导出任务，完成后通过 WebSocket 通知。
func (h *PDFHandler) EnqueueExport(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	ctx := c.Request.Context()
	log := middleware.LoggerFromContext(c)

	sess, err := h.sessions.editor.Get(ctx, id)
	if err != nil {
		writeEditorError(c, err)
		return
	}
	exp, err := h.exports.Create(ctx, id, sess.Record)
	if err != nil {
		log.Error("create export failed", slog.Any("error", err))
		Internal(c, "failed to enqueue pdf export")
		return
	}

	task, err := tasks.NewPDFExportTask(exp.ExportID, id, middleware.GetCorrelationID(c))
	if err != nil {
		log.Error("build export task failed", slog.Any("error", err))
		Internal(c, "failed to enqueue pdf export")
		return
	}
	info, err := h.queue.EnqueueContext(ctx, task, asynq.MaxRetry(h.maxRetry))
	if err != nil {
		log.Error("enqueue export task failed", slog.Any("error", err))
		if merr := h.exports.MarkFailed(context.WithoutCancel(ctx), exp.ExportID, "enqueue failed"); merr != nil {
			log.Error("mark export failed", slog.Any("error", merr))
		}
		Internal(c, "failed to enqueue pdf export")
		return
	}

	log.Info("pdf export enqueued", slog.String("export_id", exp.ExportID), slog.String("task_id", info.ID))
	c.JSON(http.StatusAccepted, gin.H{"export_id": exp.ExportID, "status": exp.Status})
}

// DownloadLink 返回已完成导出的限时下载链接。
func (h *PDFHandler) DownloadLink(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	exp, err := h.exports.GetForSession(c.Request.Context(), id, c.Param("exportID"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "export not found")
			return
		}
		middleware.LoggerFromContext(c).Error("load export failed", slog.Any("error", err))
		Internal(c, "failed to load export")
		return
	}

	switch exp.Status {
	case database.ExportStatusCompleted:
	case database.ExportStatusFailed:
		c.JSON(http.StatusConflict, gin.H{"error": "pdf export failed", "status": exp.Status})
		return
	default:
		c.JSON(http.StatusConflict, gin.H{"error": "pdf not ready", "status": exp.Status})
		return
	}

	url, err := h.signer.PresignDownload(c.Request.Context(), exp.ObjectKey, downloadLinkTTL, "resume.pdf")
	if err != nil {
		middleware.LoggerFromContext(c).Error("presign download failed", slog.Any("error", err))
		Internal(c, "failed to generate download link")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":        url,
		"expires_in": int64(downloadLinkTTL.Seconds()),
	})
}
