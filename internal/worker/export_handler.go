package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"resumeBuilder/internal/database"
	"resumeBuilder/internal/errcode"
	"resumeBuilder/internal/notify"
	"resumeBuilder/internal/preview"
	"resumeBuilder/internal/storage"
	"resumeBuilder/internal/tasks"
)

// PDFRenderer 把 HTML 打印成 PDF。
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ObjectUploader 保存生成的文件。
type ObjectUploader interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
}

// ExportHandler 负责消费 PDF 导出任务。
type ExportHandler struct {
	exports   *database.ExportRepository
	renderer  PDFRenderer
	storage   ObjectUploader
	publisher notify.Publisher
	logger    *slog.Logger
}

func NewExportHandler(
	exports *database.ExportRepository,
	renderer PDFRenderer,
	storage ObjectUploader,
	publisher notify.Publisher,
	logger *slog.Logger,
) *ExportHandler {
	return &ExportHandler{
		exports:   exports,
		renderer:  renderer,
		storage:   storage,
		publisher: publisher,
		logger:    logger,
	}
}

// ProcessTask 实现 asynq.Handler。
func (h *ExportHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PDFExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.String("export_id", payload.ExportID),
		slog.String("session_id", payload.SessionID),
	)
	log.Info("starting pdf export task")

	exp, err := h.exports.Get(ctx, payload.ExportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("export not found, skipping task")
			return nil
		}
		log.Error("query export failed", slog.Any("error", err))
		return err
	}
	if exp.Status == database.ExportStatusCompleted {
		log.Info("export already completed, skipping task")
		return nil
	}

	defer func() {
		if retErr == nil {
			return
		}
		if !errors.Is(retErr, asynq.SkipRetry) && !isFinalAsynqAttempt(ctx) {
			return
		}
		// 最后一次尝试失败：落库并通知前端。
		ctx := context.WithoutCancel(ctx)
		reason := strings.TrimSpace(retErr.Error())
		if err := h.exports.MarkFailed(ctx, exp.ExportID, reason); err != nil {
			log.Error("mark export failed", slog.Any("error", err))
		}
		n := notify.Notification{
			Kind:          notify.KindExportFailed,
			Title:         "Export Failed",
			Description:   "Failed to export PDF. Please try again.",
			Code:          errcode.ExportFailed,
			ExportID:      exp.ExportID,
			CorrelationID: payload.CorrelationID,
		}
		if err := h.publisher.Publish(ctx, exp.SessionID, n); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	rec, err := exp.Record()
	if err != nil {
		log.Error("decode export record failed", slog.Any("error", err))
		return fmt.Errorf("decode export record: %v: %w", err, asynq.SkipRetry)
	}

	html, err := preview.HTML(preview.Render(rec))
	if err != nil {
		log.Error("render preview html failed", slog.Any("error", err))
		return err
	}

	pdfBytes, err := h.renderer.RenderPDF(ctx, html)
	if err != nil {
		log.Error("render pdf failed", slog.Any("error", err))
		return err
	}

	objectName := storage.ExportObjectKey(exp.SessionID, exp.ExportID)
	if err := h.storage.UploadFile(ctx, objectName, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"); err != nil {
		log.Error("upload pdf to minio failed", slog.Any("error", err))
		return err
	}

	if err := h.exports.MarkCompleted(ctx, exp.ExportID, objectName); err != nil {
		log.Error("update export failed", slog.Any("error", err))
		return err
	}

	n := notify.Notification{
		Kind:          notify.KindExportCompleted,
		Title:         "PDF Ready",
		Description:   "Your resume PDF is ready to download.",
		Code:          errcode.OK,
		ExportID:      exp.ExportID,
		CorrelationID: payload.CorrelationID,
	}
	if err := h.publisher.Publish(ctx, exp.SessionID, n); err != nil {
		// PDF 已经可用，通知失败不重试任务。
		log.Error("publish export notification failed", slog.Any("error", err))
	}

	log.Info("pdf export task completed", slog.Int("bytes", len(pdfBytes)))
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
