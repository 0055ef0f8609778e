package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/editor"
	"resumeBuilder/internal/generator"
	"resumeBuilder/internal/notify"
)

type generationResponse struct {
	Error        string              `json:"error,omitempty"`
	Notification notify.Notification `json:"notification"`
	Session      sessionResponse     `json:"session"`
}

type generateFunc func(ctx context.Context, id string) (editor.Session, notify.Notification, error)

func (h *SessionHandler) GenerateSummary(c *gin.Context) {
	h.generate(c, h.editor.GenerateSummary)
}

func (h *SessionHandler) ImproveSummary(c *gin.Context) {
	h.generate(c, h.editor.ImproveSummary)
}

func (h *SessionHandler) GenerateExperience(c *gin.Context) {
	entryID := c.Param("id")
	h.generate(c, func(ctx context.Context, id string) (editor.Session, notify.Notification, error) {
		return h.editor.GenerateExperience(ctx, id, entryID)
	})
}

func (h *SessionHandler) ImproveExperience(c *gin.Context) {
	entryID := c.Param("id")
	h.generate(c, func(ctx context.Context, id string) (editor.Session, notify.Notification, error) {
		return h.editor.ImproveExperience(ctx, id, entryID)
	})
}

func (h *SessionHandler) GenerateSkills(c *gin.Context) {
	h.generate(c, h.editor.GenerateSkills)
}

// generate 执行一次生成并按结果映射状态码：
// 缺少信息 422，已在生成中 409，上游失败 502。
func (h *SessionHandler) generate(c *gin.Context, run generateFunc) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	sess, n, err := run(c.Request.Context(), id)

	var status int
	switch {
	case err == nil:
		status = http.StatusOK
	case errors.Is(err, generator.ErrMissingInformation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, generator.ErrAlreadyPending):
		status = http.StatusConflict
	case errors.Is(err, generator.ErrGenerationFailed):
		middleware.LoggerFromContext(c).Warn("generation failed", slog.Any("error", err))
		status = http.StatusBadGateway
	default:
		writeEditorError(c, err)
		return
	}

	resp := generationResponse{Notification: n, Session: h.view(c, id, sess)}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(status, resp)
}
