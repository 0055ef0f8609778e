package api

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/preview"
	"resumeBuilder/internal/resume"
)

const maxImportBytes = 1 << 20

// Preview 返回与 PDF 导出相同的 HTML。
func (h *SessionHandler) Preview(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	sess, err := h.editor.Get(c.Request.Context(), id)
	if err != nil {
		writeEditorError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := preview.WriteHTML(&buf, preview.Render(sess.Record)); err != nil {
		middleware.LoggerFromContext(c).Error("render preview failed", slog.Any("error", err))
		Internal(c, "failed to render preview")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *SessionHandler) PreviewJSON(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	sess, err := h.editor.Get(c.Request.Context(), id)
	if err != nil {
		writeEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview.Render(sess.Record))
}

// ImportRecord 用校验通过的 JSON 整体替换会话中的简历。
func (h *SessionHandler) ImportRecord(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(c, http.StatusRequestEntityTooLarge, "record too large")
			return
		}
		BadRequest(c, "failed to read body")
		return
	}
	rec, err := resume.DecodeRecord(data)
	if err != nil {
		writeEditorError(c, err)
		return
	}
	sess, err := h.editor.ReplaceRecord(c.Request.Context(), id, rec)
	h.reply(c, id, sess, err)
}

func (h *SessionHandler) ExportRecord(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	sess, err := h.editor.Get(c.Request.Context(), id)
	if err != nil {
		writeEditorError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="resume.json"`)
	c.JSON(http.StatusOK, sess.Record)
}
