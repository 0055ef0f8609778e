package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/auth"
	"resumeBuilder/internal/editor"
	"resumeBuilder/internal/resume"
)

// SessionHandler 负责编辑会话的创建、读取与各分区编辑。
type SessionHandler struct {
	editor      *editor.Service
	authService *auth.AuthService
}

func NewSessionHandler(editorService *editor.Service, authService *auth.AuthService) *SessionHandler {
	return &SessionHandler{editor: editorService, authService: authService}
}

// sessionResponse 在会话之外附带正在生成中的字段，前端据此显示 loading；
// Empty 只包含当前为空的列表分区及其引导文案。
type sessionResponse struct {
	editor.Session
	Generating []string              `json:"generating"`
	Empty      map[editor.Tab]string `json:"empty"`
}

type createSessionResponse struct {
	Token     string          `json:"token"`
	ExpiresIn int64           `json:"expires_in"`
	Session   sessionResponse `json:"session"`
}

// CreateSession 创建匿名会话并签发令牌。
func (h *SessionHandler) CreateSession(c *gin.Context) {
	log := middleware.LoggerFromContext(c)

	id, sess, err := h.editor.Create(c.Request.Context())
	if err != nil {
		log.Error("create session failed", slog.Any("error", err))
		Internal(c, "failed to create session")
		return
	}
	token, err := h.authService.IssueToken(id)
	if err != nil {
		log.Error("issue session token failed", slog.Any("error", err))
		Internal(c, "failed to create session")
		return
	}

	log.Info("session created", slog.String("session_id", id))
	c.JSON(http.StatusCreated, createSessionResponse{
		Token:     token,
		ExpiresIn: int64(h.authService.TTL().Seconds()),
		Session:   h.view(c, id, sess),
	})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	sess, err := h.editor.Get(c.Request.Context(), id)
	h.reply(c, id, sess, err)
}

type setTabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

func (h *SessionHandler) SetTab(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req setTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	tab, err := editor.ParseTab(req.Tab)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	sess, err := h.editor.SetTab(c.Request.Context(), id, tab)
	h.reply(c, id, sess, err)
}

// reply 写出最新会话，或把编辑错误映射为 HTTP 状态。
func (h *SessionHandler) reply(c *gin.Context, id string, sess editor.Session, err error) {
	if err != nil {
		writeEditorError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(c, id, sess))
}

func (h *SessionHandler) view(c *gin.Context, id string, sess editor.Session) sessionResponse {
	pending, err := h.editor.Generating(c.Request.Context(), id, sess)
	if err != nil {
		middleware.LoggerFromContext(c).Warn("read generation state failed", slog.Any("error", err))
		pending = []string{}
	}
	return sessionResponse{
		Session:    sess,
		Generating: pending,
		Empty:      editor.NewComposer(nil, sess).EmptyStates(),
	}
}

func writeEditorError(c *gin.Context, err error) {
	var verr *resume.ValidationError
	switch {
	case errors.Is(err, editor.ErrSessionNotFound):
		NotFound(c, "session not found")
	case errors.Is(err, editor.ErrEntryNotFound):
		NotFound(c, "entry not found")
	case errors.Is(err, editor.ErrInvalidTab), errors.Is(err, resume.ErrInvalidSkillLevel):
		BadRequest(c, err.Error())
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid resume record", "details": verr.Errors})
	case errors.Is(err, resume.ErrDuplicateID):
		Unprocessable(c, err.Error())
	default:
		middleware.LoggerFromContext(c).Error("session operation failed", slog.Any("error", err))
		Internal(c, "internal error")
	}
}
