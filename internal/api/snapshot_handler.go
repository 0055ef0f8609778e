package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/database"
)

// SnapshotHandler 保存与恢复整份简历的快照。
type SnapshotHandler struct {
	snapshots *database.SnapshotRepository
	sessions  *SessionHandler
}

func NewSnapshotHandler(snapshots *database.SnapshotRepository, sessions *SessionHandler) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots, sessions: sessions}
}

var errInvalidSnapshotID = errors.New("invalid snapshot id")

type createSnapshotRequest struct {
	Title string `json:"title"`
}

type snapshotItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *SnapshotHandler) CreateSnapshot(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req createSnapshotRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			BadRequest(c, err.Error())
			return
		}
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Snapshot " + time.Now().UTC().Format(time.DateTime)
	}
	if len(title) > 255 {
		BadRequest(c, "title too long")
		return
	}

	sess, err := h.sessions.editor.Get(c.Request.Context(), id)
	if err != nil {
		writeEditorError(c, err)
		return
	}
	snap, err := h.snapshots.Create(c.Request.Context(), id, title, sess.Record)
	if err != nil {
		middleware.LoggerFromContext(c).Error("create snapshot failed", slog.Any("error", err))
		Internal(c, "failed to save snapshot")
		return
	}
	c.JSON(http.StatusCreated, snapshotItem{ID: snap.ID, Title: snap.Title, CreatedAt: snap.CreatedAt})
}

func (h *SnapshotHandler) ListSnapshots(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	snaps, err := h.snapshots.List(c.Request.Context(), id)
	if err != nil {
		middleware.LoggerFromContext(c).Error("list snapshots failed", slog.Any("error", err))
		Internal(c, "failed to list snapshots")
		return
	}
	items := make([]snapshotItem, 0, len(snaps))
	for _, s := range snaps {
		items = append(items, snapshotItem{ID: s.ID, Title: s.Title, CreatedAt: s.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RestoreSnapshot 用快照内容整体替换当前简历。
func (h *SnapshotHandler) RestoreSnapshot(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	snapID, err := parseSnapshotID(c.Param("id"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	_, rec, err := h.snapshots.Get(c.Request.Context(), id, snapID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "snapshot not found")
			return
		}
		middleware.LoggerFromContext(c).Error("load snapshot failed", slog.Any("error", err))
		Internal(c, "failed to load snapshot")
		return
	}
	sess, err := h.sessions.editor.ReplaceRecord(c.Request.Context(), id, rec)
	h.sessions.reply(c, id, sess, err)
}

func (h *SnapshotHandler) DeleteSnapshot(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	snapID, err := parseSnapshotID(c.Param("id"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := h.snapshots.Delete(c.Request.Context(), id, snapID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "snapshot not found")
			return
		}
		middleware.LoggerFromContext(c).Error("delete snapshot failed", slog.Any("error", err))
		Internal(c, "failed to delete snapshot")
		return
	}
	c.Status(http.StatusNoContent)
}

func parseSnapshotID(raw string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, errInvalidSnapshotID
	}
	return uint(v), nil
}
