package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeBuilder/internal/auth"
	"resumeBuilder/internal/completion"
	"resumeBuilder/internal/database"
	"resumeBuilder/internal/editor"
	"resumeBuilder/internal/generator"
	"resumeBuilder/internal/notify"
	"resumeBuilder/internal/resume"
	"resumeBuilder/internal/session"
)

type scriptedCompleter struct {
	reply string
	err   error
}

func (s *scriptedCompleter) Complete(_ context.Context, _ completion.Request) (string, error) {
	return s.reply, s.err
}

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{ID: "task-1"}, nil
}

type fakeSigner struct{}

func (fakeSigner) PresignDownload(_ context.Context, objectKey string, _ time.Duration, _ string) (string, error) {
	return "https://minio.example.invalid/" + objectKey, nil
}

type testServer struct {
	router    *gin.Engine
	completer *scriptedCompleter
	recorder  *notify.Recorder
	exports   *database.ExportRepository
	queue     *fakeQueue
	auth      *auth.AuthService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := discardLogger()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	authService, err := auth.NewAuthService("test-secret", time.Hour)
	require.NoError(t, err)

	ts := &testServer{
		completer: &scriptedCompleter{},
		recorder:  notify.NewRecorder(),
		exports:   database.NewExportRepository(db),
		queue:     &fakeQueue{},
		auth:      authService,
	}
	gen := generator.New(ts.completer, generator.NewMemoryTracker(), ts.recorder, logger)
	editorService := editor.NewService(session.NewMemoryStore(time.Hour), resume.NewSequenceGenerator("id"), gen, logger)

	ts.router = NewRouter(logger, nil)
	RegisterRoutes(ts.router, Deps{
		Editor:         editorService,
		Auth:           authService,
		Snapshots:      database.NewSnapshotRepository(db),
		Exports:        ts.exports,
		Queue:          ts.queue,
		Storage:        fakeSigner{},
		ExportMaxRetry: 3,
		Logger:         logger,
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// newSession 创建会话并返回令牌。
func (ts *testServer) newSession(t *testing.T) string {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp createSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
