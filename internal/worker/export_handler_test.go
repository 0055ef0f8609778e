package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeBuilder/internal/database"
	"resumeBuilder/internal/notify"
	"resumeBuilder/internal/resume"
	"resumeBuilder/internal/tasks"
)

type fakeRenderer struct {
	html string
	err  error
}

func (r *fakeRenderer) RenderPDF(_ context.Context, html string) ([]byte, error) {
	r.html = html
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.7"), nil
}

type fakeStorage struct {
	uploaded map[string][]byte
}

func (s *fakeStorage) UploadFile(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) error {
	b, _ := io.ReadAll(reader)
	s.uploaded[objectName] = b
	return nil
}

type exportFixture struct {
	db       *gorm.DB
	exports  *database.ExportRepository
	renderer *fakeRenderer
	storage  *fakeStorage
	recorder *notify.Recorder
	handler  *ExportHandler
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	f := &exportFixture{
		db:       db,
		exports:  database.NewExportRepository(db),
		renderer: &fakeRenderer{},
		storage:  &fakeStorage{uploaded: map[string][]byte{}},
		recorder: notify.NewRecorder(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.handler = NewExportHandler(f.exports, f.renderer, f.storage, f.recorder, logger)
	return f
}

func exportTask(t *testing.T, exportID, sessionID string) *asynq.Task {
	t.Helper()
	task, err := tasks.NewPDFExportTask(exportID, sessionID, "corr-1")
	require.NoError(t, err)
	return task
}

func TestExportHandlerSuccess(t *testing.T) {
	f := newExportFixture(t)
	ctx := context.Background()
	rec := resume.NewRecord()
	rec.PersonalInfo.FullName = "Jane Doe"
	exp, err := f.exports.Create(ctx, "sess", rec)
	require.NoError(t, err)

	require.NoError(t, f.handler.ProcessTask(ctx, exportTask(t, exp.ExportID, "sess")))

	assert.Contains(t, f.renderer.html, "Jane Doe")
	key := "exports/sess/" + exp.ExportID + ".pdf"
	assert.Equal(t, []byte("%PDF-1.7"), f.storage.uploaded[key])

	got, err := f.exports.Get(ctx, exp.ExportID)
	require.NoError(t, err)
	assert.Equal(t, database.ExportStatusCompleted, got.Status)
	assert.Equal(t, key, got.ObjectKey)

	sent := f.recorder.Sent("sess")
	require.Len(t, sent, 1)
	assert.Equal(t, notify.KindExportCompleted, sent[0].Kind)
	assert.Equal(t, exp.ExportID, sent[0].ExportID)
	assert.Equal(t, "corr-1", sent[0].CorrelationID)
}

func TestExportHandlerRetryableFailure(t *testing.T) {
	f := newExportFixture(t)
	ctx := context.Background()
	f.renderer.err = errors.New("chromium crashed")
	exp, err := f.exports.Create(ctx, "sess", resume.NewRecord())
	require.NoError(t, err)

	err = f.handler.ProcessTask(ctx, exportTask(t, exp.ExportID, "sess"))

	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
	got, _ := f.exports.Get(ctx, exp.ExportID)
	assert.Equal(t, database.ExportStatusPending, got.Status)
	assert.Empty(t, f.recorder.Sent("sess"))
}

func TestExportHandlerCorruptRecordFailsPermanently(t *testing.T) {
	f := newExportFixture(t)
	ctx := context.Background()
	bad := database.PDFExport{
		ExportID:  "bad",
		SessionID: "sess",
		Content:   []byte(`{"bogus":true}`),
		Status:    database.ExportStatusPending,
	}
	require.NoError(t, f.db.Create(&bad).Error)

	err := f.handler.ProcessTask(ctx, exportTask(t, "bad", "sess"))

	assert.True(t, errors.Is(err, asynq.SkipRetry))
	got, _ := f.exports.Get(ctx, "bad")
	assert.Equal(t, database.ExportStatusFailed, got.Status)
	assert.True(t, strings.HasPrefix(got.Error, "decode export record"))
	sent := f.recorder.Sent("sess")
	require.Len(t, sent, 1)
	assert.Equal(t, notify.KindExportFailed, sent[0].Kind)
}

func TestExportHandlerUnknownExport(t *testing.T) {
	f := newExportFixture(t)

	assert.NoError(t, f.handler.ProcessTask(context.Background(), exportTask(t, "missing", "sess")))
	assert.Empty(t, f.storage.uploaded)
}
