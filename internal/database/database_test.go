package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"resumeBuilder/internal/resume"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func sampleRecord() resume.Record {
	rec := resume.NewRecord()
	rec.PersonalInfo.FullName = "Jane Doe"
	rec.Skills = []resume.SkillEntry{{ID: "s1", Name: "Go", Level: resume.LevelExpert}}
	return rec
}

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSnapshotRepository(newTestDB(t))

	first, err := repo.Create(ctx, "sess-a", "first", sampleRecord())
	require.NoError(t, err)
	second, err := repo.Create(ctx, "sess-a", "second", resume.NewRecord())
	require.NoError(t, err)
	_, err = repo.Create(ctx, "sess-b", "other", resume.NewRecord())
	require.NoError(t, err)

	list, err := repo.List(ctx, "sess-a")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)

	snap, rec, err := repo.Get(ctx, "sess-a", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", snap.Title)
	assert.Equal(t, sampleRecord(), rec)

	_, _, err = repo.Get(ctx, "sess-b", first.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, repo.Delete(ctx, "sess-a", first.ID))
	assert.True(t, errors.Is(repo.Delete(ctx, "sess-a", first.ID), gorm.ErrRecordNotFound))
}

func TestSnapshotPrune(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSnapshotRepository(db)

	old, err := repo.Create(ctx, "sess", "old", resume.NewRecord())
	require.NoError(t, err)
	_, err = repo.Create(ctx, "sess", "new", resume.NewRecord())
	require.NoError(t, err)
	require.NoError(t, db.Model(&Snapshot{}).Where("id = ?", old.ID).
		UpdateColumn("created_at", time.Now().Add(-48*time.Hour)).Error)

	n, err := repo.DeleteOlderThan(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := repo.List(ctx, "sess")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].Title)
}

func TestExportRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewExportRepository(newTestDB(t))

	exp, err := repo.Create(ctx, "sess", sampleRecord())
	require.NoError(t, err)
	assert.NotEmpty(t, exp.ExportID)
	assert.Equal(t, ExportStatusPending, exp.Status)

	got, err := repo.GetForSession(ctx, "sess", exp.ExportID)
	require.NoError(t, err)
	rec, err := got.Record()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", rec.PersonalInfo.FullName)

	_, err = repo.GetForSession(ctx, "other", exp.ExportID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, repo.MarkCompleted(ctx, exp.ExportID, "exports/sess/x.pdf"))
	got, err = repo.Get(ctx, exp.ExportID)
	require.NoError(t, err)
	assert.Equal(t, ExportStatusCompleted, got.Status)
	assert.Equal(t, "exports/sess/x.pdf", got.ObjectKey)

	require.NoError(t, repo.MarkFailed(ctx, exp.ExportID, "chromium crashed"))
	got, _ = repo.Get(ctx, exp.ExportID)
	assert.Equal(t, ExportStatusFailed, got.Status)
	assert.Equal(t, "chromium crashed", got.Error)

	assert.True(t, errors.Is(repo.MarkCompleted(ctx, "missing", "k"), gorm.ErrRecordNotFound))

	require.NoError(t, repo.Delete(ctx, exp.ExportID))
	_, err = repo.Get(ctx, exp.ExportID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
