package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"resumeBuilder/internal/resume"
)

// SnapshotRepository 读写简历快照。
type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Create(ctx context.Context, sessionID, title string, rec resume.Record) (Snapshot, error) {
	content, err := json.Marshal(rec.Normalize())
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal record: %w", err)
	}
	snap := Snapshot{SessionID: sessionID, Title: title, Content: content}
	if err := r.db.WithContext(ctx).Create(&snap).Error; err != nil {
		return Snapshot{}, fmt.Errorf("create snapshot: %w", err)
	}
	return snap, nil
}

// List 按创建时间倒序返回会话的全部快照。
func (r *SnapshotRepository) List(ctx context.Context, sessionID string) ([]Snapshot, error) {
	var snaps []Snapshot
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at desc, id desc").
		Find(&snaps).Error
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snaps, nil
}

// Get 只返回属于 sessionID 的快照，否则返回 gorm.ErrRecordNotFound。
func (r *SnapshotRepository) Get(ctx context.Context, sessionID string, id uint) (Snapshot, resume.Record, error) {
	var snap Snapshot
	err := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", id, sessionID).
		First(&snap).Error
	if err != nil {
		return Snapshot{}, resume.Record{}, err
	}
	rec, err := resume.DecodeRecord(snap.Content)
	if err != nil {
		return Snapshot{}, resume.Record{}, fmt.Errorf("decode snapshot %d: %w", id, err)
	}
	return snap, rec, nil
}

func (r *SnapshotRepository) Delete(ctx context.Context, sessionID string, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND session_id = ?", id, sessionID).
		Delete(&Snapshot{})
	if res.Error != nil {
		return fmt.Errorf("delete snapshot: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteOlderThan 物理删除 cutoff 之前创建的快照，返回删除条数。
func (r *SnapshotRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&Snapshot{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune snapshots: %w", res.Error)
	}
	return res.RowsAffected, nil
}
