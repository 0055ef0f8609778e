package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"resumeBuilder/internal/resume"
)

// ExportRepository 管理 PDF 导出记录。
type ExportRepository struct {
	db *gorm.DB
}

func NewExportRepository(db *gorm.DB) *ExportRepository {
	return &ExportRepository{db: db}
}

// Create 以 pending 状态保存入队时的简历内容，worker 只读取这份副本。
func (r *ExportRepository) Create(ctx context.Context, sessionID string, rec resume.Record) (PDFExport, error) {
	content, err := json.Marshal(rec.Normalize())
	if err != nil {
		return PDFExport{}, fmt.Errorf("marshal record: %w", err)
	}
	exp := PDFExport{
		ExportID:  uuid.NewString(),
		SessionID: sessionID,
		Content:   content,
		Status:    ExportStatusPending,
	}
	if err := r.db.WithContext(ctx).Create(&exp).Error; err != nil {
		return PDFExport{}, fmt.Errorf("create export: %w", err)
	}
	return exp, nil
}

func (r *ExportRepository) Get(ctx context.Context, exportID string) (PDFExport, error) {
	var exp PDFExport
	if err := r.db.WithContext(ctx).Where("export_id = ?", exportID).First(&exp).Error; err != nil {
		return PDFExport{}, err
	}
	return exp, nil
}

// GetForSession 与 Get 相同，但要求导出属于 sessionID。
func (r *ExportRepository) GetForSession(ctx context.Context, sessionID, exportID string) (PDFExport, error) {
	var exp PDFExport
	err := r.db.WithContext(ctx).
		Where("export_id = ? AND session_id = ?", exportID, sessionID).
		First(&exp).Error
	if err != nil {
		return PDFExport{}, err
	}
	return exp, nil
}

func (r *ExportRepository) MarkCompleted(ctx context.Context, exportID, objectKey string) error {
	return r.update(ctx, exportID, map[string]any{
		"status":     ExportStatusCompleted,
		"object_key": objectKey,
		"error":      "",
	})
}

func (r *ExportRepository) MarkFailed(ctx context.Context, exportID, reason string) error {
	if len(reason) > 512 {
		reason = reason[:512]
	}
	return r.update(ctx, exportID, map[string]any{
		"status": ExportStatusFailed,
		"error":  reason,
	})
}

func (r *ExportRepository) update(ctx context.Context, exportID string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&PDFExport{}).Where("export_id = ?", exportID).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update export %s: %w", exportID, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// OlderThan 列出 cutoff 之前创建的导出，供清理任务删除对象与记录。
func (r *ExportRepository) OlderThan(ctx context.Context, cutoff time.Time) ([]PDFExport, error) {
	var exps []PDFExport
	if err := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Find(&exps).Error; err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	return exps, nil
}

func (r *ExportRepository) Delete(ctx context.Context, exportID string) error {
	err := r.db.WithContext(ctx).Unscoped().Where("export_id = ?", exportID).Delete(&PDFExport{}).Error
	if err != nil {
		return fmt.Errorf("delete export: %w", err)
	}
	return nil
}

// Record 解码导出记录中保存的简历。
func (e PDFExport) Record() (resume.Record, error) {
	return resume.DecodeRecord(e.Content)
}
