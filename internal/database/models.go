package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Snapshot 保存某个会话在某一时刻的完整简历，可随时恢复。
type Snapshot struct {
	gorm.Model
	SessionID string         `gorm:"index;size:64"`
	Title     string         `gorm:"size:255"`
	Content   datatypes.JSON `gorm:"type:jsonb"`
}

// 导出状态。
const (
	ExportStatusPending   = "pending"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// PDFExport 记录一次 PDF 导出：入队时的简历内容、生成结果所在的对象键与状态。
type PDFExport struct {
	gorm.Model
	ExportID  string         `gorm:"uniqueIndex;size:64"`
	SessionID string         `gorm:"index;size:64"`
	Content   datatypes.JSON `gorm:"type:jsonb"`
	ObjectKey string         `gorm:"size:512"`
	Status    string         `gorm:"size:32"`
	Error     string         `gorm:"size:512"`
}
