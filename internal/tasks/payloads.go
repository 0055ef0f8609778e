package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypePDFExport = "resume:pdf_export"
)

// PDFExportPayload 只携带导出记录的标识，简历内容在入队前已写入数据库。
type PDFExportPayload struct {
	ExportID      string `json:"export_id"`
	SessionID     string `json:"session_id"`
	CorrelationID string `json:"correlation_id"`
}

// NewPDFExportTask 构造一个简历 PDF 导出任务。
func NewPDFExportTask(exportID, sessionID, correlationID string, opts ...asynq.Option) (*asynq.Task, error) {
	payload, err := json.Marshal(PDFExportPayload{
		ExportID:      exportID,
		SessionID:     sessionID,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePDFExport, payload, opts...), nil
}
