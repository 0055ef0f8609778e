package tasks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPDFExportTask(t *testing.T) {
	task, err := NewPDFExportTask("e1", "s1", "c1")
	require.NoError(t, err)
	assert.Equal(t, TypePDFExport, task.Type())

	var p PDFExportPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, PDFExportPayload{ExportID: "e1", SessionID: "s1", CorrelationID: "c1"}, p)
}
