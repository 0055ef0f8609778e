package preview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/resume.html
var templateFS embed.FS

var resumeTemplate = template.Must(template.ParseFS(templateFS, "templates/resume.html"))

// WriteHTML 渲染预览页面，屏幕预览与 PDF 导出共用同一模板。
func WriteHTML(w io.Writer, doc Document) error {
	if err := resumeTemplate.ExecuteTemplate(w, "resume.html", doc); err != nil {
		return fmt.Errorf("execute preview template: %w", err)
	}
	return nil
}

// HTML returns the rendered page as a string.
func HTML(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}
