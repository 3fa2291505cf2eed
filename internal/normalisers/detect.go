package normalisers

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

// Ensure Detector implements the interface.
var _ driven.MIMEDetector = Detector{}

// extMIMETypes maps extensions whose type Go's registry lacks or gets wrong.
var extMIMETypes = map[string]string{
	".md": "text/markdown", ".markdown": "text/markdown",
	".txt": "text/plain", ".text": "text/plain", ".log": "text/plain",
	".go": "text/x-go", ".py": "text/x-python", ".rs": "text/x-rust",
	".yaml": "text/yaml", ".yml": "text/yaml", ".toml": "text/toml",
	".sh": "text/x-shellscript", ".sql": "text/x-sql", ".java": "text/x-java",
	".json": "application/json", ".csv": "text/csv",
	".html": "text/html", ".htm": "text/html",
	".pdf": "application/pdf", ".eml": "message/rfc822",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Detector resolves MIME types by extension first and content sniffing second.
type Detector struct{}

// Detect returns the MIME type of a file without parameters.
func (Detector) Detect(name string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != "" {
		if t, ok := extMIMETypes[ext]; ok {
			return t
		}
		if t := mime.TypeByExtension(ext); t != "" {
			return BaseType(t)
		}
	}
	return BaseType(mimetype.Detect(content).String())
}
