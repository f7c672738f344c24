package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// DocumentExtractor extracts raw text from uploaded resume files so the
// analysis endpoint has something to work with before the model parses it
type DocumentExtractor struct{}

// NewDocumentExtractor creates a new document extractor
func NewDocumentExtractor() *DocumentExtractor {
	return &DocumentExtractor{}
}

// ExtractText extracts text from a file based on its extension
func (e *DocumentExtractor) ExtractText(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	content := buf.Bytes()

	switch ext {
	case ".txt":
		return string(content), nil
	case ".pdf":
		return extractPrintable(content, "%PDF"), nil
	case ".doc", ".docx":
		// DOCX is a ZIP archive; without unzipping there is no clean text
		if len(content) > 4 && content[0] == 'P' && content[1] == 'K' {
			return "", nil
		}
		return extractPrintable(content, ""), nil
	default:
		return string(content), nil
	}
}

// extractPrintable pulls readable ASCII out of a binary document. Crude,
// but enough raw text for the model to parse; a resume with no extractable
// text falls back to the synthesized summary path.
func extractPrintable(content []byte, marker string) string {
	text := string(content)
	if marker != "" && !strings.Contains(text, marker) {
		return text
	}

	var clean strings.Builder
	for _, r := range text {
		if r >= 32 && r <= 126 || r == '\n' || r == '\r' || r == '\t' {
			clean.WriteRune(r)
		}
	}

	extracted := clean.String()
	if len(extracted) < 100 {
		return ""
	}
	return extracted
}

// IsSupportedFormat checks if the file format is supported
func (e *DocumentExtractor) IsSupportedFormat(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".pdf", ".doc", ".docx":
		return true
	}
	return false
}
