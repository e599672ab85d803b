// Package intake validates files before they are uploaded to the converter.
package intake

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdf2json/client/internal/models"
)

// MaxFileSize is the largest file the converter accepts (16 MiB).
const MaxFileSize int64 = 16 * 1024 * 1024

// User-facing rejection messages.
const (
	MsgNotPDF   = "Por favor, selecione apenas arquivos PDF."
	MsgTooLarge = "O arquivo é muito grande. Tamanho máximo permitido: 16MB."
)

// ValidationError is returned when a candidate file is rejected before any
// network activity.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// Validate checks the declared MIME type and the size of a candidate file.
func Validate(f *models.SelectedFile) error {
	if f.MIMEType != models.PDFMediaType {
		return &ValidationError{Field: "type", Message: MsgNotPDF}
	}
	if f.Size > MaxFileSize {
		return &ValidationError{Field: "size", Message: MsgTooLarge}
	}
	return nil
}

// DetectMIME returns the media type for a file read from disk, where no
// declared type exists. Content sniffing wins over the extension.
func DetectMIME(name string, head []byte) string {
	if len(head) > 0 {
		if ct := http.DetectContentType(head); ct != "application/octet-stream" && !strings.HasPrefix(ct, "text/plain") {
			return strings.TrimSpace(strings.Split(ct, ";")[0])
		}
	}
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return models.PDFMediaType
	}
	return "application/octet-stream"
}

// FromPath loads a candidate file from disk.
func FromPath(path string) (*models.SelectedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return &models.SelectedFile{
		Name:     filepath.Base(path),
		Size:     int64(len(data)),
		MIMEType: DetectMIME(path, head),
		Data:     data,
	}, nil
}
