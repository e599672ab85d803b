package intake

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pdf2json/client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		file      models.SelectedFile
		wantField string
		wantMsg   string
	}{
		{
			name: "valid pdf",
			file: models.SelectedFile{Name: "a.pdf", Size: 2048, MIMEType: "application/pdf"},
		},
		{
			name: "exactly at the limit",
			file: models.SelectedFile{Name: "a.pdf", Size: MaxFileSize, MIMEType: "application/pdf"},
		},
		{
			name:      "wrong mime type",
			file:      models.SelectedFile{Name: "a.png", Size: 10, MIMEType: "image/png"},
			wantField: "type",
			wantMsg:   MsgNotPDF,
		},
		{
			name:      "mime type with parameters is not exact",
			file:      models.SelectedFile{Name: "a.pdf", Size: 10, MIMEType: "application/pdf; x=1"},
			wantField: "type",
			wantMsg:   MsgNotPDF,
		},
		{
			name:      "empty mime type",
			file:      models.SelectedFile{Name: "a.pdf", Size: 10},
			wantField: "type",
			wantMsg:   MsgNotPDF,
		},
		{
			name:      "one byte over the limit",
			file:      models.SelectedFile{Name: "big.pdf", Size: MaxFileSize + 1, MIMEType: "application/pdf"},
			wantField: "size",
			wantMsg:   MsgTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.file)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}

func TestDetectMIME(t *testing.T) {
	assert.Equal(t, "application/pdf", DetectMIME("doc.bin", []byte("%PDF-1.7\n")))
	assert.Equal(t, "application/pdf", DetectMIME("DOC.PDF", nil))
	assert.Equal(t, "image/png", DetectMIME("fake.pdf", []byte("\x89PNG\r\n\x1a\n")))
	assert.Equal(t, "application/octet-stream", DetectMIME("notes.txt", []byte("hello")))
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoice.pdf")
	content := []byte("%PDF-1.4\n%EOF\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	f, err := FromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "invoice.pdf", f.Name)
	assert.Equal(t, int64(len(content)), f.Size)
	assert.Equal(t, "application/pdf", f.MIMEType)
	assert.Equal(t, content, f.Data)

	_, err = FromPath(filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)
}
