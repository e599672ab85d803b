package view

import (
	"fmt"
	"io"
	"sync"

	"github.com/pdf2json/client/internal/models"
)

// Text renders controller output as plain lines, for terminal use.
type Text struct {
	mu sync.Mutex
	w  io.Writer

	// Quiet suppresses everything but results, errors and error toasts.
	Quiet bool
}

// NewText creates a text view writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (t *Text) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, format, args...)
}

// ShowFileInfo prints the selected file's name and size.
func (t *Text) ShowFileInfo(info models.FileInfo) {
	if t.Quiet {
		return
	}
	t.printf("Nome: %s\nTamanho: %s\n", info.Name, info.Size)
}

// ArmUpload is a no-op; the terminal has no trigger to show.
func (t *Text) ArmUpload() {}

// SetUploadEnabled is a no-op.
func (t *Text) SetUploadEnabled(bool) {}

// SetLoading prints a progress line when loading starts.
func (t *Text) SetLoading(loading bool) {
	if loading && !t.Quiet {
		t.printf("Convertendo...\n")
	}
}

// ShowResult prints the rendered JSON.
func (t *Text) ShowResult(text string) {
	t.printf("%s\n", text)
}

// ShowError prints an error message.
func (t *Text) ShowError(message string) {
	t.printf("Erro: %s\n", message)
}

// ShowErrorDetails prints the details block under the error.
func (t *Text) ShowErrorDetails(details string) {
	t.printf("%s\n", details)
}

// ClearResultAndError is a no-op; printed lines stay.
func (t *Text) ClearResultAndError() {}

// Toast prints a notification tagged with its kind.
func (t *Text) Toast(message string, kind models.ToastKind) {
	if t.Quiet && kind == models.ToastSuccess {
		return
	}
	t.printf("[%s] %s\n", kind, message)
}

// SetAPIStatus prints the health indicator label.
func (t *Text) SetAPIStatus(status models.APIStatus) {
	if t.Quiet && status == models.APIStatusChecking {
		return
	}
	t.printf("%s\n", status.Label())
}
