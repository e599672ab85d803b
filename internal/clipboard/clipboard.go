// Package clipboard exports text to the system clipboard, falling back to a
// platform copy command when the native clipboard is unavailable.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
)

// ErrUnavailable means the capability cannot be used on this host.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer copies text to a clipboard.
type Writer interface {
	Write(ctx context.Context, text string) error
}

// WriterFunc adapts a function to Writer.
type WriterFunc func(ctx context.Context, text string) error

func (f WriterFunc) Write(ctx context.Context, text string) error {
	return f(ctx, text)
}

// ClipboardError is returned when every capability failed.
type ClipboardError struct {
	Primary  error
	Fallback error
}

// Error implements the error interface
func (e *ClipboardError) Error() string {
	if e.Primary == nil {
		return fmt.Sprintf("copy failed: %v", e.Fallback)
	}
	return fmt.Sprintf("copy failed: primary: %v; fallback: %v", e.Primary, e.Fallback)
}

func (e *ClipboardError) Unwrap() error {
	return e.Fallback
}

// System writes through the native clipboard.
type System struct{}

// Write implements Writer.
func (System) Write(_ context.Context, text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Fallback tries Primary and, on any failure, Secondary exactly once.
type Fallback struct {
	Primary   Writer
	Secondary Writer
	Logger    *slog.Logger
}

// New returns the default strategy: native clipboard first, then the copy
// command given by argv (auto-detected when empty).
func New(argv []string, logger *slog.Logger) *Fallback {
	return &Fallback{
		Primary:   System{},
		Secondary: &Command{Argv: argv},
		Logger:    logger,
	}
}

// Write implements Writer.
func (f *Fallback) Write(ctx context.Context, text string) error {
	logger := f.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var primaryErr error
	if f.Primary != nil {
		primaryErr = safeWrite(ctx, f.Primary, text)
		if primaryErr == nil {
			return nil
		}
		logger.Warn("clipboard.primary_failed", "error", primaryErr)
	}

	if f.Secondary == nil {
		return &ClipboardError{Primary: primaryErr, Fallback: ErrUnavailable}
	}
	if err := safeWrite(ctx, f.Secondary, text); err != nil {
		logger.Error("clipboard.fallback_failed", "error", err)
		return &ClipboardError{Primary: primaryErr, Fallback: err}
	}
	return nil
}

// safeWrite turns a panicking writer into an error.
func safeWrite(ctx context.Context, w Writer, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard writer panicked: %v", r)
		}
	}()
	return w.Write(ctx, text)
}
