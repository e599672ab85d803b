// Package controller implements the upload pipeline behind the converter UI:
// file intake, upload, result rendering and clipboard export.
package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/pdf2json/client/internal/apiclient"
	"github.com/pdf2json/client/internal/clipboard"
	"github.com/pdf2json/client/internal/intake"
	"github.com/pdf2json/client/internal/models"
)

var (
	// ErrNoFile is returned by Upload when nothing has been selected.
	ErrNoFile = errors.New("no file selected")
	// ErrUploadInProgress is returned by Upload while the trigger is disabled.
	ErrUploadInProgress = errors.New("upload already in progress")
	// ErrNoResult is returned by CopyResult when there is nothing rendered.
	ErrNoResult = errors.New("no result to copy")
)

// View is the UI the controller drives. Implementations own the actual
// elements (file info panel, upload trigger, loading indicator, result and
// error panels, toasts, status indicator).
type View interface {
	ShowFileInfo(info models.FileInfo)
	ArmUpload()
	SetUploadEnabled(enabled bool)
	SetLoading(loading bool)
	ShowResult(text string)
	ShowError(message string)
	ShowErrorDetails(details string)
	ClearResultAndError()
	Toast(message string, kind models.ToastKind)
	SetAPIStatus(status models.APIStatus)
}

// Converter uploads a file to the conversion service.
type Converter interface {
	Upload(ctx context.Context, f *models.SelectedFile) (json.RawMessage, error)
}

// Controller owns the per-session state: the selected file, the in-flight
// flag, the last result and the last API status.
type Controller struct {
	view      View
	converter Converter
	clip      clipboard.Writer
	logger    *slog.Logger

	mu         sync.Mutex
	file       *models.SelectedFile
	uploading  bool
	state      models.UploadState
	result     *models.UploadResult
	resultText string
	apiStatus  models.APIStatus
}

// New creates a controller. A nil logger uses slog.Default().
func New(view View, converter Converter, clip clipboard.Writer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		view:      view,
		converter: converter,
		clip:      clip,
		logger:    logger,
		state:     models.UploadStateIdle,
		apiStatus: models.APIStatusChecking,
	}
}

// HandleDrop takes the first dropped file, if any.
func (c *Controller) HandleDrop(files []*models.SelectedFile) error {
	if len(files) == 0 {
		return nil
	}
	return c.SelectFile(files[0])
}

// HandleInputChange takes the first file picked in the file input, if any.
func (c *Controller) HandleInputChange(files []*models.SelectedFile) error {
	return c.HandleDrop(files)
}

// SelectFile validates a candidate and, if accepted, makes it the current
// file and arms the upload trigger. A rejected candidate leaves the previous
// selection in place and never touches the network.
func (c *Controller) SelectFile(f *models.SelectedFile) error {
	if f == nil {
		return ErrNoFile
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = models.UploadStateValidating
	if err := intake.Validate(f); err != nil {
		c.state = models.UploadStateRejected
		var verr *intake.ValidationError
		if errors.As(err, &verr) {
			c.view.ShowError(verr.Message)
		}
		c.logger.Info("controller.file_rejected", "file", f.Name, "size", f.Size, "type", f.MIMEType, "error", err)
		c.settle()
		return err
	}

	c.file = f
	c.state = models.UploadStateAccepted
	c.resultText = ""
	c.view.ShowFileInfo(models.FileInfo{Name: f.Name, Size: intake.FormatFileSize(f.Size)})
	c.view.ClearResultAndError()
	c.view.ArmUpload()
	c.logger.Info("controller.file_selected", "file", f.Name, "size", f.Size)
	return nil
}

// Upload sends the selected file to the converter and renders the outcome.
// Only precondition failures are returned as errors; every converter or
// transport failure is rendered and reported through the result.
func (c *Controller) Upload(ctx context.Context) (*models.UploadResult, error) {
	c.mu.Lock()
	if c.file == nil {
		c.mu.Unlock()
		return nil, ErrNoFile
	}
	if c.uploading {
		c.mu.Unlock()
		return nil, ErrUploadInProgress
	}
	file := c.file
	c.uploading = true
	c.state = models.UploadStateUploading
	c.resultText = ""
	c.view.SetLoading(true)
	c.view.ClearResultAndError()
	c.view.SetUploadEnabled(false)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.view.SetLoading(false)
		c.view.SetUploadEnabled(true)
		c.uploading = false
		c.settle()
	}()

	payload, err := c.converter.Upload(ctx, file)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err == nil {
		return c.renderSuccess(payload), nil
	}
	return c.renderFailure(err), nil
}

func (c *Controller) renderSuccess(payload json.RawMessage) *models.UploadResult {
	var buf bytes.Buffer
	text := string(payload)
	if err := json.Indent(&buf, payload, "", "  "); err == nil {
		text = buf.String()
	}

	result := &models.UploadResult{Success: &models.UploadSuccess{Payload: payload}}
	c.result = result
	c.resultText = text
	c.state = models.UploadStateSucceeded
	c.view.ShowResult(text)
	c.view.Toast(MsgConverted, models.ToastSuccess)
	return result
}

func (c *Controller) renderFailure(err error) *models.UploadResult {
	failure := &models.UploadFailure{}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		failure.Message = apiErr.Message
		if failure.Message == "" {
			failure.Message = MsgProcessingError
		}
		failure.DocumentTitle = apiErr.DocumentTitle
		failure.SupportedTypes = apiErr.SupportedTypes
		c.logger.Warn("controller.upload_rejected", "status", apiErr.Status, "error", failure.Message)
	} else {
		failure.Message = MsgConnectionError
		c.logger.Error("controller.upload_failed", "error", err)
	}

	result := &models.UploadResult{Failure: failure}
	c.result = result
	c.state = models.UploadStateFailed
	c.view.ShowError(failure.Message)
	if failure.HasDetails() {
		c.view.ShowErrorDetails(FormatErrorDetails(failure))
	}
	return result
}

// FormatErrorDetails renders the details block for a failure.
func FormatErrorDetails(f *models.UploadFailure) string {
	var b strings.Builder
	if f.DocumentTitle != nil {
		b.WriteString(documentFoundPrefix + *f.DocumentTitle + "\n")
	}
	if f.SupportedTypes != nil {
		lines := make([]string, len(f.SupportedTypes))
		for i, t := range f.SupportedTypes {
			lines[i] = "- " + t
		}
		b.WriteString(supportedTypesLabel + "\n" + strings.Join(lines, "\n"))
	}
	return b.String()
}

// CopyResult exports the rendered JSON to the clipboard. Copy failures are
// reported as a toast only.
func (c *Controller) CopyResult(ctx context.Context) error {
	c.mu.Lock()
	text := c.resultText
	c.mu.Unlock()
	if text == "" {
		return ErrNoResult
	}

	if err := c.clip.Write(ctx, text); err != nil {
		c.logger.Error("controller.copy_failed", "error", err)
		c.view.Toast(MsgCopyFailed, models.ToastError)
		return nil
	}
	c.view.Toast(MsgCopied, models.ToastSuccess)
	return nil
}

// SetAPIStatus records and displays the latest health probe outcome.
func (c *Controller) SetAPIStatus(status models.APIStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiStatus = status
	c.view.SetAPIStatus(status)
}

// APIStatus returns the last recorded health status.
func (c *Controller) APIStatus() models.APIStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiStatus
}

// State returns the pipeline state.
func (c *Controller) State() models.UploadState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Selected returns the display info of the current file, or nil.
func (c *Controller) Selected() *models.FileInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.file == nil {
		return nil
	}
	return &models.FileInfo{Name: c.file.Name, Size: intake.FormatFileSize(c.file.Size)}
}

// Result returns the outcome of the last finished upload, or nil.
func (c *Controller) Result() *models.UploadResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// ResultText returns the rendered JSON currently on display.
func (c *Controller) ResultText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resultText
}

// settle moves a finished step back to rest. A selected file stays armed so
// the user can re-trigger the upload. Callers hold c.mu.
func (c *Controller) settle() {
	if c.uploading {
		c.state = models.UploadStateUploading
		return
	}
	if c.file != nil {
		c.state = models.UploadStateAccepted
		return
	}
	c.state = models.UploadStateIdle
}
