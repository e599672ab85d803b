// fake_converter.go - In-process stand-in for the pdf2json conversion service
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/labstack/echo/v4"
)

// Response is a canned reply of the fake converter.
type Response struct {
	Status int
	Body   string
}

// ReceivedFile is what the fake converter saw in a multipart upload.
type ReceivedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// FakeConverter serves /document and /health with canned responses and
// records every upload it receives.
type FakeConverter struct {
	*httptest.Server

	mu           sync.RWMutex
	document     Response
	health       Response
	uploads      []ReceivedFile
	healthCalls  int
	block        chan struct{}
	uploadSignal chan struct{}
}

// NewFakeConverter starts a converter that converts everything to {"ok":true}
// and reports itself healthy.
func NewFakeConverter() *FakeConverter {
	f := &FakeConverter{
		document:     Response{Status: http.StatusOK, Body: `{"ok":true}`},
		health:       Response{Status: http.StatusOK, Body: `{"status":"healthy","message":"PDF to JSON API is running"}`},
		uploadSignal: make(chan struct{}, 16),
	}

	e := echo.New()
	e.HideBanner = true
	e.POST("/document", f.handleDocument)
	e.GET("/health", f.handleHealth)
	f.Server = httptest.NewServer(e)
	return f
}

// SetDocumentResponse changes the reply to uploads.
func (f *FakeConverter) SetDocumentResponse(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.document = Response{Status: status, Body: body}
}

// SetHealthResponse changes the reply to health probes.
func (f *FakeConverter) SetHealthResponse(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.health = Response{Status: status, Body: body}
}

// Block makes uploads wait until Release is called.
func (f *FakeConverter) Block() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.block = make(chan struct{})
}

// Release unblocks uploads held by Block.
func (f *FakeConverter) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.block != nil {
		close(f.block)
		f.block = nil
	}
}

// UploadStarted is signalled each time an upload reaches the handler.
func (f *FakeConverter) UploadStarted() <-chan struct{} {
	return f.uploadSignal
}

// Uploads returns the files received so far.
func (f *FakeConverter) Uploads() []ReceivedFile {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]ReceivedFile, len(f.uploads))
	copy(out, f.uploads)
	return out
}

// HealthCalls returns the number of health probes received.
func (f *FakeConverter) HealthCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.healthCalls
}

func (f *FakeConverter) handleDocument(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file provided"})
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.uploads = append(f.uploads, ReceivedFile{
		Name:        file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	})
	resp := f.document
	block := f.block
	f.mu.Unlock()

	select {
	case f.uploadSignal <- struct{}{}:
	default:
	}
	if block != nil {
		<-block
	}

	return c.Blob(resp.Status, echo.MIMEApplicationJSON, []byte(resp.Body))
}

func (f *FakeConverter) handleHealth(c echo.Context) error {
	f.mu.Lock()
	f.healthCalls++
	resp := f.health
	f.mu.Unlock()
	return c.Blob(resp.Status, echo.MIMEApplicationJSON, []byte(resp.Body))
}
