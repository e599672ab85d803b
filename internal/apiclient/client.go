// Package apiclient talks to the remote pdf2json conversion service.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pdf2json/client/internal/models"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	documentPath = "/document"
	healthPath   = "/health"
)

// healthSchema describes the only body that counts as healthy.
var healthSchema = jsonschema.MustCompileString("health.json", `{
	"type": "object",
	"required": ["status"],
	"properties": {"status": {"const": "healthy"}}
}`)

// ErrUnhealthy is returned by Health when the service answered but did not
// report itself healthy.
var ErrUnhealthy = errors.New("api is not healthy")

// Client is an HTTP client for the conversion service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client for baseURL. A nil httpClient gets a client without a
// timeout; uploads wait on the transport for as long as it takes.
func New(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Upload posts the file as multipart field "file" and returns the JSON body
// of a 2xx response verbatim.
func (c *Client) Upload(ctx context.Context, f *models.SelectedFile) (json.RawMessage, error) {
	reqID := uuid.New().String()
	start := time.Now()

	body, contentType, err := encodeMultipart(f)
	if err != nil {
		c.logger.Error("apiclient.upload.encode_error", "req_id", reqID, "error", err)
		return nil, fmt.Errorf("encode multipart: %w", err)
	}

	url := c.baseURL + documentPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	c.logger.Info("apiclient.upload.request",
		"req_id", reqID,
		"url", url,
		"file", f.Name,
		"size", f.Size,
	)

	raw, status, err := c.do(req)
	if err != nil {
		c.logger.Error("apiclient.upload.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, &TransportError{Op: "upload", Cause: err}
	}

	c.logger.Info("apiclient.upload.response",
		"req_id", reqID,
		"status", status,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if !json.Valid(raw) {
		return nil, &TransportError{Op: "upload", Cause: fmt.Errorf("response is not JSON (status %d)", status)}
	}

	if status/100 == 2 {
		return json.RawMessage(raw), nil
	}
	return nil, decodeAPIError(status, raw)
}

// Health probes the service. It returns nil only for a 2xx response whose
// body reports status "healthy".
func (c *Client) Health(ctx context.Context) error {
	reqID := uuid.New().String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	raw, status, err := c.do(req)
	if err != nil {
		c.logger.Debug("apiclient.health.send_error", "req_id", reqID, "error", err)
		return &TransportError{Op: "health", Cause: err}
	}
	if status/100 != 2 {
		c.logger.Debug("apiclient.health.bad_status", "req_id", reqID, "status", status)
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return &TransportError{Op: "health", Cause: fmt.Errorf("decode body: %w", err)}
	}
	if err := healthSchema.Validate(v); err != nil {
		c.logger.Debug("apiclient.health.bad_body", "req_id", reqID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnhealthy, err)
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.logger.Warn("apiclient.response_body_close_error", "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return raw, resp.StatusCode, nil
}

func encodeMultipart(f *models.SelectedFile) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, f.Name))
	ct := f.MIMEType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(f.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func decodeAPIError(status int, raw []byte) *APIError {
	apiErr := &APIError{Status: status}

	// A mismatched field type still leaves the other fields decoded.
	var body errorBody
	_ = json.Unmarshal(raw, &body)
	apiErr.Message = body.Error
	if body.DocumentTitle != "" {
		title := body.DocumentTitle
		apiErr.DocumentTitle = &title
	}
	apiErr.SupportedTypes = body.SupportedTypes
	return apiErr
}
