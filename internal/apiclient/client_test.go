package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdf2json/client/internal/models"
	"github.com/pdf2json/client/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFile() *models.SelectedFile {
	data := []byte("%PDF-1.4 test")
	return &models.SelectedFile{Name: "invoice.pdf", Size: int64(len(data)), MIMEType: models.PDFMediaType, Data: data}
}

func TestClient_Upload(t *testing.T) {
	t.Run("success returns body verbatim", func(t *testing.T) {
		fake := testutil.NewFakeConverter()
		defer fake.Close()
		fake.SetDocumentResponse(http.StatusOK, `{"foo":"bar"}`)

		c := New(fake.URL, nil, nil)
		payload, err := c.Upload(context.Background(), testFile())
		require.NoError(t, err)
		assert.JSONEq(t, `{"foo":"bar"}`, string(payload))

		uploads := fake.Uploads()
		require.Len(t, uploads, 1)
		assert.Equal(t, "invoice.pdf", uploads[0].Name)
		assert.Equal(t, "application/pdf", uploads[0].ContentType)
		assert.Equal(t, []byte("%PDF-1.4 test"), uploads[0].Data)
	})

	t.Run("failure body is decoded", func(t *testing.T) {
		fake := testutil.NewFakeConverter()
		defer fake.Close()
		fake.SetDocumentResponse(http.StatusUnprocessableEntity,
			`{"error":"bad file","document_title":"Invoice #9","supported_types":["pdf"]}`)

		c := New(fake.URL, nil, nil)
		_, err := c.Upload(context.Background(), testFile())

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
		assert.Equal(t, "bad file", apiErr.Message)
		require.NotNil(t, apiErr.DocumentTitle)
		assert.Equal(t, "Invoice #9", *apiErr.DocumentTitle)
		assert.Equal(t, []string{"pdf"}, apiErr.SupportedTypes)
	})

	t.Run("failure without fields", func(t *testing.T) {
		fake := testutil.NewFakeConverter()
		defer fake.Close()
		fake.SetDocumentResponse(http.StatusInternalServerError, `{}`)

		c := New(fake.URL, nil, nil)
		_, err := c.Upload(context.Background(), testFile())

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Empty(t, apiErr.Message)
		assert.Nil(t, apiErr.DocumentTitle)
		assert.Nil(t, apiErr.SupportedTypes)
	})

	t.Run("non json body is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>bad gateway</html>"))
		}))
		defer srv.Close()

		c := New(srv.URL, nil, nil)
		_, err := c.Upload(context.Background(), testFile())

		var tErr *TransportError
		assert.ErrorAs(t, err, &tErr)
	})

	t.Run("connection refused is a transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := New(url, nil, nil)
		_, err := c.Upload(context.Background(), testFile())

		var tErr *TransportError
		require.ErrorAs(t, err, &tErr)
		assert.Equal(t, "upload", tErr.Op)
	})
}

func TestClient_Health(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		healthy bool
	}{
		{"healthy", http.StatusOK, `{"status":"healthy"}`, true},
		{"healthy with extra fields", http.StatusOK, `{"status":"healthy","message":"running"}`, true},
		{"wrong status value", http.StatusOK, `{"status":"degraded"}`, false},
		{"missing status field", http.StatusOK, `{"message":"hi"}`, false},
		{"healthy body with 503", http.StatusServiceUnavailable, `{"status":"healthy"}`, false},
		{"not found", http.StatusNotFound, `{"error":"nope"}`, false},
		{"array body", http.StatusOK, `["healthy"]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := testutil.NewFakeConverter()
			defer fake.Close()
			fake.SetHealthResponse(tt.status, tt.body)

			err := New(fake.URL, nil, nil).Health(context.Background())
			if tt.healthy {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		err := New(url, nil, nil).Health(context.Background())
		var tErr *TransportError
		assert.ErrorAs(t, err, &tErr)
	})

	t.Run("bad status wraps ErrUnhealthy", func(t *testing.T) {
		fake := testutil.NewFakeConverter()
		defer fake.Close()
		fake.SetHealthResponse(http.StatusInternalServerError, `{}`)

		err := New(fake.URL, nil, nil).Health(context.Background())
		assert.True(t, errors.Is(err, ErrUnhealthy))
	})
}

func TestNew_TrimsBaseURL(t *testing.T) {
	c := New("http://example.test:8085/", nil, nil)
	assert.Equal(t, "http://example.test:8085", c.BaseURL())
}

func TestDecodeAPIError_TypeMismatchKeepsOtherFields(t *testing.T) {
	apiErr := decodeAPIError(http.StatusBadRequest, []byte(`{"error":42,"supported_types":["a","b"]}`))
	assert.Empty(t, apiErr.Message)
	assert.Equal(t, []string{"a", "b"}, apiErr.SupportedTypes)
}
