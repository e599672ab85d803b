// handlers_converter.go - File selection, upload and copy handlers
package api

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pdf2json/client/internal/intake"
	"github.com/pdf2json/client/internal/models"
)

// ConverterHandlerImpl implements the ConverterHandler interface
type ConverterHandlerImpl struct {
	ctrl Controller
}

// NewConverterHandler creates a new converter handler instance
func NewConverterHandler(ctrl Controller) ConverterHandler {
	return &ConverterHandlerImpl{ctrl: ctrl}
}

// HandleSelectFile accepts a dropped or picked file (multipart field "file").
// The part's declared Content-Type is taken as the file's MIME type. The body
// is streamed: at most intake.MaxFileSize+1 bytes are kept in memory and the
// rest is only counted, so oversized files still reach validation.
func (h *ConverterHandlerImpl) HandleSelectFile(c echo.Context) error {
	reader, err := c.Request().MultipartReader()
	if err != nil {
		return NewBadRequestError("no file provided", err)
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return NewBadRequestError("no file provided", nil)
		}
		if err != nil {
			return NewBadRequestError("malformed multipart body", err)
		}
		if part.FormName() != "file" || part.FileName() == "" {
			part.Close()
			continue
		}

		f, err := readFilePart(part)
		part.Close()
		if err != nil {
			return NewBadRequestError("failed to read uploaded file", err)
		}

		if err := h.ctrl.HandleDrop([]*models.SelectedFile{f}); err != nil {
			return fromControllerError(err)
		}
		return c.JSON(http.StatusOK, models.FileInfo{
			Name: f.Name,
			Size: intake.FormatFileSize(f.Size),
		})
	}
}

func readFilePart(part *multipart.Part) (*models.SelectedFile, error) {
	f := &models.SelectedFile{
		Name:     part.FileName(),
		MIMEType: part.Header.Get(echo.HeaderContentType),
	}

	data, err := io.ReadAll(io.LimitReader(part, intake.MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	rest, err := io.Copy(io.Discard, part)
	if err != nil {
		return nil, err
	}

	f.Size = int64(len(data)) + rest
	if f.Size <= intake.MaxFileSize {
		f.Data = data
	}
	return f, nil
}

// HandleUpload sends the selected file to the converter and returns the
// outcome. The upload outlives the HTTP request that started it.
func (h *ConverterHandlerImpl) HandleUpload(c echo.Context) error {
	ctx := context.WithoutCancel(c.Request().Context())
	result, err := h.ctrl.Upload(ctx)
	if err != nil {
		return fromControllerError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// HandleCopy copies the rendered result to the clipboard
func (h *ConverterHandlerImpl) HandleCopy(c echo.Context) error {
	if err := h.ctrl.CopyResult(c.Request().Context()); err != nil {
		return fromControllerError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
