package models

// PDFMediaType is the only MIME type the converter accepts.
const PDFMediaType = "application/pdf"

// SelectedFile is the file currently chosen by the user.
// It is replaced wholesale by every new selection and kept after upload so it can be sent again.
type SelectedFile struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"-"`
}

// FileInfo is the display form of a SelectedFile.
type FileInfo struct {
	Name string `json:"name"`
	Size string `json:"size"`
}
