package models

// APIStatus represents the last observed health of the conversion API.
type APIStatus string

const (
	APIStatusChecking APIStatus = "checking"
	APIStatusHealthy  APIStatus = "healthy"
	APIStatusOffline  APIStatus = "offline"
)

// Label returns the indicator text shown next to the status.
func (s APIStatus) Label() string {
	switch s {
	case APIStatusHealthy:
		return "✅ API Online"
	case APIStatusOffline:
		return "❌ API Offline"
	default:
		return "🔄 Verificando..."
	}
}

// UploadState represents where the controller is in the upload pipeline.
type UploadState string

const (
	UploadStateIdle       UploadState = "idle"
	UploadStateValidating UploadState = "validating"
	UploadStateRejected   UploadState = "rejected"
	UploadStateAccepted   UploadState = "accepted"
	UploadStateUploading  UploadState = "uploading"
	UploadStateSucceeded  UploadState = "succeeded"
	UploadStateFailed     UploadState = "failed"
)
