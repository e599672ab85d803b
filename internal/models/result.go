package models

import "encoding/json"

// UploadResult is the outcome of one upload. Exactly one of Success or
// Failure is set.
type UploadResult struct {
	Success *UploadSuccess `json:"success,omitempty"`
	Failure *UploadFailure `json:"failure,omitempty"`
}

// UploadSuccess holds the converter's JSON body verbatim.
type UploadSuccess struct {
	Payload json.RawMessage `json:"payload"`
}

// UploadFailure holds the message and optional details shown to the user.
type UploadFailure struct {
	Message        string   `json:"message"`
	DocumentTitle  *string  `json:"documentTitle,omitempty"`
	SupportedTypes []string `json:"supportedTypes,omitempty"`
}

// HasDetails reports whether the failure carries a details block.
func (f *UploadFailure) HasDetails() bool {
	return f.DocumentTitle != nil || f.SupportedTypes != nil
}

// ToastKind distinguishes success and error notifications.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification.
type Toast struct {
	ID      string    `json:"id" msgpack:"id"`
	Message string    `json:"message" msgpack:"message"`
	Kind    ToastKind `json:"kind" msgpack:"kind"`
}
