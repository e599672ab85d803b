package apiclient

import "fmt"

// APIError is a non-2xx response from the converter with a structured body.
type APIError struct {
	Status         int
	Message        string
	DocumentTitle  *string
	SupportedTypes []string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("converter returned status %d", e.Status)
	}
	return fmt.Sprintf("converter returned status %d: %s", e.Status, e.Message)
}

// TransportError means no usable response was obtained: the request never
// completed or its body was not JSON.
type TransportError struct {
	Op    string
	Cause error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// errorBody is the JSON shape of a converter failure.
type errorBody struct {
	Error          string   `json:"error"`
	DocumentTitle  string   `json:"document_title"`
	SupportedTypes []string `json:"supported_types"`
}
