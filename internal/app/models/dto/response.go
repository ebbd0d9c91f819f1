package dto

import "time"

// APIResponse is the standard envelope for API endpoints under /api/v1.
// The legacy cache endpoints under /api/certificates bypass it to preserve
// their original wire format.
type APIResponse struct {
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}
