package statsapi

import "errors"

// APIError represents errors from stats API operations
type APIError struct {
	Endpoint string // Logical endpoint name (e.g., "schedule")
	Code     string // Error code (e.g., "network_error")
	Message  string // Error message
	Err      error  // Underlying error
}

func (e APIError) Error() string {
	if e.Err != nil {
		return e.Endpoint + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Endpoint + ": " + e.Code + ": " + e.Message
}

func (e APIError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeNetworkError = "network_error"
	ErrCodeServerError  = "server_error"
	ErrCodeNotFound     = "not_found"
	ErrCodeInvalidData  = "invalid_data"
	ErrCodeUnknown      = "unknown"
)

// Sentinel errors
var (
	ErrNetworkError = errors.New("network error")
	ErrServerError  = errors.New("server error")
	ErrNotFound     = errors.New("data not found")
	ErrInvalidData  = errors.New("invalid data format")
)

// NewAPIError creates a new stats API error
func NewAPIError(endpoint, code, message string, err error) APIError {
	return APIError{
		Endpoint: endpoint,
		Code:     code,
		Message:  message,
		Err:      err,
	}
}

// ErrorCode extracts the stats API error code from an error, returning
// ErrCodeUnknown for errors that did not originate here.
func ErrorCode(err error) string {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return ErrCodeUnknown
}
