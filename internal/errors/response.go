package errors

import "net/http"

// ErrorDetail is the wire representation of a single error
type ErrorDetail struct {
	Message          string         `json:"message"`
	InternalError    string         `json:"internal_error,omitempty"`
	ReportableDetail map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the standard error body returned by the HTTP layer
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// NewErrorResponse builds the wire representation of err. The hint is the
// user-facing message; the raw error string is only included for non-internal
// errors so infrastructure details never leak to clients.
func NewErrorResponse(err error) *ErrorResponse {
	detail := ErrorDetail{
		Message:          Hint(err),
		ReportableDetail: ReportableDetails(err),
	}
	if detail.Message == "" {
		detail.Message = "An unexpected error occurred"
	}
	if !IsInternal(err) {
		detail.InternalError = err.Error()
	}
	return &ErrorResponse{Error: detail}
}

// HTTPStatusFromErr maps sentinel marks to HTTP status codes
func HTTPStatusFromErr(err error) int {
	switch {
	case IsValidation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err):
		return http.StatusConflict
	case IsInvalidOperation(err):
		return http.StatusBadRequest
	case IsPermissionDenied(err):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
