package lecternsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error kinds as sent in the "error" field of failed responses.
const (
	KindValidation    = "validation"
	KindNotFound      = "not_found"
	KindConflict      = "conflict"
	KindUnauthorized  = "unauthorized"
	KindForbidden     = "forbidden"
	KindUnprocessable = "unprocessable"
	KindRateLimited   = "rate_limited"
	KindUnavailable   = "unavailable"
	KindInternal      = "internal"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int               `json:"-"`
	Kind       string            `json:"error"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lectern: %d %s: %s", e.StatusCode, e.Kind, e.Message)
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// StatusCode returns the HTTP status of an APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// parseErrorResponse builds an APIError from a failed response. Bodies that
// are not JSON (proxies, panics) keep the status text as message.
func parseErrorResponse(resp *http.Response, body []byte) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Kind == "" {
		apiErr.Kind = KindInternal
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
