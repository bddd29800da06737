package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBodySize bounds how much of an error response body is read.
const maxErrorBodySize = 64 * 1024

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// newAPIError extracts an error message from a failed response, preferring
// the backend's JSON error field over the raw body.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var wire struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wire); err == nil {
		if wire.Error != "" {
			apiErr.Message = wire.Error
			return apiErr
		}
		if wire.Message != "" {
			apiErr.Message = wire.Message
			return apiErr
		}
	}
	apiErr.Message = string(body)
	return apiErr
}
