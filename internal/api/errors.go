package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError is returned for every non-2xx response
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// APIError decodes the error object of the response body, if any
func (e *HTTPError) APIError() (*ErrorBody, error) {
	var envelope struct {
		Error *ErrorBody `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &envelope); err != nil {
		return nil, fmt.Errorf("unable to decode error body: %w", err)
	}
	if envelope.Error == nil {
		return nil, fmt.Errorf("response body has no error object")
	}
	return envelope.Error, nil
}

// Details returns the raw error.details value, or nil
func (e *HTTPError) Details() json.RawMessage {
	body, err := e.APIError()
	if err != nil {
		return nil
	}
	return body.Details
}

func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

func IsValidation(err error) bool {
	return StatusCode(err) == http.StatusBadRequest
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsRetryable reports whether err is worth another attempt: transport
// failures, 429 and 5xx responses.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	code := StatusCode(err)
	if code == 0 {
		return true
	}
	return code == http.StatusTooManyRequests || code >= 500
}
