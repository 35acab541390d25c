package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

func Unauthorized(message string) *APIError {
	if strings.TrimSpace(message) == "" {
		message = "unauthorized"
	}

	return New("UNAUTHORIZED", message, "", http.StatusUnauthorized)
}

// FromResponse builds an error for a non-2xx response. The blog backend
// reports failures as `{"message": ...}` from its exception handlers and as
// `{"error": ...}` in a few auth paths; either field wins over the generic
// status text.
func FromResponse(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}

	message := ""
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			message = payload.Message
		} else if payload.Error != "" {
			message = payload.Error
		}
	}

	if status == http.StatusUnauthorized {
		return Unauthorized(message)
	}

	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}

	return New("REQUEST_FAILED", message, http.StatusText(status), status)
}

// IsUnauthorized reports whether err is an APIError carrying a 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatus == http.StatusUnauthorized
	}

	return false
}
