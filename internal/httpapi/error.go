package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-success response from the backend. The backend
// reports failures as {"message": "..."} (sometimes {"error": "..."}),
// so both shapes are decoded before falling back to the status text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := payload.Message
	if msg == "" {
		msg = payload.Err
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	return &APIError{StatusCode: status, Message: msg}
}
