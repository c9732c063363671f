package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// NetworkError means the request never produced a response
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response without a structured message
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// ValidationError is a non-2xx response carrying a human-readable message,
// e.g. {"message": "CPF já cadastrado"}.
type ValidationError struct {
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (HTTP %d): %s", e.StatusCode, e.Message)
}

// Reason returns the server's message verbatim
func (e *ValidationError) Reason() string { return e.Message }

// NotFoundError means the target of an update or delete no longer exists
type NotFoundError struct {
	ID      string
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("client %s not found: %s", e.ID, e.Message)
	}
	return fmt.Sprintf("client %s not found", e.ID)
}

// Reason returns the server's message, if it sent one
func (e *NotFoundError) Reason() string { return e.Message }

// DecodeError is a 2xx response whose body is not what the call expects
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// errorBody is the error payload of the backend
type errorBody struct {
	Message string `json:"message"`
}

// parseErrorResponse maps a non-2xx response to one of the typed errors.
// targetID is the id of the record being mutated, "" for list calls.
func parseErrorResponse(statusCode int, body []byte, targetID string) error {
	var eb errorBody
	msg := ""
	if err := json.Unmarshal(body, &eb); err == nil {
		msg = strings.TrimSpace(eb.Message)
	}

	if statusCode == http.StatusNotFound && targetID != "" {
		return &NotFoundError{ID: targetID, Message: msg}
	}
	if msg != "" {
		return &ValidationError{StatusCode: statusCode, Message: msg}
	}
	return &ServerError{StatusCode: statusCode}
}
