// Package response writes the JSON envelope every endpoint returns.
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body shape of every JSON response.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Write sends body with the given status.
func Write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data any) {
	Write(w, http.StatusOK, Envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data any) {
	Write(w, http.StatusCreated, Envelope{Status: http.StatusCreated, Data: data})
}

// Message sends a 200 with only a message.
func Message(w http.ResponseWriter, message string) {
	Write(w, http.StatusOK, Envelope{Status: http.StatusOK, Message: message})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, Envelope{Status: status, Message: message})
}

// ValidationError sends a 422 with field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	Write(w, http.StatusUnprocessableEntity, Envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	Error(w, http.StatusUnauthorized, message)
}

// TooManyRequests sends a 429.
func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Too Many Requests")
}
