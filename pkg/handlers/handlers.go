// Package handlers provides HTTP response utilities for JSON and binary APIs.
// These stateless functions standardize response formatting across handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// AttributesHeader carries the JSON-encoded file attributes of a binary
// PDF response.
const AttributesHeader = "X-Pdf-Attributes"

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes a JSON error response.
// The response body contains {"error": "<error message>"}.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("handler error", "error", err, "status", status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// RespondPDFHeader sets the attributes header without writing a body,
// for responses whose body is not a single PDF (e.g. multipart parts).
func RespondPDFHeader(w http.ResponseWriter, attrs any) {
	if attrs == nil {
		return
	}
	if encoded, err := json.Marshal(attrs); err == nil {
		w.Header().Set(AttributesHeader, string(encoded))
	}
}

// RespondPDF writes a binary PDF response. When attrs is non-nil, its JSON
// encoding is placed in the X-Pdf-Attributes header so callers receive the
// document metadata alongside the bytes.
func RespondPDF(w http.ResponseWriter, data []byte, attrs any) {
	if attrs != nil {
		if encoded, err := json.Marshal(attrs); err == nil {
			w.Header().Set(AttributesHeader, string(encoded))
		}
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
