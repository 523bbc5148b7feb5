// Package pages provides PDF page-level operations: metadata extraction,
// text extraction, page filtering with blank-page removal, rotation,
// splitting, and merging.
package pages

import (
	"errors"
	"net/http"
)

// Domain errors for page operations.
var (
	ErrInvalidPageRange         = errors.New("invalid page range")
	ErrPDFLoadFailed            = errors.New("failed to load PDF document, it may be corrupt or invalid")
	ErrTextExtractionFailed     = errors.New("text extraction failed")
	ErrMetadataExtractionFailed = errors.New("unable to extract PDF metadata")
	ErrProcessing               = errors.New("failed to process PDF")
	ErrInvalidParameter         = errors.New("invalid parameter")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidPageRange):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, ErrPDFLoadFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrTextExtractionFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrMetadataExtractionFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrProcessing):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
