package pages

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/pagelab/pagelab/pkg/handlers"
	"github.com/pagelab/pagelab/pkg/routes"
)

// Handler provides HTTP endpoints for the page operations. Each endpoint
// accepts a multipart upload, runs one composer operation, and responds
// with either JSON or the derived PDF bytes.
type Handler struct {
	composer      *Composer
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a page operations handler.
func NewHandler(composer *Composer, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		composer:      composer,
		logger:        logger.With("handler", "pages"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the page operation route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/pdf",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/info", Handler: h.Info},
			{Method: "POST", Pattern: "/text", Handler: h.ExtractText},
			{Method: "POST", Pattern: "/filter", Handler: h.Filter},
			{Method: "POST", Pattern: "/rotate", Handler: h.Rotate},
			{Method: "POST", Pattern: "/rotate-raw", Handler: h.RotateRaw},
			{Method: "POST", Pattern: "/split", Handler: h.Split},
			{Method: "POST", Pattern: "/merge", Handler: h.Merge},
		},
	}
}

func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	_, attrs, err := h.composer.Info(data)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, attrs)
}

func (h *Handler) ExtractText(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	text, attrs, err := h.composer.ExtractText(data, r.FormValue("page_range"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]any{
		"text":       text,
		"attributes": attrs,
	})
}

func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	removeBlanks, _ := strconv.ParseBool(r.FormValue("remove_blank_pages"))
	opts, err := NewFilterOptions(r.FormValue("page_range"), removeBlanks)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	out, attrs, err := h.composer.Filter(data, opts)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondPDF(w, out, attrs)
}

func (h *Handler) Rotate(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	degrees, err := strconv.Atoi(r.FormValue("angle"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("%w: angle must be an integer", ErrInvalidParameter))
		return
	}

	angle, err := ParseRotationAngle(degrees)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	out, attrs, err := h.composer.Rotate(data, r.FormValue("page_range"), angle)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondPDF(w, out, attrs)
}

func (h *Handler) RotateRaw(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	degrees, err := strconv.Atoi(r.FormValue("angle"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("%w: angle must be an integer", ErrInvalidParameter))
		return
	}

	out, attrs, err := h.composer.RotateRaw(data, r.FormValue("page_range"), degrees)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondPDF(w, out, attrs)
}

func (h *Handler) Split(w http.ResponseWriter, r *http.Request) {
	data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	pageIncrement := 1
	if v := r.FormValue("page_increment"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest,
				fmt.Errorf("%w: page_increment must be an integer", ErrInvalidParameter))
			return
		}
		pageIncrement = parsed
	}

	parts, attrs, err := h.composer.Split(data, pageIncrement)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.respondParts(w, parts, attrs)
}

func (h *Handler) Merge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
		return
	}

	var inputs [][]byte
	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["files"] {
			data, err := readFileHeader(header, h.maxUploadSize)
			if err != nil {
				handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
				return
			}
			inputs = append(inputs, data)
		}
	}

	out, attrs, err := h.composer.Merge(inputs)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondPDF(w, out, attrs)
}

// respondParts streams split results as a multipart/mixed body, one PDF per
// part, with the original document's attributes in the response header.
func (h *Handler) respondParts(w http.ResponseWriter, parts [][]byte, attrs *FileAttributes) {
	mw := multipart.NewWriter(w)
	w.Header().Set("Content-Type", "multipart/mixed; boundary="+mw.Boundary())
	handlers.RespondPDFHeader(w, attrs)
	w.WriteHeader(http.StatusOK)

	for i, part := range parts {
		pw, err := mw.CreateFormFile("documents", fmt.Sprintf("part-%d.pdf", i+1))
		if err != nil {
			h.logger.Error("failed to create multipart section", "part", i+1, "error", err)
			return
		}
		if _, err := pw.Write(part); err != nil {
			h.logger.Error("failed to write multipart section", "part", i+1, "error", err)
			return
		}
	}

	if err := mw.Close(); err != nil {
		h.logger.Error("failed to finalize multipart response", "error", err)
	}
}

// readUpload reads the single "file" form upload, bounded by the configured
// maximum size. It writes the error response itself and reports success.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, err)
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("%w: missing file upload", ErrInvalidParameter))
		return nil, false
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge,
			errors.New("file exceeds maximum upload size"))
		return nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return nil, false
	}

	return data, true
}

func readFileHeader(header *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if header.Size > maxSize {
		return nil, errors.New("file exceeds maximum upload size")
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
