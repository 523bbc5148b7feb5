package pages

import (
	"fmt"
	"log/slog"

	"github.com/pagelab/pagelab/internal/pdf"
)

// Composer orchestrates the page-level operations over the external PDF
// libraries. It holds no per-operation state; every invocation loads its
// own document handles, scoped to that call, so concurrent use on
// independent inputs is safe.
type Composer struct {
	logger *slog.Logger
}

// NewComposer creates a composer with the given logger.
func NewComposer(logger *slog.Logger) *Composer {
	return &Composer{
		logger: logger.With("system", "pages"),
	}
}

// Info loads a document and returns its attributes alongside the unchanged
// input bytes.
func (c *Composer) Info(data []byte) ([]byte, *FileAttributes, error) {
	doc, err := pdf.Load(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrPDFLoadFailed, err)
	}

	attrs, err := ExtractMetadata(doc, int64(len(data)))
	if err != nil {
		return nil, nil, err
	}

	c.logger.Info("extracted PDF info",
		"pages", attrs.PageCount,
		"size_bytes", attrs.SizeBytes,
	)
	return data, attrs, nil
}

// ExtractText returns the concatenated plain text of the pages selected by
// the range expression, each page's text followed by a newline, in
// ascending page order.
func (c *Composer) ExtractText(data []byte, pageRange string) (string, *FileAttributes, error) {
	doc, err := pdf.Load(data)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrPDFLoadFailed, err)
	}

	pageSet, err := ResolvePageRange(pageRange, doc.PageCount())
	if err != nil {
		return "", nil, err
	}

	reader, err := pdf.NewTextReader(data)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrTextExtractionFailed, err)
	}

	var combined []byte
	for _, page := range pageSet {
		text, err := reader.PageText(page)
		if err != nil {
			return "", nil, fmt.Errorf("%w: page %d: %v", ErrTextExtractionFailed, page, err)
		}
		combined = append(combined, text...)
		combined = append(combined, '\n')
	}

	attrs, err := ExtractMetadata(doc, int64(len(data)))
	if err != nil {
		return "", nil, err
	}

	c.logger.Info("extracted text", "pages", pageSet)
	return string(combined), attrs, nil
}

// Filter builds a new document containing, in original order, the pages
// selected by the options. When both a page range and blank removal are
// present, the range applies first. Attributes describe the output
// document, not the input.
func (c *Composer) Filter(data []byte, opts FilterOptions) ([]byte, *FileAttributes, error) {
	doc, err := pdf.Load(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	totalPages := doc.PageCount()
	keepSet, err := ResolvePageRange(opts.PageRange(), totalPages)
	if err != nil {
		return nil, nil, err
	}

	keep := make(map[int]bool, len(keepSet))
	for _, page := range keepSet {
		keep[page] = true
	}

	var classifier *BlankPageClassifier
	if opts.RemoveBlankPages() {
		reader, err := pdf.NewTextReader(data)
		if err != nil {
			c.logger.Warn("text reader unavailable for blank detection", "error", err)
			reader = nil
		}
		classifier = NewBlankPageClassifier(doc, reader, c.logger)
	}

	var kept []int
	for page := 1; page <= totalPages; page++ {
		if !keep[page] {
			continue
		}
		if classifier != nil {
			blank, err := classifier.IsBlank(page)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %v", ErrProcessing, err)
			}
			if blank {
				continue
			}
		}
		kept = append(kept, page)
	}

	if len(kept) == 0 {
		return nil, nil, fmt.Errorf("%w: filter selects no pages", ErrProcessing)
	}

	out, err := doc.ExtractPages(kept)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	filtered, err := pdf.Load(out)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	attrs, err := ExtractMetadata(filtered, int64(len(out)))
	if err != nil {
		return nil, nil, err
	}

	c.logger.Info("filtered pages",
		"input_pages", totalPages,
		"output_pages", attrs.PageCount,
		"remove_blanks", opts.RemoveBlankPages(),
	)
	return out, attrs, nil
}

// Rotate sets an absolute rotation on the pages selected by the range
// expression, restricted to the supported quarter-turn angles.
func (c *Composer) Rotate(data []byte, pageRange string, angle RotationAngle) ([]byte, *FileAttributes, error) {
	return c.rotate(data, pageRange, int(angle))
}

// RotateRaw sets an absolute rotation on the selected pages from a free
// integer degree value. The value passes through to the document rotation
// entry without validation or normalization; this entry point exists for
// callers of the legacy integer contract.
func (c *Composer) RotateRaw(data []byte, pageRange string, degrees int) ([]byte, *FileAttributes, error) {
	return c.rotate(data, pageRange, degrees)
}

// rotate mutates the loaded document in place and reserializes it.
// Post-load failures map to ErrPDFLoadFailed, matching the legacy contract
// of the rotate operation even though the other operations report
// ErrProcessing for equivalent failures.
func (c *Composer) rotate(data []byte, pageRange string, degrees int) ([]byte, *FileAttributes, error) {
	doc, err := pdf.Load(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrPDFLoadFailed, err)
	}

	totalPages := doc.PageCount()
	pageSet, err := ResolvePageRange(pageRange, totalPages)
	if err != nil {
		return nil, nil, err
	}

	for _, page := range pageSet {
		// The resolver already bounds-checks; guard again before touching
		// page dictionaries.
		if page < 1 || page > totalPages {
			continue
		}
		if err := doc.SetPageRotation(page, degrees); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrPDFLoadFailed, err)
		}
	}

	out, err := doc.Bytes()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrPDFLoadFailed, err)
	}

	// The rotate operation reports only counters, no information fields.
	attrs := &FileAttributes{
		PageCount: totalPages,
		SizeBytes: int64(len(out)),
	}

	c.logger.Info("rotated pages", "pages", pageSet, "degrees", degrees)
	return out, attrs, nil
}

// Split partitions the document into consecutive groups of pageIncrement
// pages (the last group may be shorter) and serializes each group as an
// independent document. Attributes describe the original document. A
// zero-page input yields no outputs and is not an error.
func (c *Composer) Split(data []byte, pageIncrement int) ([][]byte, *FileAttributes, error) {
	if pageIncrement <= 0 {
		return nil, nil, fmt.Errorf("%w: page increment must be a positive integer", ErrProcessing)
	}

	doc, err := pdf.Load(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrPDFLoadFailed, err)
	}

	attrs, err := ExtractMetadata(doc, int64(len(data)))
	if err != nil {
		return nil, nil, err
	}

	totalPages := doc.PageCount()
	outputs := [][]byte{}

	if totalPages == 0 {
		c.logger.Warn("input PDF has no pages, returning no split documents")
		return outputs, attrs, nil
	}

	for start := 1; start <= totalPages; start += pageIncrement {
		end := start + pageIncrement - 1
		if end > totalPages {
			end = totalPages
		}

		group := make([]int, 0, end-start+1)
		for page := start; page <= end; page++ {
			group = append(group, page)
		}

		part, err := doc.ExtractPages(group)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to save split document part: %v", ErrProcessing, err)
		}
		outputs = append(outputs, part)
	}

	c.logger.Info("split PDF", "documents", len(outputs), "increment", pageIncrement)
	return outputs, attrs, nil
}

// Merge combines at least two PDF documents into one, in input order, and
// reports the attributes of the merged result.
func (c *Composer) Merge(inputs [][]byte) ([]byte, *FileAttributes, error) {
	if len(inputs) < 2 {
		return nil, nil, fmt.Errorf("%w: at least two PDF files are required for merging", ErrProcessing)
	}

	merged, err := pdf.Merge(inputs)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	doc, err := pdf.Load(merged)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrProcessing, err)
	}

	attrs, err := ExtractMetadata(doc, int64(len(merged)))
	if err != nil {
		return nil, nil, err
	}

	c.logger.Info("merged PDFs", "inputs", len(inputs), "pages", attrs.PageCount)
	return merged, attrs, nil
}
