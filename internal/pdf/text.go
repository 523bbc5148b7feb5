package pdf

import (
	"bytes"

	lpdf "github.com/ledongthuc/pdf"
)

// TextReader extracts plain text from single pages of a PDF document.
type TextReader struct {
	reader *lpdf.Reader
}

// NewTextReader builds a text reader over raw PDF bytes.
func NewTextReader(data []byte) (*TextReader, error) {
	r, err := lpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return &TextReader{reader: r}, nil
}

// PageText returns the plain text of the given 1-based page. Pages without
// content yield an empty string.
func (t *TextReader) PageText(pageNr int) (string, error) {
	if pageNr < 1 || pageNr > t.reader.NumPage() {
		return "", nil
	}

	page := t.reader.Page(pageNr)
	if page.V.IsNull() {
		return "", nil
	}

	return page.GetPlainText(nil)
}
