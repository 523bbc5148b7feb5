package pages

import (
	"log/slog"
	"strings"

	"github.com/pagelab/pagelab/internal/pdf"
)

// BlankPageClassifier decides whether individual pages of one loaded
// document are blank. A page is blank only if it has no visible text, no
// XObjects in its resources, no annotations, and no form widget bound to it.
//
// Verdicts are computed on demand and never cached; documents are ephemeral
// per operation.
type BlankPageClassifier struct {
	doc    *pdf.Document
	text   *pdf.TextReader
	logger *slog.Logger
}

// NewBlankPageClassifier builds a classifier over a loaded document. The
// text reader may be nil when the text library could not parse the input;
// the text check then degrades to "no text" with a logged warning.
func NewBlankPageClassifier(doc *pdf.Document, text *pdf.TextReader, logger *slog.Logger) *BlankPageClassifier {
	return &BlankPageClassifier{
		doc:    doc,
		text:   text,
		logger: logger,
	}
}

// IsBlank classifies the given 1-based page. The checks run in a fixed
// order (text, XObjects, annotations, form widgets) and short-circuit on
// the first one that disqualifies the page.
func (c *BlankPageClassifier) IsBlank(pageNr int) (bool, error) {
	if c.text == nil {
		c.logger.Warn("text reader unavailable, treating page text as empty", "page", pageNr)
	} else {
		text, err := c.text.PageText(pageNr)
		if err != nil {
			return false, err
		}
		if strings.TrimSpace(text) != "" {
			return false, nil
		}
	}

	// Failures while listing XObjects degrade to "zero objects" rather than
	// failing the whole operation.
	xObjects, err := c.doc.PageXObjectCount(pageNr)
	if err != nil {
		c.logger.Warn("error accessing XObjects", "page", pageNr, "error", err)
		xObjects = 0
	}
	if xObjects > 0 {
		return false, nil
	}

	annotations, err := c.doc.PageAnnotationCount(pageNr)
	if err != nil {
		return false, err
	}
	if annotations > 0 {
		return false, nil
	}

	hasWidgets, err := c.doc.PageHasFormWidgets(pageNr)
	if err != nil {
		return false, err
	}
	if hasWidgets {
		return false, nil
	}

	return true, nil
}
