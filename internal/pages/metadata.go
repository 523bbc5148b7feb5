package pages

import (
	"fmt"

	"github.com/pagelab/pagelab/internal/pdf"
)

// ExtractMetadata reads the document-information record of a loaded document
// into a FileAttributes. The page count comes from the live document and the
// byte size from the caller, since the document may have been mutated since
// it was read.
//
// A structurally absent information record fails with
// ErrMetadataExtractionFailed; individually absent fields simply yield nil
// attribute fields.
func ExtractMetadata(doc *pdf.Document, sizeBytes int64) (*FileAttributes, error) {
	info, err := doc.Info()
	if err != nil {
		return nil, fmt.Errorf("%w: reading document information record: %v", ErrMetadataExtractionFailed, err)
	}
	if info == nil {
		return nil, fmt.Errorf("%w: document carries no information record", ErrMetadataExtractionFailed)
	}

	attrs := &FileAttributes{
		PageCount: doc.PageCount(),
		SizeBytes: sizeBytes,
		Title:     doc.InfoString(info, "Title"),
		Author:    doc.InfoString(info, "Author"),
		Subject:   doc.InfoString(info, "Subject"),
		Keywords:  doc.InfoString(info, "Keywords"),
	}

	if t := doc.InfoDate(info, "CreationDate"); t != nil {
		formatted := t.Local().Format(DateFormat)
		attrs.CreationDate = &formatted
	}
	if t := doc.InfoDate(info, "ModDate"); t != nil {
		formatted := t.Local().Format(DateFormat)
		attrs.ModificationDate = &formatted
	}

	return attrs, nil
}
