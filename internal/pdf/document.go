// Package pdf binds the external PDF libraries used by the page operations:
// pdfcpu for the document object graph and ledongthuc/pdf for per-page plain
// text. A Document wraps one loaded pdfcpu context; it holds no state beyond
// that context and is scoped to a single operation.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Document is an in-memory PDF document backed by a pdfcpu context.
type Document struct {
	ctx *model.Context
}

// Load parses raw PDF bytes into a Document. The bytes are validated and
// optimized so page resources can be inspected afterwards.
func Load(data []byte) (*Document, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), configuration())
	if err != nil {
		return nil, err
	}
	return &Document{ctx: ctx}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Bytes serializes the document, including any in-place mutations, back to
// raw PDF bytes.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := api.WriteContext(d.ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PageRotation returns the effective rotation of the given 1-based page.
func (d *Document) PageRotation(pageNr int) (int, error) {
	_, _, inhPAttrs, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return 0, err
	}
	if inhPAttrs == nil {
		return 0, nil
	}
	return inhPAttrs.Rotate, nil
}

// SetPageRotation sets the rotation entry of the given 1-based page to an
// absolute value in degrees. The value is written through to the page
// dictionary without normalization.
func (d *Document) SetPageRotation(pageNr, degrees int) error {
	pageDict, _, _, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return err
	}
	if pageDict == nil {
		return fmt.Errorf("page %d: missing page dict", pageNr)
	}
	pageDict["Rotate"] = types.Integer(degrees)
	return nil
}

// PageXObjectCount returns the number of XObjects (images and forms)
// referenced by the page's resource dictionary.
func (d *Document) PageXObjectCount(pageNr int) (int, error) {
	_, _, inhPAttrs, err := d.ctx.PageDict(pageNr, true)
	if err != nil {
		return 0, err
	}
	if inhPAttrs == nil || inhPAttrs.Resources == nil {
		return 0, nil
	}

	obj, found := inhPAttrs.Resources.Find("XObject")
	if !found {
		return 0, nil
	}

	xObjects, err := d.ctx.DereferenceDict(obj)
	if err != nil {
		return 0, err
	}
	return len(xObjects), nil
}

// PageAnnotationCount returns the number of annotations carried by the page.
func (d *Document) PageAnnotationCount(pageNr int) (int, error) {
	pageDict, _, _, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return 0, err
	}
	if pageDict == nil {
		return 0, nil
	}

	obj, found := pageDict.Find("Annots")
	if !found {
		return 0, nil
	}

	annots, err := d.ctx.DereferenceArray(obj)
	if err != nil {
		return 0, err
	}
	return len(annots), nil
}

// PageHasFormWidgets reports whether any interactive form field has a widget
// annotation bound to the given page. A document-level AcroForm alone does
// not count; a widget must reference this exact page.
func (d *Document) PageHasFormWidgets(pageNr int) (bool, error) {
	_, pageRef, _, err := d.ctx.PageDict(pageNr, false)
	if err != nil {
		return false, err
	}
	if pageRef == nil {
		return false, nil
	}

	catalog, err := d.ctx.Catalog()
	if err != nil {
		return false, err
	}

	obj, found := catalog.Find("AcroForm")
	if !found {
		return false, nil
	}

	form, err := d.ctx.DereferenceDict(obj)
	if err != nil {
		return false, err
	}

	fieldsObj, found := form.Find("Fields")
	if !found {
		return false, nil
	}

	fields, err := d.ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return false, err
	}

	for _, field := range fields {
		bound, err := d.fieldWidgetOnPage(field, pageRef, 0)
		if err != nil {
			return false, err
		}
		if bound {
			return true, nil
		}
	}
	return false, nil
}

// fieldWidgetOnPage walks a form field and its kids looking for a widget
// whose P entry references the page. Depth is bounded to guard against
// cyclic field trees.
func (d *Document) fieldWidgetOnPage(field types.Object, pageRef *types.IndirectRef, depth int) (bool, error) {
	if depth > 10 {
		return false, nil
	}

	fieldDict, err := d.ctx.DereferenceDict(field)
	if err != nil || fieldDict == nil {
		return false, err
	}

	if pObj, found := fieldDict.Find("P"); found {
		if ref, ok := pObj.(types.IndirectRef); ok && ref.ObjectNumber == pageRef.ObjectNumber {
			return true, nil
		}
	}

	kidsObj, found := fieldDict.Find("Kids")
	if !found {
		return false, nil
	}

	kids, err := d.ctx.DereferenceArray(kidsObj)
	if err != nil {
		return false, err
	}

	for _, kid := range kids {
		bound, err := d.fieldWidgetOnPage(kid, pageRef, depth+1)
		if err != nil {
			return false, err
		}
		if bound {
			return true, nil
		}
	}
	return false, nil
}

// ExtractPages serializes the given 1-based pages, in order, into a new
// standalone PDF document.
func (d *Document) ExtractPages(pageNrs []int) ([]byte, error) {
	ctx, err := pdfcpu.ExtractPages(d.ctx, pageNrs, false)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Info provides typed access to the document-information dictionary.
// The returned dictionary is nil when the document carries no info record.
func (d *Document) Info() (types.Dict, error) {
	if d.ctx.Info == nil {
		return nil, nil
	}
	return d.ctx.DereferenceDict(*d.ctx.Info)
}

// InfoString returns the decoded string value of an info dictionary entry,
// or nil when the entry is absent or not a string.
func (d *Document) InfoString(info types.Dict, key string) *string {
	obj, found := info.Find(key)
	if !found {
		return nil
	}

	obj, err := d.ctx.Dereference(obj)
	if err != nil {
		return nil
	}

	var (
		s      string
		decErr error
	)
	switch v := obj.(type) {
	case types.StringLiteral:
		s, decErr = types.StringLiteralToString(v)
	case types.HexLiteral:
		s, decErr = types.HexLiteralToString(v)
	default:
		return nil
	}
	if decErr != nil {
		return nil
	}
	return &s
}

// InfoDate returns the parsed timestamp of an info dictionary date entry,
// or nil when the entry is absent or unparseable.
func (d *Document) InfoDate(info types.Dict, key string) *time.Time {
	s := d.InfoString(info, key)
	if s == nil {
		return nil
	}
	t, ok := types.DateTime(*s, true)
	if !ok {
		return nil
	}
	return &t
}

// Merge combines the given PDF byte buffers, in order, into a single
// document. Inputs are wrapped in read-seekers scoped to this call.
func Merge(inputs [][]byte) ([]byte, error) {
	readers := make([]io.ReadSeeker, 0, len(inputs))
	for _, input := range inputs {
		readers = append(readers, bytes.NewReader(input))
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, configuration()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
