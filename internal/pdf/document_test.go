package pdf_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pagelab/pagelab/internal/pdf"
)

func buildPDF(t *testing.T, pageTexts ...string) []byte {
	t.Helper()

	doc := gofpdf.New("P", "mm", "A4", "")
	for _, text := range pageTexts {
		doc.AddPage()
		if text != "" {
			doc.SetFont("Helvetica", "", 12)
			doc.Text(20, 20, text)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("failed to build fixture PDF: %v", err)
	}
	return buf.Bytes()
}

func TestLoad(t *testing.T) {
	data := buildPDF(t, "Page 1", "Page 2")

	doc, err := pdf.Load(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.PageCount() != 2 {
		t.Errorf("page count: got %d, want 2", doc.PageCount())
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := pdf.Load([]byte("definitely not a pdf")); err == nil {
		t.Error("expected error for non-PDF input")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	data := buildPDF(t, "Page 1", "Page 2", "Page 3")

	doc, err := pdf.Load(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	reloaded, err := pdf.Load(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.PageCount() != 3 {
		t.Errorf("page count after round trip: got %d, want 3", reloaded.PageCount())
	}
}

func TestPageRotationDefaultsToZero(t *testing.T) {
	data := buildPDF(t, "Page 1")

	doc, err := pdf.Load(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	got, err := doc.PageRotation(1)
	if err != nil {
		t.Fatalf("page rotation: %v", err)
	}
	if got != 0 {
		t.Errorf("rotation: got %d, want 0", got)
	}
}

func TestSetPageRotation(t *testing.T) {
	data := buildPDF(t, "Page 1", "Page 2")

	doc, err := pdf.Load(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := doc.SetPageRotation(2, 180); err != nil {
		t.Fatalf("set rotation: %v", err)
	}

	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	reloaded, err := pdf.Load(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	first, err := reloaded.PageRotation(1)
	if err != nil {
		t.Fatalf("page 1 rotation: %v", err)
	}
	if first != 0 {
		t.Errorf("page 1 rotation: got %d, want 0", first)
	}

	second, err := reloaded.PageRotation(2)
	if err != nil {
		t.Fatalf("page 2 rotation: %v", err)
	}
	if second != 180 {
		t.Errorf("page 2 rotation: got %d, want 180", second)
	}
}

func TestExtractPages(t *testing.T) {
	data := buildPDF(t, "first page", "second page", "third page")

	doc, err := pdf.Load(data)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	out, err := doc.ExtractPages([]int{1, 3})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	extracted, err := pdf.Load(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if extracted.PageCount() != 2 {
		t.Errorf("page count: got %d, want 2", extracted.PageCount())
	}

	reader, err := pdf.NewTextReader(out)
	if err != nil {
		t.Fatalf("text reader: %v", err)
	}
	text, err := reader.PageText(1)
	if err != nil {
		t.Fatalf("page text: %v", err)
	}
	if !strings.Contains(text, "first page") {
		t.Errorf("extracted page 1 text: got %q", text)
	}
}

func TestMerge(t *testing.T) {
	first := buildPDF(t, "a1", "a2")
	second := buildPDF(t, "b1")

	merged, err := pdf.Merge([][]byte{first, second})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	doc, err := pdf.Load(merged)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if doc.PageCount() != 3 {
		t.Errorf("page count: got %d, want 3", doc.PageCount())
	}
}

func TestTextReaderOutOfRangePages(t *testing.T) {
	data := buildPDF(t, "only page")

	reader, err := pdf.NewTextReader(data)
	if err != nil {
		t.Fatalf("text reader: %v", err)
	}

	for _, pageNr := range []int{0, -1, 2} {
		text, err := reader.PageText(pageNr)
		if err != nil {
			t.Errorf("page %d: unexpected error: %v", pageNr, err)
		}
		if text != "" {
			t.Errorf("page %d: expected empty text, got %q", pageNr, text)
		}
	}
}
