package reader

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/pages"
)

// letter is a US Letter media box in PDF user space
var letter = model.NewBBox(0, 0, 612, 792)

// testPDFPath returns the path to a sample PDF
func testPDFPath(filename string) string {
	return filepath.Join("..", "pdf-samples", filename)
}

// createTempFile writes content to a temporary file and returns its path
func createTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	return path
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

// ============================================================================
// Header Tests
// ============================================================================

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    PDFVersion
		wantErr bool
	}{
		{"pdf 1.4", "%PDF-1.4\n%\xe2\xe3", PDFVersion{1, 4}, false},
		{"pdf 1.7", "%PDF-1.7\n1 0 obj", PDFVersion{1, 7}, false},
		{"pdf 2.0", "%PDF-2.0", PDFVersion{2, 0}, false},
		{"not a pdf", "PK\x03\x04 zip", PDFVersion{}, true},
		{"too short", "%PD", PDFVersion{}, true},
		{"bad version", "%PDF-x.y", PDFVersion{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHeader(bytes.NewReader([]byte(tt.data)))
			if tt.wantErr {
				if !errors.Is(err, ErrNotPDF) {
					t.Errorf("Expected ErrNotPDF, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected version %s, got %s", tt.want, got)
			}
		})
	}
}

func TestOpenNonExistent(t *testing.T) {
	_, err := Open("/nonexistent/path/document.pdf")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestOpenNotPDF(t *testing.T) {
	path := createTempFile(t, "notes.pdf", "just some text, not a PDF")

	_, err := Open(path)
	if !errors.Is(err, ErrNotPDF) {
		t.Errorf("Expected ErrNotPDF, got %v", err)
	}
}

func TestOpenSample(t *testing.T) {
	pdfPath := testPDFPath("dinosaurs.pdf")
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		t.Skip("test PDF not found:", pdfPath)
	}

	r, err := Open(pdfPath)
	if err != nil {
		t.Fatalf("failed to open: %v", err)
	}
	defer r.Close()

	if r.PageCount() == 0 {
		t.Fatal("expected at least one page")
	}
	page, err := r.LoadPage(0)
	if err != nil {
		t.Fatalf("failed to load page: %v", err)
	}
	if !page.HasDimensions() {
		t.Error("expected page dimensions")
	}
	if len(page.Words) == 0 {
		t.Error("expected words on the first page")
	}

	r.Close()
	if _, err := r.LoadPage(0); !errors.Is(err, pages.ErrSourceClosed) {
		t.Errorf("expected ErrSourceClosed after Close, got %v", err)
	}
}

// ============================================================================
// Page Assembly Tests
// ============================================================================

func TestBuildPage_Empty(t *testing.T) {
	page := BuildPage(1, letter, nil)

	if page.Width != 612 || page.Height != 792 {
		t.Errorf("Expected 612x792, got %.0fx%.0f", page.Width, page.Height)
	}
	if len(page.Words) != 0 || len(page.Blocks) != 0 {
		t.Errorf("Expected empty page, got %d words and %d blocks", len(page.Words), len(page.Blocks))
	}
}

func TestBuildPage_WordsAndSpans(t *testing.T) {
	glyphs := []Glyph{
		{Text: "Hello", Font: "Helvetica-Bold", Size: 24, X: 72, Y: 700, W: 40},
		{Text: " ", Font: "Helvetica-Bold", Size: 24, X: 112, Y: 700, W: 6},
		{Text: "World", Font: "Helvetica-Bold", Size: 24, X: 118, Y: 700, W: 45},
	}

	page := BuildPage(1, letter, glyphs)

	if len(page.Words) != 2 {
		t.Fatalf("Expected 2 words, got %d", len(page.Words))
	}
	hello := page.Words[0]
	if hello.Text != "Hello" || page.Words[1].Text != "World" {
		t.Errorf("Expected 'Hello' 'World', got '%s' '%s'", hello.Text, page.Words[1].Text)
	}

	// baseline 792-700 = 92; box spans 0.8 size above to 0.2 size below
	if !almostEqual(hello.BBox.X0, 72) || !almostEqual(hello.BBox.X1, 112) {
		t.Errorf("Unexpected horizontal extent %.2f..%.2f", hello.BBox.X0, hello.BBox.X1)
	}
	if !almostEqual(hello.BBox.Y0, 72.8) || !almostEqual(hello.BBox.Y1, 96.8) {
		t.Errorf("Unexpected vertical extent %.2f..%.2f", hello.BBox.Y0, hello.BBox.Y1)
	}

	spans := page.LineSpans(hello.Block, hello.Line)
	if len(spans) != 1 {
		t.Fatalf("Expected 1 span, got %d", len(spans))
	}
	if spans[0].Text != "Hello World" || spans[0].Size != 24 || !spans[0].IsBold() {
		t.Errorf("Unexpected span %+v", spans[0])
	}
}

func TestBuildPage_GapSplitsWords(t *testing.T) {
	glyphs := []Glyph{
		{Text: "A", Font: "Times", Size: 10, X: 72, Y: 700, W: 6},
		{Text: "B", Font: "Times", Size: 10, X: 78, Y: 700, W: 6},
		{Text: "C", Font: "Times", Size: 10, X: 100, Y: 700, W: 6},
	}

	page := BuildPage(1, letter, glyphs)

	if len(page.Words) != 2 {
		t.Fatalf("Expected 2 words, got %d", len(page.Words))
	}
	if page.Words[0].Text != "AB" || page.Words[1].Text != "C" {
		t.Errorf("Expected 'AB' 'C', got '%s' '%s'", page.Words[0].Text, page.Words[1].Text)
	}
}

func TestBuildPage_SplitsMultiRuneRuns(t *testing.T) {
	glyphs := []Glyph{
		{Text: "Annual Report", Font: "Arial", Size: 12, X: 72, Y: 700, W: 130},
	}

	page := BuildPage(1, letter, glyphs)

	if len(page.Words) != 2 {
		t.Fatalf("Expected 2 words, got %d", len(page.Words))
	}
	if page.Words[0].Text != "Annual" || page.Words[1].Text != "Report" {
		t.Errorf("Expected 'Annual' 'Report', got '%s' '%s'", page.Words[0].Text, page.Words[1].Text)
	}
	if !almostEqual(page.Words[1].BBox.X0, 142) {
		t.Errorf("Expected second word at x 142, got %.2f", page.Words[1].BBox.X0)
	}
}

func TestBuildPage_BlocksAndLines(t *testing.T) {
	glyphs := []Glyph{
		// Written out of order: rows are sorted top to bottom
		{Text: "Later", Font: "Times", Size: 10, X: 72, Y: 620, W: 30},
		{Text: "First", Font: "Times", Size: 10, X: 72, Y: 700, W: 30},
		{Text: "Second", Font: "Times", Size: 10, X: 72, Y: 688, W: 36},
	}

	page := BuildPage(1, letter, glyphs)

	if len(page.Blocks) != 2 {
		t.Fatalf("Expected 2 blocks, got %d", len(page.Blocks))
	}
	if len(page.Blocks[0].Lines) != 2 {
		t.Errorf("Expected 2 lines in the first block, got %d", len(page.Blocks[0].Lines))
	}

	want := []struct {
		text        string
		block, line int
	}{
		{"First", 0, 0},
		{"Second", 0, 1},
		{"Later", 1, 0},
	}
	if len(page.Words) != len(want) {
		t.Fatalf("Expected %d words, got %d", len(want), len(page.Words))
	}
	for i, w := range want {
		got := page.Words[i]
		if got.Text != w.text || got.Block != w.block || got.Line != w.line {
			t.Errorf("Word %d: expected %s at (%d, %d), got %s at (%d, %d)",
				i, w.text, w.block, w.line, got.Text, got.Block, got.Line)
		}
	}
}

func TestBuildPage_FontChangeStartsSpan(t *testing.T) {
	glyphs := []Glyph{
		{Text: "Note:", Font: "Arial-Bold", Size: 11, X: 72, Y: 700, W: 30},
		{Text: " ", Font: "Arial", Size: 11, X: 102, Y: 700, W: 3},
		{Text: "details", Font: "Arial", Size: 11, X: 105, Y: 700, W: 36},
	}

	page := BuildPage(1, letter, glyphs)

	spans := page.LineSpans(0, 0)
	if len(spans) != 2 {
		t.Fatalf("Expected 2 spans, got %d", len(spans))
	}
	if spans[0].Text != "Note:" || spans[1].Text != "details" {
		t.Errorf("Expected 'Note:' 'details', got '%s' '%s'", spans[0].Text, spans[1].Text)
	}
}

func TestBuildPage_MediaBoxOffset(t *testing.T) {
	box := model.NewBBox(10, 20, 622, 812)
	glyphs := []Glyph{{Text: "X", Font: "Times", Size: 10, X: 82, Y: 712, W: 6}}

	page := BuildPage(1, box, glyphs)

	if page.Width != 612 || page.Height != 792 {
		t.Errorf("Expected 612x792, got %.0fx%.0f", page.Width, page.Height)
	}
	w := page.Words[0]
	if !almostEqual(w.BBox.X0, 72) || !almostEqual(w.BBox.Y1, 102) {
		t.Errorf("Expected word at x 72 with bottom 102, got x %.2f bottom %.2f", w.BBox.X0, w.BBox.Y1)
	}
}

func TestBuildPage_SkipsEmptyGlyphs(t *testing.T) {
	glyphs := []Glyph{
		{Text: "", Font: "Times", Size: 10, X: 50, Y: 700},
		{Text: "   ", Font: "Times", Size: 10, X: 60, Y: 700, W: 9},
	}

	page := BuildPage(1, letter, glyphs)

	if len(page.Words) != 0 {
		t.Errorf("Expected no words from whitespace, got %d", len(page.Words))
	}
}

func TestPDFVersion_String(t *testing.T) {
	if got := (PDFVersion{Major: 1, Minor: 7}).String(); got != "1.7" {
		t.Errorf("Expected '1.7', got '%s'", got)
	}
}
