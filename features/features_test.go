package features

import (
	"errors"
	"math"
	"testing"

	"github.com/tsawler/pdfoutline/layout"
	"github.com/tsawler/pdfoutline/model"
)

// makeWord creates a word token at (x, y) inside the given layout line
func makeWord(txt string, x, y, width, height float64, block, line int) model.WordToken {
	return model.WordToken{
		Text:  txt,
		BBox:  model.NewBBox(x, y, x+width, y+height),
		Block: block,
		Line:  line,
	}
}

// makePage builds a letter-size page with a bold 16pt heading line in
// block 0 and a 10pt body block 1 with four spans
func makePage() *model.Page {
	page := model.NewPage(3, 612, 792)
	page.AddWord(makeWord("1.", 72, 100, 12, 16, 0, 0))
	page.AddWord(makeWord("Introduction", 90, 100, 90, 16, 0, 0))
	page.AddWord(makeWord("Body", 72, 130, 30, 10, 1, 0))
	page.AddWord(makeWord("text", 106, 130, 25, 10, 1, 0))

	page.AddBlock(model.Block{Number: 0, Lines: []model.LayoutLine{{Spans: []model.Span{
		{Size: 16, Font: "Helvetica-Bold", Text: "1."},
		{Size: 16, Font: "Helvetica-Bold", Text: "Introduction"},
	}}}})
	page.AddBlock(model.Block{Number: 1, Lines: []model.LayoutLine{
		{Spans: []model.Span{{Size: 10, Font: "Helvetica"}, {Size: 10, Font: "Helvetica"}}},
		{Spans: []model.Span{{Size: 10, Font: "Helvetica"}, {Size: 10, Font: "Helvetica"}}},
	}})
	return page
}

func detectLines(t *testing.T, page *model.Page) []layout.Line {
	t.Helper()
	result := layout.NewLineDetector().DetectPage(page)
	return result.Lines
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewPageContext(t *testing.T) {
	ctx := NewPageContext(makePage())

	if ctx.Number != 3 {
		t.Errorf("Expected page 3, got %d", ctx.Number)
	}
	if !almostEqual(ctx.AverageFontSize, 12) {
		t.Errorf("Expected average font size 12, got %f", ctx.AverageFontSize)
	}
}

func TestCompute_HeadingLine(t *testing.T) {
	page := makePage()
	lines := detectLines(t, page)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}

	rec, err := Compute(&lines[0], NewPageContext(page))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if rec.Text != "1. Introduction" {
		t.Errorf("Expected text '1. Introduction', got '%s'", rec.Text)
	}
	if rec.Page != 3 {
		t.Errorf("Expected page 3, got %d", rec.Page)
	}
	if rec.FontSize != 16 {
		t.Errorf("Expected font size 16, got %f", rec.FontSize)
	}
	if rec.IsBold != 1 {
		t.Errorf("Expected bold, got %d", rec.IsBold)
	}
	if !almostEqual(rec.RelativeFontSize, 16.0/12.0) {
		t.Errorf("Expected relative font size %f, got %f", 16.0/12.0, rec.RelativeFontSize)
	}
	if rec.X != 72 || rec.Y != 100 || rec.Y1 != 116 {
		t.Errorf("Expected position (72, 100, 116), got (%f, %f, %f)", rec.X, rec.Y, rec.Y1)
	}
	if !almostEqual(rec.XNorm, 72.0/612.0) || !almostEqual(rec.YNorm, 100.0/792.0) {
		t.Errorf("Unexpected normalized position (%f, %f)", rec.XNorm, rec.YNorm)
	}
	if rec.StartsWithNumbering != 1 {
		t.Error("Expected numbering to be detected")
	}
	if rec.WordCount != 2 || rec.CharCount != 15 {
		t.Errorf("Expected 2 words and 15 chars, got %d and %d", rec.WordCount, rec.CharCount)
	}
	if rec.IsAllCaps != 0 || rec.IsMostlyDigits != 0 || rec.EndsWithColon != 0 {
		t.Errorf("Unexpected pattern flags: caps=%d digits=%d colon=%d",
			rec.IsAllCaps, rec.IsMostlyDigits, rec.EndsWithColon)
	}
}

func TestCompute_UnresolvedSpans(t *testing.T) {
	page := model.NewPage(1, 612, 792)
	page.AddWord(makeWord("Orphan", 72, 100, 40, 12, 9, 0))
	lines := detectLines(t, page)

	rec, err := Compute(&lines[0], NewPageContext(page))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if rec.FontSize != 0 || rec.IsBold != 0 || rec.RelativeFontSize != 0 {
		t.Errorf("Expected zero font metrics, got size=%f bold=%d rel=%f",
			rec.FontSize, rec.IsBold, rec.RelativeFontSize)
	}
}

func TestCompute_BoldNeedsStrictMajority(t *testing.T) {
	page := model.NewPage(1, 612, 792)
	page.AddWord(makeWord("Mixed", 72, 100, 40, 12, 0, 0))
	page.AddBlock(model.Block{Number: 0, Lines: []model.LayoutLine{{Spans: []model.Span{
		{Size: 12, Font: "Times-Bold"},
		{Size: 12, Font: "Times-Roman"},
	}}}})
	lines := detectLines(t, page)

	rec, err := Compute(&lines[0], NewPageContext(page))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if rec.IsBold != 0 {
		t.Error("Expected half-bold spans to not count as bold")
	}
}

func TestCompute_ZeroDimensions(t *testing.T) {
	page := model.NewPage(1, 0, 0)
	page.AddWord(makeWord("Flat", 72, 100, 40, 12, 0, 0))
	lines := detectLines(t, page)

	rec, err := Compute(&lines[0], NewPageContext(page))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if rec.XNorm != 0 || rec.YNorm != 0 {
		t.Errorf("Expected zero normalized position, got (%f, %f)", rec.XNorm, rec.YNorm)
	}
}

func TestCompute_Errors(t *testing.T) {
	ctx := NewPageContext(makePage())

	if _, err := Compute(nil, ctx); !errors.Is(err, ErrEmptyLine) {
		t.Errorf("Expected ErrEmptyLine for nil line, got %v", err)
	}
	if _, err := Compute(&layout.Line{}, ctx); !errors.Is(err, ErrEmptyLine) {
		t.Errorf("Expected ErrEmptyLine for empty line, got %v", err)
	}

	bad := layout.Line{
		Words: []model.WordToken{makeWord("Broken", math.NaN(), 100, 40, 12, 0, 0)},
		Text:  "Broken",
		RefY:  100,
	}
	if _, err := Compute(&bad, ctx); !errors.Is(err, ErrNonFinite) {
		t.Errorf("Expected ErrNonFinite, got %v", err)
	}
}

func TestApplyContext(t *testing.T) {
	records := []model.FeatureRecord{
		{X: 72, Y: 100, Y1: 116, FontSize: 16, YGapFromPrev: 99},
		{X: 90, Y: 130, Y1: 140, FontSize: 10},
		{X: 72, Y: 150, Y1: 160, FontSize: 12},
	}

	ApplyContext(records)

	first := records[0]
	if first.YGapFromPrev != 0 || first.XDiffFromPrev != 0 || first.FontDiffFromPrev != 0 {
		t.Errorf("Expected zero deltas on the first record, got (%f, %f, %f)",
			first.YGapFromPrev, first.XDiffFromPrev, first.FontDiffFromPrev)
	}

	tests := []struct {
		index       int
		yGap, xDiff float64
		fontDiff    float64
	}{
		{1, 14, 18, -6},
		{2, 10, -18, 2},
	}
	for _, tt := range tests {
		r := records[tt.index]
		if r.YGapFromPrev != tt.yGap || r.XDiffFromPrev != tt.xDiff || r.FontDiffFromPrev != tt.fontDiff {
			t.Errorf("Record %d: expected (%f, %f, %f), got (%f, %f, %f)", tt.index,
				tt.yGap, tt.xDiff, tt.fontDiff, r.YGapFromPrev, r.XDiffFromPrev, r.FontDiffFromPrev)
		}
	}
}

func TestComputePage(t *testing.T) {
	page := makePage()
	lines := detectLines(t, page)
	lines = append(lines, layout.Line{}) // fails and is skipped

	records, skipped := ComputePage(NewPageContext(page), lines)

	if skipped != 1 {
		t.Errorf("Expected 1 skipped line, got %d", skipped)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].YGapFromPrev != 0 {
		t.Errorf("Expected zero gap on the first record, got %f", records[0].YGapFromPrev)
	}
	if records[1].YGapFromPrev != 14 {
		t.Errorf("Expected gap 14, got %f", records[1].YGapFromPrev)
	}
	if records[1].FontDiffFromPrev != -6 {
		t.Errorf("Expected font diff -6, got %f", records[1].FontDiffFromPrev)
	}
}
