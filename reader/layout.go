package reader

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/pdfoutline/model"
)

// Font box proportions used to turn a baseline into a glyph box
const (
	ascentRatio  = 0.8
	descentRatio = 0.2
)

// Glyph is one positioned text run as decoded from a content stream.
// Coordinates are PDF user space: Y is the baseline, measured upward.
type Glyph struct {
	Text string
	Font string
	Size float64
	X    float64
	Y    float64
	W    float64
}

// Config holds configuration for turning glyphs into words and layout
type Config struct {
	// RowTolerance is the baseline distance (points) within which glyphs share a row
	RowTolerance float64

	// WordGapRatio is the horizontal gap, as a fraction of font size, that starts a new word
	WordGapRatio float64

	// MinWordGap is the gap (points) used when the font size is unknown
	MinWordGap float64

	// BlockGapRatio is the baseline distance, as a multiple of the previous
	// row's font size, that starts a new layout block
	BlockGapRatio float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		RowTolerance:  3.0,
		WordGapRatio:  0.3,
		MinWordGap:    3.0,
		BlockGapRatio: 1.8,
	}
}

// placedGlyph is a single-rune glyph in top-left page coordinates
type placedGlyph struct {
	text     string
	font     string
	size     float64
	x, w     float64
	baseline float64 // distance from the top of the page
}

func (g placedGlyph) isSpace() bool {
	return strings.TrimSpace(g.text) == ""
}

type glyphRow struct {
	minBase, maxBase float64
	glyphs           []placedGlyph
}

func (r *glyphRow) baseline() float64 {
	return (r.minBase + r.maxBase) / 2
}

func (r *glyphRow) maxSize() float64 {
	size := 0.0
	for _, g := range r.glyphs {
		size = math.Max(size, g.size)
	}
	return size
}

// BuildPage assembles a page snapshot from decoded glyphs with default
// configuration. mediaBox is the page rectangle in PDF user space.
func BuildPage(number int, mediaBox model.BBox, glyphs []Glyph) *model.Page {
	return BuildPageWithConfig(number, mediaBox, glyphs, DefaultConfig())
}

// BuildPageWithConfig assembles a page snapshot from decoded glyphs. Rows
// of glyphs become layout lines, runs of one font become spans, and gaps
// or whitespace split rows into words. A large vertical gap starts a new
// block.
func BuildPageWithConfig(number int, mediaBox model.BBox, glyphs []Glyph, config Config) *model.Page {
	page := model.NewPage(number, mediaBox.Width(), mediaBox.Height())

	placed := placeGlyphs(glyphs, mediaBox)
	if len(placed) == 0 {
		return page
	}

	rows := groupIntoRows(placed, config.RowTolerance)

	blockNum := -1
	var block *model.Block
	var prev *glyphRow
	for i := range rows {
		row := rows[i]
		if block == nil || startsNewBlock(prev, row, config.BlockGapRatio) {
			if block != nil {
				page.AddBlock(*block)
			}
			blockNum++
			block = &model.Block{Number: blockNum}
		}

		lineIndex := len(block.Lines)
		block.Lines = append(block.Lines, model.LayoutLine{Spans: buildSpans(row.glyphs)})
		for _, w := range buildWords(row.glyphs, config) {
			w.Block = blockNum
			w.Line = lineIndex
			page.AddWord(w)
		}
		prev = row
	}
	if block != nil {
		page.AddBlock(*block)
	}

	return page
}

// placeGlyphs splits multi-rune glyphs into single runes of equal width and
// converts them to top-left coordinates
func placeGlyphs(glyphs []Glyph, mediaBox model.BBox) []placedGlyph {
	placed := make([]placedGlyph, 0, len(glyphs))
	for _, g := range glyphs {
		if g.Text == "" {
			continue
		}
		baseline := mediaBox.Y1 - g.Y
		x := g.X - mediaBox.X0

		n := utf8.RuneCountInString(g.Text)
		if n == 1 {
			placed = append(placed, placedGlyph{
				text: g.Text, font: g.Font, size: g.Size, x: x, w: g.W, baseline: baseline,
			})
			continue
		}
		step := g.W / float64(n)
		i := 0
		for _, r := range g.Text {
			placed = append(placed, placedGlyph{
				text: string(r), font: g.Font, size: g.Size,
				x: x + float64(i)*step, w: step, baseline: baseline,
			})
			i++
		}
	}
	return placed
}

// groupIntoRows buckets glyphs by baseline. A glyph joins the first row
// whose baseline range, widened by tolerance, contains it. Rows are
// returned top to bottom with glyphs sorted left to right.
func groupIntoRows(glyphs []placedGlyph, tolerance float64) []*glyphRow {
	var rows []*glyphRow
	for _, g := range glyphs {
		found := false
		for _, row := range rows {
			if g.baseline >= row.minBase-tolerance && g.baseline <= row.maxBase+tolerance {
				row.glyphs = append(row.glyphs, g)
				row.minBase = math.Min(row.minBase, g.baseline)
				row.maxBase = math.Max(row.maxBase, g.baseline)
				found = true
				break
			}
		}
		if !found {
			rows = append(rows, &glyphRow{minBase: g.baseline, maxBase: g.baseline, glyphs: []placedGlyph{g}})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].baseline() < rows[j].baseline()
	})
	for _, row := range rows {
		sort.SliceStable(row.glyphs, func(i, j int) bool {
			return row.glyphs[i].x < row.glyphs[j].x
		})
	}
	return rows
}

// startsNewBlock reports whether row is far enough below prev to begin a block
func startsNewBlock(prev, row *glyphRow, gapRatio float64) bool {
	if prev == nil {
		return true
	}
	size := prev.maxSize()
	if size <= 0 {
		return false
	}
	return row.baseline()-prev.baseline() > gapRatio*size
}

// buildSpans merges consecutive glyphs sharing a font and size. Whitespace
// joins the span it follows.
func buildSpans(glyphs []placedGlyph) []model.Span {
	var spans []model.Span
	var sb strings.Builder
	var current *model.Span

	flush := func() {
		if current != nil {
			current.Text = sb.String()
			spans = append(spans, *current)
			current = nil
			sb.Reset()
		}
	}

	for _, g := range glyphs {
		if g.isSpace() {
			if current != nil {
				sb.WriteString(g.text)
			}
			continue
		}
		if current == nil || current.Font != g.font || current.Size != g.size {
			flush()
			current = &model.Span{Font: g.font, Size: g.size}
		}
		sb.WriteString(g.text)
	}
	flush()

	for i := range spans {
		spans[i].Text = strings.TrimRightFunc(spans[i].Text, unicode.IsSpace)
	}
	return spans
}

// buildWords splits a row into words at whitespace glyphs and at gaps wider
// than the configured fraction of the font size
func buildWords(glyphs []placedGlyph, config Config) []model.WordToken {
	var words []model.WordToken
	var sb strings.Builder
	var bbox model.BBox
	var right, size float64
	open := false

	flush := func() {
		if open {
			words = append(words, model.WordToken{Text: sb.String(), BBox: bbox})
			sb.Reset()
			open = false
		}
	}

	for _, g := range glyphs {
		if g.isSpace() {
			flush()
			continue
		}
		if open {
			threshold := config.WordGapRatio * size
			if size <= 0 {
				threshold = config.MinWordGap
			}
			if g.x-right > threshold {
				flush()
			}
		}

		gb := glyphBox(g)
		if !open {
			bbox = gb
			size = g.size
			open = true
		} else {
			bbox = bbox.Union(gb)
			size = math.Max(size, g.size)
		}
		right = g.x + g.w
		sb.WriteString(g.text)
	}
	flush()

	return words
}

// glyphBox returns a glyph's box in top-left coordinates
func glyphBox(g placedGlyph) model.BBox {
	return model.NewBBox(
		g.x,
		g.baseline-ascentRatio*g.size,
		g.x+g.w,
		g.baseline+descentRatio*g.size,
	)
}
