package model

import (
	"sort"
	"strings"
)

// WordToken is a positioned run of text with no internal whitespace, as
// read from a page's word layer. Block and Line locate the token's parent
// line in the page's layout structure.
type WordToken struct {
	Text  string
	BBox  BBox
	Block int // Block number in the page layout
	Line  int // Line index inside the block
}

// Span is a run of text sharing one font description
type Span struct {
	Size  float64
	Font  string
	Flags int
	Text  string
}

// IsBold reports whether the font name carries a bold marker
func (s Span) IsBold() bool {
	return strings.Contains(strings.ToLower(s.Font), "bold")
}

// LayoutLine is one line of a layout block
type LayoutLine struct {
	Spans []Span
}

// Block is a layout block: a numbered group of lines
type Block struct {
	Number int
	Lines  []LayoutLine
}

// Page is a read-only snapshot of one page as supplied by a document source.
// A Page is owned by whoever loaded it; call Release once the page's
// features have been extracted.
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points

	Words  []WordToken
	Blocks []Block

	blocksByNumber map[int]*Block
}

// NewPage creates a new page with given number and dimensions
func NewPage(number int, width, height float64) *Page {
	return &Page{
		Number: number,
		Width:  width,
		Height: height,
	}
}

// AddWord appends a word token to the page
func (p *Page) AddWord(w WordToken) {
	p.Words = append(p.Words, w)
}

// AddBlock appends a layout block to the page
func (p *Page) AddBlock(b Block) {
	p.Blocks = append(p.Blocks, b)
	p.blocksByNumber = nil
}

// HasDimensions returns true if both page dimensions are non-zero
func (p *Page) HasDimensions() bool {
	return p != nil && p.Width != 0 && p.Height != 0
}

// BlockByNumber returns the layout block with the given number, or nil.
// When several blocks share a number the last one wins.
func (p *Page) BlockByNumber(number int) *Block {
	if p == nil {
		return nil
	}
	if p.blocksByNumber == nil {
		p.blocksByNumber = make(map[int]*Block, len(p.Blocks))
		for i := range p.Blocks {
			p.blocksByNumber[p.Blocks[i].Number] = &p.Blocks[i]
		}
	}
	return p.blocksByNumber[number]
}

// LineSpans returns the spans of the given block/line, or nil if the
// reference does not resolve.
func (p *Page) LineSpans(block, line int) []Span {
	b := p.BlockByNumber(block)
	if b == nil || line < 0 || line >= len(b.Lines) {
		return nil
	}
	return b.Lines[line].Spans
}

// AverageFontSize returns the mean size over every span of every block,
// or 0 when the page has no spans.
func (p *Page) AverageFontSize() float64 {
	if p == nil {
		return 0
	}
	total := 0.0
	count := 0
	for _, b := range p.Blocks {
		for _, l := range b.Lines {
			for _, s := range l.Spans {
				total += s.Size
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// MedianWordHeight returns the median Y1-Y0 over all words, and false if
// the page has no words.
func (p *Page) MedianWordHeight() (float64, bool) {
	if p == nil || len(p.Words) == 0 {
		return 0, false
	}
	heights := make([]float64, len(p.Words))
	for i, w := range p.Words {
		heights[i] = w.BBox.Height()
	}
	sort.Float64s(heights)
	mid := len(heights) / 2
	if len(heights)%2 == 1 {
		return heights[mid], true
	}
	return (heights[mid-1] + heights[mid]) / 2, true
}

// Release drops the page's word and layout data
func (p *Page) Release() {
	if p == nil {
		return
	}
	p.Words = nil
	p.Blocks = nil
	p.blocksByNumber = nil
}
