// Package reader opens PDF files as page sources.
//
// A [Reader] decodes one page at a time with github.com/ledongthuc/pdf and
// turns the page's positioned glyphs into the word layer and block/line/span
// layout that the rest of the pipeline consumes:
//
//	r, err := reader.Open("report.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	page, err := r.LoadPage(0) // 0-indexed
//
// Reader implements [pages.Source], so it can be handed straight to a
// [pages.Stream].
//
// # Page Assembly
//
// [BuildPage] does the glyph grouping and can be used on its own. Glyphs
// whose baselines are within [Config.RowTolerance] form a row, and each row
// becomes one layout line. Rows are split into words at whitespace and at
// horizontal gaps wider than [Config.WordGapRatio] times the font size.
// Consecutive glyphs in the same font and size form a span. A vertical gap
// larger than [Config.BlockGapRatio] times the previous row's font size
// starts a new block.
//
// Word boxes are reported in top-left page coordinates, with the glyph box
// reaching 0.8 of the font size above the baseline and 0.2 below.
//
// # Errors
//
// [Open] returns [ErrNotPDF] for input without a PDF header. Panics raised
// by the PDF decoder while reading a page are recovered and returned as an
// error from [Reader.LoadPage], so a single broken page does not stop a
// document.
package reader
