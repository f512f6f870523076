// Package layout groups the word tokens of a page into text lines.
//
// # Line Detection
//
// The [LineDetector] makes a single greedy pass over the page's words in
// top-to-bottom order. A word joins the first existing line whose reference
// Y (the top of that line's first word) is closer than half the page's
// median word height; otherwise it starts a new line:
//
//	detector := layout.NewLineDetector()
//	result := detector.DetectPage(page)
//	for _, line := range result.Lines {
//	    fmt.Println(line.Text)
//	}
//
// Within a line words are ordered left to right, joined with single spaces
// and normalized with [text.Normalize]. Lines that normalize to nothing are
// dropped and counted in [LineLayout.Dropped].
//
// # Configuration
//
//	config := layout.DefaultLineConfig()
//	config.ToleranceRatio = 0.4
//	detector := layout.NewLineDetectorWithConfig(config)
package layout
