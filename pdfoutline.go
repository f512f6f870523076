// Package pdfoutline extracts a document outline (a title plus a list of
// section headings) from the text layer of a PDF.
//
// Basic usage:
//
//	doc, warnings, err := pdfoutline.Open("report.pdf").Outline()
//	if err != nil {
//	    // the document could not be opened
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pdfoutline.FormatWarnings(warnings))
//	}
//	outline.WriteJSON(os.Stdout, doc)
//
// With options:
//
//	doc, _, err := pdfoutline.Open("report.pdf").
//	    MaxPages(20).
//	    WithClassifier(myModel).
//	    Outline()
//
// Lines are labelled by a HeuristicClassifier unless another
// outline.Classifier is supplied. For lower-level control the pages,
// features and outline packages can be used directly.
package pdfoutline

import (
	"github.com/tsawler/pdfoutline/pages"
)

// Open returns an Extractor for the PDF at filename. The file is opened
// when a terminal operation such as Outline runs, and closed once its
// pages have been read.
//
// Example:
//
//	doc, warnings, err := pdfoutline.Open("document.pdf").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource returns an Extractor over an already-open page source. The
// source is consumed by the first terminal operation and closed when its
// pages run out, so an Extractor built this way runs once.
//
// Example:
//
//	src := pages.NewMemorySource(page1, page2)
//	doc, _, err := pdfoutline.FromSource(src).Outline()
func FromSource(src pages.Source) *Extractor {
	return &Extractor{
		source:  src,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	stream := pdfoutline.Must(pdfoutline.Open("document.pdf").Stream())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustOutline is a helper that wraps a call to Outline() or Features() and
// panics if the error is non-nil. It discards warnings and returns just
// the value.
//
// Example:
//
//	doc := pdfoutline.MustOutline(pdfoutline.Open("document.pdf").Outline())
func MustOutline[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
