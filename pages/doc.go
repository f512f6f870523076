// Package pages walks a document page by page and produces the feature
// records of each page.
//
// # Sources
//
// A [Source] hands out one page snapshot at a time by 0-based index. The
// reader package provides a PDF-backed source; [MemorySource] wraps pages
// that are already built:
//
//	src := pages.NewMemorySource(page1, page2)
//
// # Streaming
//
// A [Stream] visits at most [PageLimit] pages in order. For each page it
// detects lines, computes feature records and releases the page before
// loading the next one:
//
//	stream := pages.NewStream(src)
//	defer stream.Close()
//	for stream.Next() {
//	    batch := stream.Batch()
//	    fmt.Println(batch.Page, len(batch.Records))
//	}
//
// Pages with no dimensions, no words, or no surviving lines produce no
// batch at all; they are listed by [Stream.Skips]. A stream is consumed
// once.
package pages
