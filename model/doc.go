// Package model defines the data passed between the stages of outline
// extraction.
//
// # Page Snapshots
//
// A document source produces one [Page] at a time. Each page carries its
// dimensions, the word layer as [WordToken] values, and the block → line →
// span layout structure used to resolve font metrics:
//
//	page := model.NewPage(1, 612, 792)
//	page.AddWord(model.WordToken{Text: "Introduction", BBox: model.NewBBox(72, 90, 160, 106)})
//	page.AddBlock(model.Block{Number: 0, Lines: []model.LayoutLine{{Spans: spans}}})
//
// Coordinates are top-left based: Y grows down the page.
//
// # Records
//
// A [FeatureRecord] is one detected line with its geometric, typographic
// and pattern features. [FeatureNames] fixes the column order a classifier
// consumes, and [FeatureRecord.Vector] produces that row.
//
// A [LabeledRecord] adds the classifier's label. Labels starting with "H"
// are heading levels; [LabelNone] marks everything else.
//
// # Outlines
//
// A [DocumentOutline] holds the selected title and the heading list, each
// heading an [OutlineEntry] with a 0-indexed page.
package model
