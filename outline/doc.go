// Package outline turns labelled line records into a document outline.
//
// Labelling is pluggable through the Classifier interface. LabelBatch
// applies a classifier to one page batch and rejects the batch as a whole
// if any record fails. HeuristicClassifier is a rule-based classifier that
// scores font size, weight, capitalization and numbering.
//
// Assemble selects the title and collects heading entries:
//
//	labelled, err := outline.LabelBatch(outline.NewHeuristicClassifier(), batch.Records)
//	if err != nil {
//	    // skip the batch
//	}
//	doc := outline.Assemble(labelled)
//	outline.WriteJSON(os.Stdout, doc)
//
// Build nests the flat entries by heading level for rendering with
// ToMarkdown or ToHTML.
package outline
