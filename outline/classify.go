package outline

import (
	"errors"
	"fmt"

	"github.com/tsawler/pdfoutline/model"
)

var (
	// ErrNoClassifier is returned when labelling is attempted without a classifier
	ErrNoClassifier = errors.New("no classifier configured")

	// ErrLabelCount is returned when a batch classifier returns the wrong number of labels
	ErrLabelCount = errors.New("classifier returned wrong number of labels")
)

// Classifier assigns a label to one feature record: model.LabelNone for
// body text, or a heading level such as "H1".
type Classifier interface {
	Classify(record model.FeatureRecord) (string, error)
}

// ClassifierFunc adapts a function to the Classifier interface
type ClassifierFunc func(record model.FeatureRecord) (string, error)

// Classify calls f(record)
func (f ClassifierFunc) Classify(record model.FeatureRecord) (string, error) {
	return f(record)
}

// BatchClassifier is implemented by classifiers that label a whole page of
// records in one call, such as a model served out of process
type BatchClassifier interface {
	Classifier
	ClassifyBatch(records []model.FeatureRecord) ([]string, error)
}

// LabelBatch labels one page batch. Labels are used exactly as returned.
// If the classifier fails on any record the whole batch is rejected and no
// records are returned.
func LabelBatch(c Classifier, records []model.FeatureRecord) ([]model.LabeledRecord, error) {
	if c == nil {
		return nil, ErrNoClassifier
	}
	if len(records) == 0 {
		return nil, nil
	}

	labels, err := classifyAll(c, records)
	if err != nil {
		return nil, err
	}

	labelled := make([]model.LabeledRecord, len(records))
	for i, r := range records {
		labelled[i] = model.LabeledRecord{FeatureRecord: r, Label: labels[i]}
	}
	return labelled, nil
}

func classifyAll(c Classifier, records []model.FeatureRecord) ([]string, error) {
	if bc, ok := c.(BatchClassifier); ok {
		labels, err := bc.ClassifyBatch(records)
		if err != nil {
			return nil, fmt.Errorf("classifying batch: %w", err)
		}
		if len(labels) != len(records) {
			return nil, fmt.Errorf("got %d labels for %d records: %w", len(labels), len(records), ErrLabelCount)
		}
		return labels, nil
	}

	labels := make([]string, len(records))
	for i, r := range records {
		label, err := c.Classify(r)
		if err != nil {
			return nil, fmt.Errorf("classifying record %d: %w", i, err)
		}
		labels[i] = label
	}
	return labels, nil
}
