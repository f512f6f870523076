package pdfoutline_test

import (
	"fmt"
	"log"
	"os"

	"github.com/tsawler/pdfoutline"
	"github.com/tsawler/pdfoutline/features"
	"github.com/tsawler/pdfoutline/model"
	"github.com/tsawler/pdfoutline/outline"
)

// These examples verify the README code samples compile correctly.
// They are not meant to be run as actual tests since they require files.

func Example_outline() {
	doc, warnings, err := pdfoutline.Open("document.pdf").Outline()
	if err != nil {
		log.Fatal(err)
	}

	for _, w := range warnings {
		fmt.Println("Warning:", w)
	}

	if err := outline.WriteJSON(os.Stdout, doc); err != nil {
		log.Fatal(err)
	}
}

func Example_withClassifier() {
	shortBold := outline.ClassifierFunc(func(r model.FeatureRecord) (string, error) {
		if r.IsBold == 1 && r.WordCount <= 8 {
			return "H1", nil
		}
		return model.LabelNone, nil
	})

	doc, _, err := pdfoutline.Open("document.pdf").
		MaxPages(20).
		WithClassifier(shortBold).
		Outline()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(outline.ToMarkdown(doc))
}

func Example_exportFeatures() {
	stream, err := pdfoutline.Open("document.pdf").Stream()
	if err != nil {
		log.Fatal(err)
	}
	defer stream.Close()

	exporter := features.NewStreamExporter(os.Stdout)
	for stream.Next() {
		if err := exporter.WriteBatch(stream.Batch().Records); err != nil {
			log.Fatal(err)
		}
	}
}
