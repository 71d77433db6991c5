package compose_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/labelsheet/pkg/compose"
	"github.com/matzehuels/labelsheet/pkg/format"
	"github.com/matzehuels/labelsheet/pkg/numbering"
	"github.com/matzehuels/labelsheet/pkg/render"
)

func ExampleComposeDocument() {
	f, _ := format.Default().Lookup(format.AveryL7160)
	contents, _ := numbering.Generate(numbering.Config{Prefix: "BOX-", StartingNumber: 1, PaddingZeros: 3, Count: 25})

	style := render.DefaultStyle()
	style.QR = false

	doc, _ := compose.ComposeDocument(context.Background(), f, contents, style, nil)
	for _, s := range doc.Sheets {
		fmt.Printf("sheet %d: %d labels in %d rows\n", s.Index+1, s.Labels, s.ContentRows())
	}
	// Output:
	// sheet 1: 21 labels in 7 rows
	// sheet 2: 4 labels in 2 rows
}
