package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/labelsheet/pkg/compose"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/format"
	"github.com/matzehuels/labelsheet/pkg/layout"
	"github.com/matzehuels/labelsheet/pkg/numbering"
	"github.com/matzehuels/labelsheet/pkg/render"
	"github.com/matzehuels/labelsheet/pkg/sink"
)

// Compose numbers the labels of opts, checks them against the capacity of f
// and composes one sheet per capacity-sized chunk. Errors are prefixed with
// the failing stage ("numbering:" or "layout:").
func Compose(ctx context.Context, f format.LabelFormat, opts Options, enc render.Encoder) (*compose.Document, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	style, err := opts.RenderStyle()
	if err != nil {
		return nil, err
	}

	contents, err := numbering.Generate(opts.NumberingConfig())
	if err != nil {
		return nil, fmt.Errorf("numbering: %w", err)
	}
	if err := CheckCapacity(f, len(contents), opts); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	doc, err := compose.ComposeDocument(ctx, f, contents, style, enc)
	if err != nil {
		return nil, err
	}
	doc.Title = Title(opts, contents)
	return doc, nil
}

// CheckCapacity reports CAPACITY_EXCEEDED when n labels need more sheets of
// f than opts allow, or more than a PNG preview can stack. Labels are never
// dropped to make a run fit.
func CheckCapacity(f format.LabelFormat, n int, opts Options) error {
	capacity := f.Capacity()
	if opts.SingleSheet && n > capacity {
		return errors.New(errors.ErrCodeCapacity,
			"%d labels do not fit on one sheet of %s (capacity %d)", n, f.ID, capacity)
	}
	sheets := layout.SheetsNeeded(f, n)
	if opts.MaxSheets > 0 && sheets > opts.MaxSheets {
		return errors.New(errors.ErrCodeCapacity,
			"%d labels need %d sheets of %s, limit is %d", n, sheets, f.ID, opts.MaxSheets)
	}
	if opts.Output == sink.OutputPNG && sheets > sink.DefaultPNGMaxSheets {
		return errors.New(errors.ErrCodeCapacity,
			"%d labels need %d sheets of %s, png preview holds at most %d", n, sheets, f.ID, sink.DefaultPNGMaxSheets)
	}
	return nil
}

// Title returns opts.Title, or the label range such as "ASN0001 - ASN0189".
func Title(opts Options, contents []numbering.Content) string {
	if opts.Title != "" {
		return opts.Title
	}
	switch len(contents) {
	case 0:
		return "Labels"
	case 1:
		return contents[0].DisplayText
	}
	return contents[0].DisplayText + " - " + contents[len(contents)-1].DisplayText
}
