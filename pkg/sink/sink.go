package sink

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/labelsheet/pkg/compose"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/fonts"
	"github.com/matzehuels/labelsheet/pkg/render"
)

// Output identifiers.
const (
	OutputPDF  = "pdf"
	OutputPNG  = "png"
	OutputJSON = "json"
	OutputXLSX = "xlsx"
)

var contentTypes = map[string]string{
	OutputPDF:  "application/pdf",
	OutputPNG:  "image/png",
	OutputJSON: "application/json",
	OutputXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Renderer turns a composed document into bytes.
type Renderer interface {
	Render(doc *compose.Document) ([]byte, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(doc *compose.Document) ([]byte, error)

// Render calls f.
func (f RendererFunc) Render(doc *compose.Document) ([]byte, error) { return f(doc) }

// Defaults returns the built-in renderers keyed by output identifier.
func Defaults() map[string]Renderer {
	return map[string]Renderer{
		OutputPDF:  RendererFunc(func(d *compose.Document) ([]byte, error) { return RenderPDF(d) }),
		OutputPNG:  RendererFunc(func(d *compose.Document) ([]byte, error) { return RenderPNG(d) }),
		OutputJSON: RendererFunc(RenderJSON),
		OutputXLSX: RendererFunc(RenderXLSX),
	}
}

// Outputs returns the built-in output identifiers in sorted order.
func Outputs() []string {
	out := make([]string, 0, len(contentTypes))
	for k := range contentTypes {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// ContentType returns the MIME type of an output, or
// application/octet-stream when unknown.
func ContentType(output string) string {
	if ct, ok := contentTypes[strings.ToLower(output)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// quietZone is the light border around QR symbols, in modules.
const quietZone = 2

// moduleSize returns the edge of one QR module inside a block of the given
// width, including the quiet zone.
func moduleSize(blockW float64, symbolSize int) float64 {
	return blockW / float64(symbolSize+2*quietZone)
}

// mmPerPt converts typographic points to millimetres.
const mmPerPt = 25.4 / 72

// minFontPt is the smallest size text is shrunk to when it does not fit.
const minFontPt = 4.0

// checkGlyphs fails with ErrCodeInvalidInput when any label text uses a
// character the label typeface cannot draw. The first offending label is
// reported.
func checkGlyphs(doc *compose.Document) error {
	for _, sheet := range doc.Sheets {
		for _, row := range sheet.Rows {
			for _, in := range row.Elements {
				if in.Kind != render.KindLabel {
					continue
				}
				missing, err := fonts.Missing(in.Text)
				if err != nil {
					return fmt.Errorf("load font: %w", err)
				}
				if len(missing) > 0 {
					return errors.New(errors.ErrCodeInvalidInput,
						"label %q uses characters %q that %s cannot draw", in.Text, string(missing), fonts.Family)
				}
			}
		}
	}
	return nil
}
