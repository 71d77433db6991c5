package sink

import (
	"bytes"
	"fmt"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/matzehuels/labelsheet/pkg/compose"
	"github.com/matzehuels/labelsheet/pkg/fonts"
	"github.com/matzehuels/labelsheet/pkg/layout"
	"github.com/matzehuels/labelsheet/pkg/render"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	creator string
	date    time.Time
	font    string
}

// WithPDFCreator sets the Creator entry of the document info.
func WithPDFCreator(s string) PDFOption {
	return func(r *pdfRenderer) { r.creator = s }
}

// WithCreationDate fixes the creation and modification dates, which makes
// the output byte-for-byte reproducible.
func WithCreationDate(t time.Time) PDFOption {
	return func(r *pdfRenderer) { r.date = t }
}

// pdfFontFamily is the name the embedded label typeface is registered under.
const pdfFontFamily = "GoLabel"

// RenderPDF renders doc as a PDF with one page per sheet. Text is set in the
// embedded Go fonts as UTF-8, so any character they cover prints as typed.
// Labels with characters outside that set fail with ErrCodeInvalidInput.
// QR symbols are drawn as filled module runs.
func RenderPDF(doc *compose.Document, opts ...PDFOption) ([]byte, error) {
	if doc == nil || len(doc.Sheets) == 0 {
		return nil, fmt.Errorf("pdf: document has no sheets")
	}
	if err := checkGlyphs(doc); err != nil {
		return nil, err
	}
	r := pdfRenderer{creator: "labelsheet", font: pdfFontFamily}
	for _, opt := range opts {
		opt(&r)
	}

	first := doc.Sheets[0]
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: first.PageWidthMm, Ht: first.PageHeightMm},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreator(r.creator, true)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	if !r.date.IsZero() {
		pdf.SetCreationDate(r.date)
		pdf.SetModificationDate(r.date)
	}
	pdf.AddUTF8FontFromBytes(r.font, "", fonts.RegularTTF())
	pdf.AddUTF8FontFromBytes(r.font, "B", fonts.BoldTTF())
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf: embed font: %w", err)
	}

	for _, sheet := range doc.Sheets {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: sheet.PageWidthMm, Ht: sheet.PageHeightMm})
		for _, row := range sheet.Rows {
			for _, in := range row.Elements {
				r.drawInstruction(pdf, in, doc.Style)
			}
		}
		if err := pdf.Error(); err != nil {
			return nil, fmt.Errorf("pdf: sheet %d: %w", sheet.Index+1, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r pdfRenderer) drawInstruction(pdf *fpdf.Fpdf, in render.Instruction, style render.Style) {
	if in.Kind == render.KindGutter {
		return
	}
	if style.Border {
		pdf.SetDrawColor(190, 190, 190)
		pdf.SetLineWidth(0.1)
		pdf.Rect(in.Bounds.X, in.Bounds.Y, in.Bounds.W, in.Bounds.H, "D")
	}
	if in.Kind != render.KindLabel {
		return
	}

	align := "CM"
	if in.QR != nil {
		align = "LM"
		if in.QR.Fallback {
			r.drawFallback(pdf, in.QR.Bounds)
		} else {
			drawSymbolPDF(pdf, in.QR.Symbol, in.QR.Bounds)
		}
	}

	tb := in.TextBounds
	if tb.W <= 0 || tb.H <= 0 {
		return
	}
	text := in.Text
	size := in.FontSizePt
	pdf.SetFont(r.font, "", size)
	for size > minFontPt && pdf.GetStringWidth(text) > tb.W {
		size -= 0.5
		pdf.SetFontSize(size)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(tb.X, tb.Y)
	pdf.CellFormat(tb.W, tb.H, text, "", 0, align, false, 0, "")
}

func (r pdfRenderer) drawFallback(pdf *fpdf.Fpdf, b layout.Rect) {
	pdf.SetFillColor(225, 225, 225)
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.2)
	pdf.Rect(b.X, b.Y, b.W, b.H, "FD")

	pdf.SetFont(r.font, "B", max(b.W/mmPerPt/6, minFontPt/2))
	pdf.SetTextColor(90, 90, 90)
	pdf.SetXY(b.X, b.Y)
	pdf.CellFormat(b.W, b.H, render.FallbackCaption, "", 0, "CM", false, 0, "")
}

// drawSymbolPDF fills horizontal runs of dark modules, one rectangle per run.
func drawSymbolPDF(pdf *fpdf.Fpdf, sym *render.Symbol, b layout.Rect) {
	if sym == nil {
		return
	}
	m := moduleSize(b.W, sym.Size)
	ox, oy := b.X+quietZone*m, b.Y+quietZone*m
	pdf.SetFillColor(0, 0, 0)
	for y := 0; y < sym.Size; y++ {
		for x := 0; x < sym.Size; {
			if !sym.Dark(x, y) {
				x++
				continue
			}
			start := x
			for x < sym.Size && sym.Dark(x, y) {
				x++
			}
			pdf.Rect(ox+float64(start)*m, oy+float64(y)*m, float64(x-start)*m, m, "F")
		}
	}
}
