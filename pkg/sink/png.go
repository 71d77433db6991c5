package sink

import (
	"bytes"
	"fmt"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/labelsheet/pkg/compose"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/fonts"
	"github.com/matzehuels/labelsheet/pkg/layout"
	"github.com/matzehuels/labelsheet/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

// PNG limits. The whole image is held in memory as RGBA, so a 4-sheet A4
// preview at 150 dpi (about 35 MB) is the default ceiling.
const (
	DefaultPNGDPI       = 150
	DefaultPNGMaxSheets = 4
	DefaultPNGMaxPixels = 32_000_000
)

type pngRenderer struct {
	dpi       float64
	maxSheets int
	maxPixels int
}

// WithDPI sets the output resolution (default 150).
func WithDPI(dpi float64) PNGOption {
	return func(r *pngRenderer) { r.dpi = dpi }
}

// WithMaxSheets limits how many sheets one image may stack (default 4).
// Zero or less removes the limit.
func WithMaxSheets(n int) PNGOption {
	return func(r *pngRenderer) { r.maxSheets = n }
}

// WithMaxPixels limits the total image area (default 32 megapixels).
func WithMaxPixels(n int) PNGOption {
	return func(r *pngRenderer) { r.maxPixels = n }
}

// RenderPNG renders doc as a single image with the sheets stacked
// vertically, separated by a thin grey rule. Documents over the sheet or
// pixel limit fail with ErrCodeCapacity before any pixels are allocated.
func RenderPNG(doc *compose.Document, opts ...PNGOption) ([]byte, error) {
	if doc == nil || len(doc.Sheets) == 0 {
		return nil, fmt.Errorf("png: document has no sheets")
	}
	r := pngRenderer{dpi: DefaultPNGDPI, maxSheets: DefaultPNGMaxSheets, maxPixels: DefaultPNGMaxPixels}
	for _, opt := range opts {
		opt(&r)
	}
	if r.dpi <= 0 {
		return nil, fmt.Errorf("png: dpi must be > 0, got %v", r.dpi)
	}
	if n := len(doc.Sheets); r.maxSheets > 0 && n > r.maxSheets {
		return nil, errors.New(errors.ErrCodeCapacity,
			"png preview holds at most %d sheets, document has %d; use pdf for larger runs", r.maxSheets, n)
	}
	if err := checkGlyphs(doc); err != nil {
		return nil, err
	}
	ttf, err := fonts.Regular()
	if err != nil {
		return nil, fmt.Errorf("png: load font: %w", err)
	}

	scale := r.dpi / 25.4
	var widthMm, heightMm float64
	for _, s := range doc.Sheets {
		widthMm = max(widthMm, s.PageWidthMm)
		heightMm += s.PageHeightMm
	}
	w, h := int(widthMm*scale+0.5), int(heightMm*scale+0.5)
	if w < 1 || h < 1 || w*h > r.maxPixels {
		return nil, errors.New(errors.ErrCodeCapacity, "png: %dx%d pixels exceeds the limit of %d", w, h, r.maxPixels)
	}

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	faces := fonts.NewFaces(ttf, mmPerPt*scale)
	defer faces.Close()
	face := faces.Face

	var offset float64
	for i, sheet := range doc.Sheets {
		if i > 0 {
			dc.SetRGB(0.6, 0.6, 0.6)
			dc.SetLineWidth(1)
			dc.DrawLine(0, offset*scale, float64(w), offset*scale)
			dc.Stroke()
		}
		for _, row := range sheet.Rows {
			for _, in := range row.Elements {
				drawInstructionPNG(dc, face, in, doc.Style, offset, scale)
			}
		}
		offset += sheet.PageHeightMm
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawInstructionPNG(dc *gg.Context, face func(float64) font.Face, in render.Instruction, style render.Style, offsetMm, scale float64) {
	if in.Kind == render.KindGutter {
		return
	}
	px := func(b layout.Rect) (x, y, w, h float64) {
		return b.X * scale, (b.Y + offsetMm) * scale, b.W * scale, b.H * scale
	}
	if style.Border {
		x, y, w, h := px(in.Bounds)
		dc.SetRGB(0.75, 0.75, 0.75)
		dc.SetLineWidth(1)
		dc.DrawRectangle(x, y, w, h)
		dc.Stroke()
	}
	if in.Kind != render.KindLabel {
		return
	}

	ax := 0.5
	if in.QR != nil {
		ax = 0
		x, y, w, h := px(in.QR.Bounds)
		if in.QR.Fallback {
			dc.SetRGB(0.88, 0.88, 0.88)
			dc.DrawRectangle(x, y, w, h)
			dc.FillPreserve()
			dc.SetRGB(0.47, 0.47, 0.47)
			dc.SetLineWidth(1)
			dc.Stroke()
			dc.SetFontFace(face(max(in.QR.Bounds.W/mmPerPt/6, minFontPt/2)))
			dc.SetRGB(0.35, 0.35, 0.35)
			dc.DrawStringAnchored(render.FallbackCaption, x+w/2, y+h/2, 0.5, 0.35)
		} else if sym := in.QR.Symbol; sym != nil {
			m := moduleSize(w, sym.Size)
			dc.SetRGB(0, 0, 0)
			for my := 0; my < sym.Size; my++ {
				for mx := 0; mx < sym.Size; mx++ {
					if sym.Dark(mx, my) {
						dc.DrawRectangle(x+float64(quietZone+mx)*m, y+float64(quietZone+my)*m, m, m)
					}
				}
			}
			dc.Fill()
		}
	}

	x, y, w, h := px(in.TextBounds)
	if w <= 0 || h <= 0 {
		return
	}
	size := in.FontSizePt
	dc.SetFontFace(face(size))
	for size > minFontPt {
		if tw, _ := dc.MeasureString(in.Text); tw <= w {
			break
		}
		size -= 0.5
		dc.SetFontFace(face(size))
	}
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(in.Text, x+ax*w, y+h/2, ax, 0.35)
}
