package render

import (
	"fmt"

	"github.com/matzehuels/labelsheet/pkg/layout"
)

// Kind classifies an instruction.
type Kind int

const (
	KindLabel  Kind = iota // populated cell
	KindSpacer             // empty cell keeping its slot
	KindGutter             // spacing between cells or rows
)

var kindNames = [...]string{"label", "spacer", "gutter"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Instruction is one element handed to a page renderer.
type Instruction struct {
	Kind       Kind        `json:"kind"`
	Row        int         `json:"row"`
	Col        int         `json:"col"`
	Index      int         `json:"index"` // run index, -1 for spacers and gutters
	Bounds     layout.Rect `json:"bounds"`
	Text       string      `json:"text,omitempty"`
	TextBounds layout.Rect `json:"text_bounds,omitzero"`
	FontSizePt float64     `json:"font_size_pt,omitempty"`
	QR         *QRBlock    `json:"qr,omitempty"`
}

// QRBlock places a QR symbol, or its fallback marker, inside a cell.
type QRBlock struct {
	Payload  string      `json:"payload"`
	Bounds   layout.Rect `json:"bounds"`
	Symbol   *Symbol     `json:"-"`
	Fallback bool        `json:"fallback,omitempty"`
	Err      string      `json:"error,omitempty"`
}

// FallbackCaption is drawn inside the placeholder of a failed QR block.
const FallbackCaption = "QR Error"

// RenderCell builds the instruction for one cell occupying bounds. It never
// fails: QR encoding errors turn into a fallback block.
func RenderCell(cell layout.Cell, bounds layout.Rect, style Style, enc Encoder) Instruction {
	in := Instruction{Row: cell.Row, Col: cell.Col, Index: cell.Index, Bounds: bounds}
	if cell.Empty() {
		in.Kind = KindSpacer
		return in
	}

	in.Kind = KindLabel
	in.Text = cell.Content.DisplayText
	in.FontSizePt = style.FontSizePt

	inner := bounds.Inset(style.PaddingMm)
	in.TextBounds = inner
	if !style.QR {
		return in
	}

	size := min(style.QRSizeMm, inner.W, inner.H)
	qb := &QRBlock{
		Payload: cell.Content.QRPayload,
		Bounds:  layout.Rect{X: inner.X, Y: inner.Y + (inner.H-size)/2, W: size, H: size},
	}
	sym, err := encode(enc, qb.Payload, style.QRLevel)
	if err != nil {
		qb.Fallback = true
		qb.Err = err.Error()
	} else {
		qb.Symbol = sym
	}
	in.QR = qb

	textX := qb.Bounds.X + size + style.PaddingMm
	in.TextBounds = layout.Rect{X: textX, Y: inner.Y, W: max(inner.X+inner.W-textX, 0), H: inner.H}
	return in
}

// encode calls enc and converts panics and empty results into errors.
func encode(enc Encoder, payload string, level Level) (sym *Symbol, err error) {
	if enc == nil {
		return nil, fmt.Errorf("no QR encoder configured")
	}
	defer func() {
		if r := recover(); r != nil {
			sym, err = nil, fmt.Errorf("QR encoder panic: %v", r)
		}
	}()
	sym, err = enc.Encode(payload, level)
	if err != nil {
		return nil, err
	}
	if sym == nil || sym.Size < 1 || len(sym.Modules) != sym.Size*sym.Size {
		return nil, fmt.Errorf("QR encoder returned an empty symbol")
	}
	return sym, nil
}
