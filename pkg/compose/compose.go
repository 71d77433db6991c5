package compose

import (
	"context"

	"github.com/matzehuels/labelsheet/pkg/format"
	"github.com/matzehuels/labelsheet/pkg/layout"
	"github.com/matzehuels/labelsheet/pkg/numbering"
	"github.com/matzehuels/labelsheet/pkg/render"
)

// Row is one horizontal band of a sheet: either a content row of cells and
// horizontal gutters, or a vertical gutter row with a single element.
type Row struct {
	Gutter   bool                 `json:"gutter,omitempty"`
	Elements []render.Instruction `json:"elements"`
}

// Margins are the page margins of a sheet in millimetres.
type Margins struct {
	TopBottomMm float64 `json:"top_bottom_mm"`
	SideMm      float64 `json:"side_mm"`
}

// Fallback records a cell whose QR symbol could not be encoded.
type Fallback struct {
	Sheet   int    `json:"sheet"`
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Index   int    `json:"index"`
	Payload string `json:"payload"`
	Err     string `json:"error"`
}

// Sheet is the composed description of one page.
type Sheet struct {
	Index        int        `json:"index"`
	PageWidthMm  float64    `json:"page_width_mm"`
	PageHeightMm float64    `json:"page_height_mm"`
	Margins      Margins    `json:"margins"`
	Rows         []Row      `json:"rows"`
	Labels       int        `json:"labels"`
	Fallbacks    []Fallback `json:"fallbacks,omitempty"`
}

// Instructions returns the label and spacer instructions of the sheet in
// row-major order, skipping gutters.
func (s Sheet) Instructions() []render.Instruction {
	var out []render.Instruction
	for _, row := range s.Rows {
		if row.Gutter {
			continue
		}
		for _, el := range row.Elements {
			if el.Kind != render.KindGutter {
				out = append(out, el)
			}
		}
	}
	return out
}

// ContentRows returns the number of non-gutter rows.
func (s Sheet) ContentRows() int {
	n := 0
	for _, row := range s.Rows {
		if !row.Gutter {
			n++
		}
	}
	return n
}

// Document is a complete composed run.
type Document struct {
	Title  string             `json:"title"`
	Format format.LabelFormat `json:"format"`
	Style  render.Style       `json:"style"`
	Sheets []Sheet            `json:"sheets"`
}

// Labels returns the number of populated cells across all sheets.
func (d *Document) Labels() int {
	n := 0
	for _, s := range d.Sheets {
		n += s.Labels
	}
	return n
}

// Fallbacks returns every QR fallback in sheet order.
func (d *Document) Fallbacks() []Fallback {
	var out []Fallback
	for _, s := range d.Sheets {
		out = append(out, s.Fallbacks...)
	}
	return out
}

// Compose plans and composes a single sheet. Contents beyond the sheet
// capacity are not placed; use ComposeDocument for longer runs.
func Compose(f format.LabelFormat, contents []numbering.Content, style render.Style, enc render.Encoder) Sheet {
	return ComposeGrid(f, layout.Plan(f, contents), style, enc)
}

// ComposeDocument paginates contents over as many sheets as needed and
// composes each one. It stops with ctx.Err() when ctx is done between
// sheets.
func ComposeDocument(ctx context.Context, f format.LabelFormat, contents []numbering.Content, style render.Style, enc render.Encoder) (*Document, error) {
	grids := layout.Paginate(f, contents)
	doc := &Document{Format: f, Style: style, Sheets: make([]Sheet, 0, len(grids))}
	for _, g := range grids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc.Sheets = append(doc.Sheets, ComposeGrid(f, g, style, enc))
	}
	return doc, nil
}

// ComposeGrid turns a planned grid into a sheet, rendering every cell and
// interleaving gutters.
func ComposeGrid(f format.LabelFormat, g layout.Grid, style render.Style, enc render.Encoder) Sheet {
	pw, ph := f.PageSize()
	sheet := Sheet{
		Index:        g.Sheet,
		PageWidthMm:  pw,
		PageHeightMm: ph,
		Margins:      Margins{TopBottomMm: f.PageMarginTopBottomMm, SideMm: f.PageMarginSideMm},
		Rows:         make([]Row, 0, max(2*len(g.Rows)-1, 0)),
	}
	gridWidth, _ := f.GridSize()

	for r, cells := range g.Rows {
		if r > 0 && f.VerticalSpacingMm > 0 {
			prev := layout.CellBounds(f, r-1, 0)
			sheet.Rows = append(sheet.Rows, Row{
				Gutter: true,
				Elements: []render.Instruction{{
					Kind:   render.KindGutter,
					Row:    r - 1,
					Col:    -1,
					Index:  -1,
					Bounds: layout.Rect{X: prev.X, Y: prev.Y + prev.H, W: gridWidth, H: f.VerticalSpacingMm},
				}},
			})
		}

		row := Row{Elements: make([]render.Instruction, 0, 2*len(cells))}
		for c, cell := range cells {
			bounds := layout.CellBounds(f, r, c)
			if c > 0 && f.HorizontalSpacingMm > 0 {
				row.Elements = append(row.Elements, render.Instruction{
					Kind:   render.KindGutter,
					Row:    r,
					Col:    c - 1,
					Index:  -1,
					Bounds: layout.Rect{X: bounds.X - f.HorizontalSpacingMm, Y: bounds.Y, W: f.HorizontalSpacingMm, H: bounds.H},
				})
			}

			in := render.RenderCell(cell, bounds, style, enc)
			if in.Kind == render.KindLabel {
				sheet.Labels++
			}
			if in.QR != nil && in.QR.Fallback {
				sheet.Fallbacks = append(sheet.Fallbacks, Fallback{
					Sheet: g.Sheet, Row: r, Col: c, Index: cell.Index,
					Payload: in.QR.Payload, Err: in.QR.Err,
				})
			}
			row.Elements = append(row.Elements, in)
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}
