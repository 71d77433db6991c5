package layout

import (
	"github.com/matzehuels/labelsheet/pkg/format"
	"github.com/matzehuels/labelsheet/pkg/numbering"
)

// Rect is an axis-aligned box in millimetres. X and Y are the top-left
// corner relative to the page origin.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Inset shrinks r by d on every side, never below zero size.
func (r Rect) Inset(d float64) Rect {
	out := Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
	if out.W < 0 {
		out.X, out.W = r.X+r.W/2, 0
	}
	if out.H < 0 {
		out.Y, out.H = r.Y+r.H/2, 0
	}
	return out
}

// Cell is one slot of a planned grid. Content is nil for spacer cells that
// pad the last row.
type Cell struct {
	Row     int                `json:"row"`
	Col     int                `json:"col"`
	Index   int                `json:"index"` // position in the full run, -1 when empty
	Content *numbering.Content `json:"content,omitempty"`
}

// Empty reports whether the cell is a spacer.
func (c Cell) Empty() bool { return c.Content == nil }

// Grid is the planned layout of one sheet.
type Grid struct {
	Sheet   int      `json:"sheet"`  // zero-based sheet number
	Offset  int      `json:"offset"` // run index of the first cell
	Columns int      `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}

// Cells returns all cells in row-major order.
func (g Grid) Cells() []Cell {
	out := make([]Cell, 0, len(g.Rows)*g.Columns)
	for _, row := range g.Rows {
		out = append(out, row...)
	}
	return out
}

// Populated returns the number of cells carrying content.
func (g Grid) Populated() int {
	n := 0
	for _, row := range g.Rows {
		for _, c := range row {
			if !c.Empty() {
				n++
			}
		}
	}
	return n
}

// Spacers returns the number of empty padding cells.
func (g Grid) Spacers() int {
	return len(g.Rows)*g.Columns - g.Populated()
}

// Plan lays out contents on a single sheet of f. It emits
// ceil(len(contents)/ColumnsPerRow) rows capped at RowsPerSheet; contents that
// do not fit are left for the caller to place on further sheets.
func Plan(f format.LabelFormat, contents []numbering.Content) Grid {
	return plan(f, contents, 0, 0)
}

// Paginate splits contents into consecutive sheets of f. Every content
// appears on exactly one sheet, in order. An empty run yields a single grid
// with no rows so callers still produce one (blank) page.
func Paginate(f format.LabelFormat, contents []numbering.Content) []Grid {
	capacity := f.Capacity()
	if capacity < 1 || len(contents) == 0 {
		return []Grid{plan(f, nil, 0, 0)}
	}
	grids := make([]Grid, 0, SheetsNeeded(f, len(contents)))
	for sheet, off := 0, 0; off < len(contents); sheet, off = sheet+1, off+capacity {
		end := min(off+capacity, len(contents))
		grids = append(grids, plan(f, contents[off:end], sheet, off))
	}
	return grids
}

// SheetsNeeded returns how many sheets of f hold n labels. Zero labels still
// need one sheet.
func SheetsNeeded(f format.LabelFormat, n int) int {
	capacity := f.Capacity()
	if n <= 0 || capacity < 1 {
		return 1
	}
	return (n + capacity - 1) / capacity
}

func plan(f format.LabelFormat, contents []numbering.Content, sheet, offset int) Grid {
	cols := f.ColumnsPerRow
	g := Grid{Sheet: sheet, Offset: offset, Columns: cols}
	if cols < 1 || len(contents) == 0 {
		g.Rows = [][]Cell{}
		return g
	}

	rows := min((len(contents)+cols-1)/cols, f.RowsPerSheet)
	g.Rows = make([][]Cell, rows)
	for r := range g.Rows {
		row := make([]Cell, cols)
		for c := range row {
			i := r*cols + c
			row[c] = Cell{Row: r, Col: c, Index: -1}
			if i < len(contents) {
				content := contents[i]
				row[c].Index = offset + i
				row[c].Content = &content
			}
		}
		g.Rows[r] = row
	}
	return g
}

// CellBounds returns the page rectangle of slot (row, col) of f. Gutters are
// counted only between cells.
func CellBounds(f format.LabelFormat, row, col int) Rect {
	cw, ch := f.CellSize()
	return Rect{
		X: f.PageMarginSideMm + float64(col)*(cw+f.HorizontalSpacingMm),
		Y: f.PageMarginTopBottomMm + float64(row)*(ch+f.VerticalSpacingMm),
		W: cw,
		H: ch,
	}
}
