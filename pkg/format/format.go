package format

import (
	"math"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

// A4 page dimensions in millimetres.
const (
	A4WidthMm  = 210.0
	A4HeightMm = 297.0
)

// fitTolerance absorbs rounding in vendor datasheets (values given to 0.1 mm).
const fitTolerance = 0.05

// LabelFormat describes a physical label-sheet product. All lengths are in
// millimetres. Values are immutable once registered.
type LabelFormat struct {
	ID   string `json:"id" toml:"id"`
	Name string `json:"name" toml:"name"`

	// PageWidthMm and PageHeightMm default to A4 when zero.
	PageWidthMm  float64 `json:"page_width_mm" toml:"page_width_mm"`
	PageHeightMm float64 `json:"page_height_mm" toml:"page_height_mm"`

	// LabelWidthMm and LabelHeightMm may be zero, in which case the cell size
	// is derived from the printable area and the grid shape.
	LabelWidthMm  float64 `json:"label_width_mm" toml:"label_width_mm"`
	LabelHeightMm float64 `json:"label_height_mm" toml:"label_height_mm"`

	PageMarginTopBottomMm float64 `json:"page_margin_top_bottom_mm" toml:"margin_top_bottom_mm"`
	PageMarginSideMm      float64 `json:"page_margin_side_mm" toml:"margin_side_mm"`

	ColumnsPerRow int `json:"columns_per_row" toml:"columns"`
	RowsPerSheet  int `json:"rows_per_sheet" toml:"rows"`

	// Gutters between adjacent cells only, never before the first or after
	// the last cell.
	HorizontalSpacingMm float64 `json:"horizontal_spacing_mm" toml:"horizontal_spacing_mm"`
	VerticalSpacingMm   float64 `json:"vertical_spacing_mm" toml:"vertical_spacing_mm"`
}

// Summary is the (id, name) pair exposed by format listings.
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Capacity returns the maximum number of labels one sheet holds.
func (f LabelFormat) Capacity() int {
	return f.ColumnsPerRow * f.RowsPerSheet
}

// PageSize returns the page width and height, defaulting to A4.
func (f LabelFormat) PageSize() (width, height float64) {
	width, height = f.PageWidthMm, f.PageHeightMm
	if width == 0 {
		width = A4WidthMm
	}
	if height == 0 {
		height = A4HeightMm
	}
	return width, height
}

// CellSize returns the size of one grid cell. Explicit label dimensions win;
// otherwise the printable area is divided evenly after subtracting gutters.
func (f LabelFormat) CellSize() (width, height float64) {
	pw, ph := f.PageSize()
	width, height = f.LabelWidthMm, f.LabelHeightMm
	if width == 0 && f.ColumnsPerRow > 0 {
		avail := pw - 2*f.PageMarginSideMm - float64(f.ColumnsPerRow-1)*f.HorizontalSpacingMm
		width = avail / float64(f.ColumnsPerRow)
	}
	if height == 0 && f.RowsPerSheet > 0 {
		avail := ph - 2*f.PageMarginTopBottomMm - float64(f.RowsPerSheet-1)*f.VerticalSpacingMm
		height = avail / float64(f.RowsPerSheet)
	}
	return width, height
}

// GridSize returns the extent of a full grid (all rows and columns,
// including gutters) without page margins.
func (f LabelFormat) GridSize() (width, height float64) {
	cw, ch := f.CellSize()
	width = float64(f.ColumnsPerRow)*cw + float64(max(f.ColumnsPerRow-1, 0))*f.HorizontalSpacingMm
	height = float64(f.RowsPerSheet)*ch + float64(max(f.RowsPerSheet-1, 0))*f.VerticalSpacingMm
	return width, height
}

// Summary returns the (id, name) pair for listings.
func (f LabelFormat) Summary() Summary {
	return Summary{ID: f.ID, Name: f.Name}
}

// Validate checks the descriptor for internal consistency: positive grid,
// non-negative lengths, and a grid that fits inside the page margins.
func (f LabelFormat) Validate() error {
	if err := errors.ValidateFormatID(f.ID); err != nil {
		return err
	}
	if f.ColumnsPerRow < 1 || f.RowsPerSheet < 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"format %s: grid must be at least 1x1, got %dx%d", f.ID, f.ColumnsPerRow, f.RowsPerSheet)
	}
	lengths := map[string]float64{
		"page width":         f.PageWidthMm,
		"page height":        f.PageHeightMm,
		"label width":        f.LabelWidthMm,
		"label height":       f.LabelHeightMm,
		"top/bottom margin":  f.PageMarginTopBottomMm,
		"side margin":        f.PageMarginSideMm,
		"horizontal spacing": f.HorizontalSpacingMm,
		"vertical spacing":   f.VerticalSpacingMm,
	}
	for name, v := range lengths {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidConfig, "format %s: %s must be a finite value >= 0", f.ID, name)
		}
	}

	cw, ch := f.CellSize()
	if cw <= 0 || ch <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"format %s: margins and gutters leave no room for labels", f.ID)
	}

	pw, ph := f.PageSize()
	gw, gh := f.GridSize()
	if 2*f.PageMarginSideMm+gw > pw+fitTolerance {
		return errors.New(errors.ErrCodeInvalidConfig,
			"format %s: grid width %.1fmm exceeds page width %.1fmm", f.ID, 2*f.PageMarginSideMm+gw, pw)
	}
	if 2*f.PageMarginTopBottomMm+gh > ph+fitTolerance {
		return errors.New(errors.ErrCodeInvalidConfig,
			"format %s: grid height %.1fmm exceeds page height %.1fmm", f.ID, 2*f.PageMarginTopBottomMm+gh, ph)
	}
	return nil
}
