package format

import (
	"math"
	"testing"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBuiltinFormatsValid(t *testing.T) {
	for _, f := range Builtin {
		t.Run(f.ID, func(t *testing.T) {
			if err := f.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
			if f.Capacity() < 1 {
				t.Errorf("Capacity() = %d", f.Capacity())
			}
		})
	}
}

func TestAveryL4731(t *testing.T) {
	f, err := Default().Lookup(AveryL4731)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if f.LabelWidthMm != 25.4 || f.LabelHeightMm != 10 {
		t.Errorf("label size = %vx%v, want 25.4x10", f.LabelWidthMm, f.LabelHeightMm)
	}
	if f.Capacity() != 189 {
		t.Errorf("Capacity() = %d, want 189", f.Capacity())
	}
	pw, ph := f.PageSize()
	if pw != A4WidthMm || ph != A4HeightMm {
		t.Errorf("PageSize() = %vx%v, want A4", pw, ph)
	}
}

func TestCellSizeDerived(t *testing.T) {
	f := LabelFormat{
		ID:                    "derived",
		PageMarginTopBottomMm: 10,
		PageMarginSideMm:      5,
		ColumnsPerRow:         4,
		RowsPerSheet:          10,
		HorizontalSpacingMm:   2,
		VerticalSpacingMm:     1,
	}
	w, h := f.CellSize()
	// (210 - 10 - 3*2) / 4 and (297 - 20 - 9*1) / 10
	if !approx(w, 48.5) || !approx(h, 26.8) {
		t.Errorf("CellSize() = %v x %v, want 48.5 x 26.8", w, h)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("derived format should validate: %v", err)
	}
}

func TestGridSizeSingleColumn(t *testing.T) {
	f := LabelFormat{ID: "one", LabelWidthMm: 50, LabelHeightMm: 20, ColumnsPerRow: 1, RowsPerSheet: 1, HorizontalSpacingMm: 5, VerticalSpacingMm: 5}
	w, h := f.GridSize()
	if w != 50 || h != 20 {
		t.Errorf("GridSize() = %vx%v; gutters must not apply to a single cell", w, h)
	}
}

func TestValidate(t *testing.T) {
	base := LabelFormat{ID: "ok", LabelWidthMm: 20, LabelHeightMm: 10, ColumnsPerRow: 2, RowsPerSheet: 2}

	tests := []struct {
		name    string
		mutate  func(*LabelFormat)
		wantErr bool
	}{
		{"valid", func(*LabelFormat) {}, false},
		{"zero columns", func(f *LabelFormat) { f.ColumnsPerRow = 0 }, true},
		{"zero rows", func(f *LabelFormat) { f.RowsPerSheet = 0 }, true},
		{"negative spacing", func(f *LabelFormat) { f.HorizontalSpacingMm = -1 }, true},
		{"empty id", func(f *LabelFormat) { f.ID = "" }, true},
		{"too wide", func(f *LabelFormat) { f.LabelWidthMm = 120 }, true},
		{"too tall", func(f *LabelFormat) { f.LabelHeightMm = 200 }, true},
		{"margins eat page", func(f *LabelFormat) { f.LabelWidthMm = 0; f.PageMarginSideMm = 105 }, true},
		{"nan", func(f *LabelFormat) { f.VerticalSpacingMm = math.NaN() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base
			tt.mutate(&f)
			err := f.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIGURATION, got %v", err)
			}
		})
	}
}
