package format

// Identifiers of the built-in formats.
const (
	AveryL4731 = "avery-l4731"
	AveryL4732 = "avery-l4732"
	AveryL4736 = "avery-l4736"
	AveryL7651 = "avery-l7651"
	AveryL7160 = "avery-l7160"
	AveryL7163 = "avery-l7163"
)

// DefaultID is the format used when a request does not name one.
const DefaultID = AveryL4731

// Builtin lists the compiled-in A4 products in listing order. Dimensions
// follow the vendor datasheets.
var Builtin = []LabelFormat{
	{
		ID:                    AveryL4731,
		Name:                  "Avery Zweckform L4731 (25.4 x 10 mm)",
		LabelWidthMm:          25.4,
		LabelHeightMm:         10,
		PageMarginTopBottomMm: 13.5,
		PageMarginSideMm:      9,
		ColumnsPerRow:         7,
		RowsPerSheet:          27,
		HorizontalSpacingMm:   2,
	},
	{
		ID:                    AveryL4732,
		Name:                  "Avery Zweckform L4732 (35.6 x 16.9 mm)",
		LabelWidthMm:          35.6,
		LabelHeightMm:         16.9,
		PageMarginTopBottomMm: 13.3,
		PageMarginSideMm:      11,
		ColumnsPerRow:         5,
		RowsPerSheet:          16,
		HorizontalSpacingMm:   2.5,
	},
	{
		ID:                    AveryL4736,
		Name:                  "Avery Zweckform L4736 (45.7 x 21.2 mm)",
		LabelWidthMm:          45.7,
		LabelHeightMm:         21.2,
		PageMarginTopBottomMm: 21.3,
		PageMarginSideMm:      9.85,
		ColumnsPerRow:         4,
		RowsPerSheet:          12,
		HorizontalSpacingMm:   2.5,
	},
	{
		ID:                    AveryL7651,
		Name:                  "Avery L7651 (38.1 x 21.2 mm)",
		LabelWidthMm:          38.1,
		LabelHeightMm:         21.2,
		PageMarginTopBottomMm: 10.7,
		PageMarginSideMm:      4.75,
		ColumnsPerRow:         5,
		RowsPerSheet:          13,
		HorizontalSpacingMm:   2.5,
	},
	{
		ID:                    AveryL7160,
		Name:                  "Avery L7160 (63.5 x 38.1 mm)",
		LabelWidthMm:          63.5,
		LabelHeightMm:         38.1,
		PageMarginTopBottomMm: 15.15,
		PageMarginSideMm:      7.25,
		ColumnsPerRow:         3,
		RowsPerSheet:          7,
		HorizontalSpacingMm:   2.5,
	},
	{
		ID:                    AveryL7163,
		Name:                  "Avery L7163 (99.1 x 38.1 mm)",
		LabelWidthMm:          99.1,
		LabelHeightMm:         38.1,
		PageMarginTopBottomMm: 15.15,
		PageMarginSideMm:      4.65,
		ColumnsPerRow:         2,
		RowsPerSheet:          7,
		HorizontalSpacingMm:   2.5,
	},
}
