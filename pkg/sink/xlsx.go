package sink

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/labelsheet/pkg/compose"
	"github.com/matzehuels/labelsheet/pkg/render"
)

const (
	manifestSheet = "Labels"
	formatSheet   = "Format"
)

var manifestHeader = []any{"Index", "Label", "QR payload", "Sheet", "Row", "Column", "QR"}

// RenderXLSX renders a workbook listing every label with its position, plus
// a second sheet describing the label format. It is meant for tracking
// which numbers were printed, not for printing.
func RenderXLSX(doc *compose.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("xlsx: nil document")
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", manifestSheet); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetSheetRow(manifestSheet, "A1", &manifestHeader); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetRowStyle(manifestSheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}

	line := 2
	for _, sheet := range doc.Sheets {
		for _, in := range sheet.Instructions() {
			if in.Kind != render.KindLabel {
				continue
			}
			payload, status := "", "off"
			if in.QR != nil {
				payload, status = in.QR.Payload, "ok"
				if in.QR.Fallback {
					status = "error: " + in.QR.Err
				}
			}
			cell, err := excelize.CoordinatesToCellName(1, line)
			if err != nil {
				return nil, fmt.Errorf("xlsx: %w", err)
			}
			values := []any{in.Index + 1, in.Text, payload, sheet.Index + 1, in.Row + 1, in.Col + 1, status}
			if err := f.SetSheetRow(manifestSheet, cell, &values); err != nil {
				return nil, fmt.Errorf("xlsx: row %d: %w", line, err)
			}
			line++
		}
	}

	for i, width := range []float64{8, 18, 48, 8, 8, 8, 16} {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
		if err := f.SetColWidth(manifestSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("xlsx: %w", err)
		}
	}
	if err := f.SetPanes(manifestSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}

	if err := writeFormatSheet(f, doc); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFormatSheet(f *excelize.File, doc *compose.Document) error {
	if _, err := f.NewSheet(formatSheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	lf := doc.Format
	cw, ch := lf.CellSize()
	pw, ph := lf.PageSize()
	rows := [][]any{
		{"Format", lf.ID},
		{"Name", lf.Name},
		{"Page (mm)", fmt.Sprintf("%.1f x %.1f", pw, ph)},
		{"Label (mm)", fmt.Sprintf("%.1f x %.1f", cw, ch)},
		{"Grid", fmt.Sprintf("%d x %d", lf.ColumnsPerRow, lf.RowsPerSheet)},
		{"Sheets", len(doc.Sheets)},
		{"Labels", doc.Labels()},
		{"QR fallbacks", len(doc.Fallbacks())},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		if err := f.SetSheetRow(formatSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}
	return f.SetColWidth(formatSheet, "A", "B", 28)
}
