package format_test

import (
	"fmt"

	"github.com/matzehuels/labelsheet/pkg/format"
)

func ExampleRegistry_Lookup() {
	reg := format.Default()

	f, err := reg.Lookup("AVERY-L4731")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s: %dx%d, %d labels per sheet\n", f.ID, f.ColumnsPerRow, f.RowsPerSheet, f.Capacity())
	// Output: avery-l4731: 7x27, 189 labels per sheet
}

func ExampleParseGrid() {
	f, err := format.ParseGrid("shelf", "3x8 70x36 margin 4.5,0 gap 0,0")
	if err != nil {
		fmt.Println(err)
		return
	}
	w, h := f.CellSize()
	fmt.Printf("%d labels of %.0fx%.0f mm\n", f.Capacity(), w, h)
	// Output: 24 labels of 70x36 mm
}
