// Package layout maps label contents onto the cell grid of a sheet.
//
// [Plan] places one sheet's worth of contents in row-major order: content i
// goes to row i/columns, column i%columns. The last used row is padded with
// empty cells so that every emitted row has exactly ColumnsPerRow cells, and
// rows after the last used one are omitted. Contents beyond the sheet
// capacity are not planned; [Paginate] splits a longer run into one [Grid]
// per sheet.
//
// [CellBounds] converts a (row, column) slot into page coordinates in
// millimetres, measured from the top-left corner of the page.
package layout
