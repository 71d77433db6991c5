// Package sink renders composed label documents to output formats.
//
// Each renderer consumes a [compose.Document] and returns the serialized
// bytes. Renderers never alter layout: positions and sizes come from the
// document, so every output shows the same grid.
//
//   - [RenderPDF]: print-ready vector PDF, one page per sheet (fpdf)
//   - [RenderPNG]: raster preview with all sheets stacked vertically (gg)
//   - [RenderJSON]: the document as JSON, for debugging and integrations
//   - [RenderXLSX]: a spreadsheet manifest listing every label (excelize)
//
// PDF and PNG set text in the Go fonts from [fonts], embedded so both
// outputs print the same glyphs. A label using a character those fonts lack
// fails with ErrCodeInvalidInput rather than printing a substitute.
//
// QR blocks marked as fallback are drawn as a grey bordered box with the
// caption "QR Error" so a failed symbol is visible on the printed sheet.
package sink
