// Package render turns planned grid cells into draw instructions.
//
// [RenderCell] decides what one cell shows. Spacer cells yield a
// [KindSpacer] instruction that reserves the slot without content. Populated
// cells always carry their display text; when [Style].QR is set they also
// carry a [QRBlock] placed at the left edge of the cell, vertically centred,
// with the text taking the remaining width.
//
// # QR fallback
//
// QR encoding goes through an [Encoder]. Any encoder failure, including a
// panic or a nil symbol, is absorbed: the block is marked Fallback and keeps
// the footprint the symbol would have used, so page renderers can draw a
// placeholder box. The text of the cell and all other cells are unaffected.
package render
