// Package compose assembles render instructions into page descriptions.
//
// A [Sheet] is the ordered instruction stream for one page, grouped into
// rows. Within a content row, a gutter element separates adjacent cells when
// the format's horizontal spacing is positive; between content rows a gutter
// row is inserted when the vertical spacing is positive. Zero spacing emits
// no gutter element at all. No gutter precedes the first or follows the last
// cell or row.
//
// Composition is deterministic: identical inputs produce identical sheets.
// A [Document] holds the sheets of one run together with the format and
// style they were composed with, and is what page renderers consume.
package compose
