// Package numbering generates the ordered label contents of a sheet run.
//
// A [Config] describes a run of sequential numbers: a prefix, the first
// number, a minimum digit width and a count. [Generate] expands it into
// [Content] values, one per label, each carrying the text printed on the
// label and the string encoded into its QR symbol.
//
// # Display text
//
// The display text is the prefix followed by the number, left-padded with
// zeros to at least PaddingZeros digits. Numbers wider than the padding are
// never truncated:
//
//	ZeroPad(7, 4)     // "0007"
//	ZeroPad(10000, 4) // "10000"
//
// # QR payload
//
// When QRTemplate is non-empty, every occurrence of [Placeholder] is replaced
// by the display text. A template without the placeholder yields the same
// static payload for every label. An empty template means the payload is the
// display text itself.
//
//	cfg := numbering.Config{Prefix: "ASN", PaddingZeros: 4, StartingNumber: 1, Count: 3,
//	    QRTemplate: "https://paperless.example/documents?archive_serial_number={label}"}
//	contents, err := numbering.Generate(cfg)
package numbering
