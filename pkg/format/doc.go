// Package format describes physical label-sheet products and the registry
// that resolves them by identifier.
//
// # Core Types
//
//   - [LabelFormat]: one physical product (page size, grid shape, label size,
//     page margins and gutters), all lengths in millimetres
//   - [Registry]: ordered, case-insensitive lookup of formats by identifier
//   - [Summary]: the (id, name) pair returned by [Registry.List]
//
// # Built-in Formats
//
// [Builtin] lists the compiled-in products. [Default] returns a fresh registry
// populated with them; callers that register custom formats (from a config
// file or [ParseGrid]) never affect other registries.
//
//	reg := format.Default()
//	f, err := reg.Lookup("AVERY-L4731") // case-insensitive
//	fmt.Println(f.Capacity())           // 189
//
// # Grid Expressions
//
// [ParseGrid] builds an ad-hoc format from a compact expression:
//
//	3x8 70x36 margin 4.5,0 gap 0,0 page 210x297
//
// The first pair is columns x rows, the optional second pair the label size.
// When the label size is omitted, cells are derived from the page area left
// after margins and gutters.
package format
