// Package pkg provides the core libraries for labelsheet label generation.
//
// # Overview
//
// Labelsheet turns a numbering request ("ASN", start 1, four digits, 189
// labels) into a print-ready sheet laid out on a physical label product
// such as Avery L4731. The pkg directory is organized into three areas:
//
//  1. Domain logic (numbering, grid planning, cell rendering, composition)
//  2. Output sinks (PDF, PNG, JSON, XLSX)
//  3. Infrastructure (configuration, caching, errors, observability)
//
// # Architecture
//
// The data flow through labelsheet:
//
//	Options (prefix, start, padding, count, format)
//	         ↓
//	    [numbering] package (label texts and QR payloads)
//	         ↓
//	    [layout] package (sheet grids, cell geometry)
//	         ↓
//	    [render] + [compose] packages (draw instructions per sheet)
//	         ↓
//	    [sink] package (PDF/PNG/JSON/XLSX bytes)
//
// # Quick Start
//
// Generate the default ASN sheet:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/labelsheet/pkg/cache"
//	    "github.com/matzehuels/labelsheet/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Execute(context.Background(), pipeline.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(res.FileName, res.Artifact, 0o644) // labels-ASN.pdf
//
// # Main Packages
//
// ## Domain Logic
//
// [format] - Label-sheet descriptors, the built-in registry, and the grid
// expression parser for custom products.
//
// [numbering] - Sequential label texts with zero padding and QR payload
// templates.
//
// [layout] - Row-major grid planning, pagination across sheets, and cell
// bounds in millimetres.
//
// [render] - Per-cell draw instructions. QR encoding failures degrade to a
// placeholder instead of failing the sheet.
//
// [compose] - Sheets and documents assembled from planned grids.
//
// [qr] - QR symbol encoding.
//
// ## Output
//
// [sink] - Renderers keyed by output type: PDF (print), PNG (preview), JSON
// (inspection), XLSX (spreadsheet of labels).
//
// ## Infrastructure
//
// [pipeline] - The complete generation pipeline (validate → compose → render)
// used by the CLI and the HTTP API. Ensures consistent behavior across entry
// points.
//
// [config] - TOML configuration file, environment overrides and .env loading.
//
// [cache] - Rendered artifact cache with file, Redis and no-op backends.
//
// [errors] - Structured error codes shared by every layer.
//
// [observability] - Hooks for pipeline, cache and server events.
//
// # Testing
//
// Run tests:
//
//	go test ./...                                    # All tests
//	go test -run Example ./pkg/...                   # Examples only
//	LABELSHEET_TEST_REDIS=redis://localhost:6379/15 go test ./pkg/cache
//
// [format]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/format
// [numbering]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/numbering
// [layout]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/render
// [compose]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/compose
// [qr]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/qr
// [sink]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/labelsheet/pkg/observability
package pkg
