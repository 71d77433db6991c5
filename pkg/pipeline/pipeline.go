// Package pipeline provides the label generation pipeline for labelsheet.
//
// This package implements the complete numbering → layout → render pipeline
// used by the CLI and the HTTP API. By centralizing this logic, both entry
// points resolve formats, enforce capacity limits, and cache artifacts the
// same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Compose: generate label contents, plan one grid per sheet, and render
//     every cell (including QR encoding) into a [compose.Document]
//  2. Render: turn the document into an output artifact (PDF, PNG, JSON or
//     XLSX), cached by the document's content hash
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Format = "avery-l7160"
//	opts.Count = 42
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.FileName, result.Artifact, 0o644)
//
// Run individual stages:
//
//	doc, stats, err := runner.ComposeWithStats(ctx, opts)
//	artifact, hit, err := runner.RenderWithCacheInfo(ctx, doc, opts)
package pipeline

import (
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelsheet/pkg/buildinfo"
	"github.com/matzehuels/labelsheet/pkg/cache"
	"github.com/matzehuels/labelsheet/pkg/compose"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/format"
	"github.com/matzehuels/labelsheet/pkg/numbering"
	"github.com/matzehuels/labelsheet/pkg/render"
	"github.com/matzehuels/labelsheet/pkg/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultCount fills one sheet of the default format.
	DefaultCount = 189

	// DefaultMaxSheets bounds a single request.
	DefaultMaxSheets = 50

	// DefaultOutput is the default artifact type.
	DefaultOutput = sink.OutputPDF

	// MaxCount is the largest count accepted regardless of MaxSheets.
	MaxCount = 100_000
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one generation request.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Format selection. Grid, when set, defines an ad-hoc format and wins
	// over Format.
	Format string `json:"format,omitempty"`
	Grid   string `json:"grid,omitempty"`

	// Numbering
	Prefix         string `json:"prefix"`
	StartingNumber int    `json:"starting_number"`
	PaddingZeros   int    `json:"padding_zeros"`
	Count          int    `json:"count"`
	QRTemplate     string `json:"qr_template,omitempty"`

	// Style
	QR         bool    `json:"qr"`
	QRSizeMm   float64 `json:"qr_size_mm,omitempty"`
	QRLevel    string  `json:"qr_level,omitempty"`
	FontSizePt float64 `json:"font_size_pt,omitempty"`
	Border     bool    `json:"border,omitempty"`

	// Output
	Output      string `json:"output,omitempty"`
	Title       string `json:"title,omitempty"`
	SingleSheet bool   `json:"single_sheet,omitempty"`
	MaxSheets   int    `json:"max_sheets,omitempty"`
	Refresh     bool   `json:"refresh,omitempty"` // bypass the artifact cache

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns the options used when a request sets nothing.
func DefaultOptions() Options {
	return Options{
		Format:         format.DefaultID,
		Prefix:         numbering.DefaultPrefix,
		StartingNumber: numbering.DefaultStartingNumber,
		PaddingZeros:   numbering.DefaultPaddingZeros,
		Count:          DefaultCount,
		QR:             true,
		QRSizeMm:       render.DefaultQRSizeMm,
		QRLevel:        string(render.LevelMedium),
		FontSizePt:     render.DefaultFontSizePt,
		Output:         DefaultOutput,
		MaxSheets:      DefaultMaxSheets,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the composed, renderer-independent description.
	Document *compose.Document

	// Artifact is the rendered output.
	Artifact []byte

	// Output, ContentType and FileName describe Artifact.
	Output      string
	ContentType string
	FileName    string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Labels      int
	Sheets      int
	Fallbacks   int
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether the artifact came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills settings whose zero
// value is never valid (font size, QR size, QR level, output, sheet limit).
// Format is never filled: unless Grid is set, an empty Format is an
// INVALID_CONFIGURATION error. Booleans and numbering values are taken as
// given; start from DefaultOptions to get the documented defaults.
// Numbering values are checked by the numbering stage.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.FontSizePt == 0 {
		o.FontSizePt = render.DefaultFontSizePt
	}
	if o.QRSizeMm == 0 {
		o.QRSizeMm = render.DefaultQRSizeMm
	}
	if o.QRLevel == "" {
		o.QRLevel = string(render.LevelMedium)
	}
	if o.MaxSheets == 0 {
		o.MaxSheets = DefaultMaxSheets
	}
	o.Output = strings.ToLower(strings.TrimSpace(o.Output))
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if o.Grid == "" {
		if err := errors.ValidateFormatID(o.Format); err != nil {
			return err
		}
	}
	if o.Count > MaxCount {
		return errors.New(errors.ErrCodeInvalidConfig, "count must be <= %d, got %d", MaxCount, o.Count)
	}
	if o.MaxSheets < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max sheets must be >= 0, got %d", o.MaxSheets)
	}
	if _, err := o.RenderStyle(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// NumberingConfig returns the numbering part of the options.
func (o *Options) NumberingConfig() numbering.Config {
	return numbering.Config{
		Prefix:         o.Prefix,
		StartingNumber: o.StartingNumber,
		PaddingZeros:   o.PaddingZeros,
		Count:          o.Count,
		QRTemplate:     o.QRTemplate,
	}
}

// RenderStyle returns the validated cell style of the options.
func (o *Options) RenderStyle() (render.Style, error) {
	level, err := render.ParseLevel(o.QRLevel)
	if err != nil {
		return render.Style{}, err
	}
	style := render.Style{
		FontSizePt: o.FontSizePt,
		QR:         o.QR,
		QRSizeMm:   o.QRSizeMm,
		QRLevel:    level,
		PaddingMm:  render.DefaultPaddingMm,
		Border:     o.Border,
	}
	if err := style.Validate(); err != nil {
		return render.Style{}, err
	}
	return style, nil
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Output:  o.Output,
		Version: buildinfo.Version,
	}
}

// FileName returns the download name of the artifact, e.g. "labels-ASN.pdf".
func (o *Options) FileName() string {
	return FileName(o.Prefix, o.Output)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FileName returns "labels-<prefix>.<output>", or "labels.<output>" when the
// prefix is empty. Characters that are unsafe in file names become "_".
func FileName(prefix, output string) string {
	if output == "" {
		output = DefaultOutput
	}
	prefix = strings.Trim(unsafeFileChars.ReplaceAllString(prefix, "_"), "_.")
	if prefix == "" {
		return "labels." + output
	}
	return "labels-" + prefix + "." + output
}
