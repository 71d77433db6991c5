package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/labelsheet/pkg/pipeline"
	"github.com/matzehuels/labelsheet/pkg/sink"
)

// generateOpts holds the command-line flags for the generate command.
// Flag values only override the configuration when set explicitly.
type generateOpts struct {
	flags   pipeline.Options
	output  string // output file path, "-" for stdout
	noCache bool
	pick    bool
}

// flagSetters copy one explicitly set flag onto the pipeline options.
var flagSetters = map[string]func(dst, src *pipeline.Options){
	"format":       func(d, s *pipeline.Options) { d.Format = s.Format },
	"grid":         func(d, s *pipeline.Options) { d.Grid = s.Grid },
	"prefix":       func(d, s *pipeline.Options) { d.Prefix = s.Prefix },
	"start":        func(d, s *pipeline.Options) { d.StartingNumber = s.StartingNumber },
	"padding":      func(d, s *pipeline.Options) { d.PaddingZeros = s.PaddingZeros },
	"count":        func(d, s *pipeline.Options) { d.Count = s.Count },
	"qr":           func(d, s *pipeline.Options) { d.QR = s.QR },
	"qr-size":      func(d, s *pipeline.Options) { d.QRSizeMm = s.QRSizeMm },
	"qr-template":  func(d, s *pipeline.Options) { d.QRTemplate = s.QRTemplate },
	"qr-level":     func(d, s *pipeline.Options) { d.QRLevel = s.QRLevel },
	"font-size":    func(d, s *pipeline.Options) { d.FontSizePt = s.FontSizePt },
	"border":       func(d, s *pipeline.Options) { d.Border = s.Border },
	"type":         func(d, s *pipeline.Options) { d.Output = s.Output },
	"title":        func(d, s *pipeline.Options) { d.Title = s.Title },
	"single-sheet": func(d, s *pipeline.Options) { d.SingleSheet = s.SingleSheet },
	"max-sheets":   func(d, s *pipeline.Options) { d.MaxSheets = s.MaxSheets },
	"refresh":      func(d, s *pipeline.Options) { d.Refresh = s.Refresh },
}

// applyFlags overlays every changed flag in fs onto opts.
func applyFlags(fs *pflag.FlagSet, opts, flags *pipeline.Options) {
	fs.Visit(func(f *pflag.Flag) {
		if set, ok := flagSetters[f.Name]; ok {
			set(opts, flags)
		}
	})
}

// generateCommand creates the generate command.
//
// Default settings match the classic ASN sheet: prefix ASN, start 1, four
// digits, one full sheet of Avery L4731 with QR codes.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{flags: pipeline.DefaultOptions()}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sheet of numbered labels",
		Example: `  labelsheet generate
  labelsheet generate -f avery-l7160 --prefix BOX- --start 100 --count 42
  labelsheet generate --grid "3x8 70x36 margin 4.5,0" -o shelf.pdf
  labelsheet generate --qr-template "https://paperless.example.com/asn/{label}" -t xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run := c.cfg().Options()
			applyFlags(cmd.Flags(), &run, &opts.flags)
			if cmd.Flags().Changed("format") && !cmd.Flags().Changed("grid") {
				run.Grid = ""
			}
			if !cmd.Flags().Changed("type") && opts.output != "" && opts.output != "-" {
				if ext := outputFromPath(opts.output); ext != "" {
					run.Output = ext
				}
			}
			if opts.pick {
				id, err := pickFormat(c.cfg(), run.Format)
				if err != nil {
					return err
				}
				if id == "" {
					printInfo("No format selected")
					return nil
				}
				run.Format, run.Grid = id, ""
			}
			return c.runGenerate(cmd.Context(), run, &opts)
		},
	}

	bindGenerateFlags(cmd.Flags(), &opts)

	c.registerGenerateCompletions(cmd)

	return cmd
}

// bindGenerateFlags registers the generate flags on fl, defaulting to the
// values already in opts.
func bindGenerateFlags(fl *pflag.FlagSet, opts *generateOpts) {
	f := &opts.flags
	fl.StringVarP(&f.Format, "format", "f", f.Format, "label format id (see 'labelsheet formats')")
	fl.StringVar(&f.Grid, "grid", "", `custom grid, e.g. "3x8 70x36 margin 4.5,0 gap 0,0"`)
	fl.StringVarP(&f.Prefix, "prefix", "p", f.Prefix, "text before each number")
	fl.IntVarP(&f.StartingNumber, "start", "s", f.StartingNumber, "first number")
	fl.IntVarP(&f.PaddingZeros, "padding", "d", f.PaddingZeros, "minimum digits (zero padded)")
	fl.IntVarP(&f.Count, "count", "n", f.Count, "number of labels")
	fl.BoolVar(&f.QR, "qr", f.QR, "draw a QR code on each label")
	fl.Float64Var(&f.QRSizeMm, "qr-size", f.QRSizeMm, "QR code edge in mm (shrinks to fit the label)")
	fl.StringVar(&f.QRTemplate, "qr-template", "", "QR payload template; {label} is replaced by the label text")
	fl.StringVar(&f.QRLevel, "qr-level", f.QRLevel, "QR error correction: L, M, Q or H")
	fl.Float64Var(&f.FontSizePt, "font-size", f.FontSizePt, "label text size in points")
	fl.BoolVar(&f.Border, "border", false, "outline every label (for test prints)")
	fl.StringVarP(&f.Output, "type", "t", f.Output, "output type: "+strings.Join(sink.Outputs(), ", "))
	fl.StringVar(&f.Title, "title", "", "document title (default: label range)")
	fl.BoolVar(&f.SingleSheet, "single-sheet", false, "fail instead of adding sheets when labels do not fit")
	fl.IntVar(&f.MaxSheets, "max-sheets", f.MaxSheets, "maximum number of sheets")
	fl.BoolVar(&f.Refresh, "refresh", false, "ignore cached output")
	fl.StringVarP(&opts.output, "output", "o", "", `output file (default labels-<prefix>.<type>, "-" for stdout)`)
	fl.BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	fl.BoolVar(&opts.pick, "pick", false, "choose the label format interactively")
}

// outputFromPath returns the output type implied by a file extension, or ""
// when the extension is not an output type.
func outputFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, o := range sink.Outputs() {
		if ext == o {
			return o
		}
	}
	return ""
}

// runGenerate executes the pipeline and writes the artifact.
func (c *CLI) runGenerate(ctx context.Context, run pipeline.Options, opts *generateOpts) error {
	logger := loggerFromContext(ctx)
	toStdout := opts.output == "-"
	if toStdout {
		old := uiOut
		uiOut = os.Stderr
		defer func() { uiOut = old }()
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	run.Logger = logger
	prog := newProgress(logger)
	spinner := newSpinner(ctx, "Composing labels...")
	spinner.Start()
	res, err := runner.Execute(ctx, run)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	if toStdout {
		_, err := os.Stdout.Write(res.Artifact)
		return err
	}

	path := opts.output
	if path == "" {
		path = res.FileName
	}
	if err := writeFile(path, res.Artifact); err != nil {
		return err
	}
	prog.done("wrote labels", "file", path, "bytes", len(res.Artifact))

	printSuccess("Generated %s", StyleValue.Render(res.Document.Title))
	printFile(path)
	printStats(res.Stats.Labels, res.Stats.Sheets, res.Stats.Fallbacks, res.CacheInfo.RenderHit)
	if res.Stats.Fallbacks > 0 {
		printWarning("%d QR codes could not be encoded and were replaced by placeholders", res.Stats.Fallbacks)
	}
	return nil
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
