package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/labelsheet/pkg/buildinfo"
	"github.com/matzehuels/labelsheet/pkg/cache"
	"github.com/matzehuels/labelsheet/pkg/compose"
	"github.com/matzehuels/labelsheet/pkg/errors"
	"github.com/matzehuels/labelsheet/pkg/format"
	"github.com/matzehuels/labelsheet/pkg/observability"
	"github.com/matzehuels/labelsheet/pkg/qr"
	"github.com/matzehuels/labelsheet/pkg/render"
	"github.com/matzehuels/labelsheet/pkg/sink"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating format resolution,
// capacity checks and caching logic.
//
// The Runner is stateless except for its collaborators - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Registry  *format.Registry
	Encoder   render.Encoder
	Renderers map[string]sink.Renderer
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger

	// ArtifactTTL is how long rendered artifacts stay cached.
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The runner starts with the built-in formats, the boombuler QR encoder and
// the built-in renderers; replace the fields to customize.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if nc, ok := c.(*cache.NullCache); ok {
		logger.Debug("artifact cache off", "reason", nc.Reason)
	}
	renderers := sink.Defaults()
	renderers[sink.OutputPDF] = sink.RendererFunc(func(d *compose.Document) ([]byte, error) {
		return sink.RenderPDF(d, sink.WithPDFCreator(buildinfo.Creator()))
	})
	return &Runner{
		Registry:    format.Default(),
		Encoder:     qr.New(),
		Renderers:   renderers,
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		ArtifactTTL: cache.TTLArtifact,
	}
}

// Execute runs the complete compose → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if _, err := r.renderer(opts.Output); err != nil {
		return nil, err
	}

	result := &Result{
		Output:      opts.Output,
		ContentType: sink.ContentType(opts.Output),
		FileName:    opts.FileName(),
	}

	// Stage 1: Compose
	doc, stats, err := r.ComposeWithStats(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats = stats

	// Stage 2: Render
	renderStart := time.Now()
	artifact, renderHit, err := r.RenderWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered output",
		"output", opts.Output,
		"bytes", len(artifact),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComposeWithStats generates the labels of opts and composes them into a
// document, returning size and timing statistics.
func (r *Runner) ComposeWithStats(ctx context.Context, opts Options) (*compose.Document, Stats, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, Stats{}, err
	}

	f, err := r.ResolveFormat(opts)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("layout: %w", err)
	}

	hooks := observability.Pipeline()
	hooks.OnComposeStart(ctx, f.ID, opts.Count)
	start := time.Now()
	doc, err := Compose(ctx, f, opts, r.Encoder)
	elapsed := time.Since(start)
	if err != nil {
		hooks.OnComposeComplete(ctx, f.ID, 0, elapsed, err)
		return nil, Stats{}, err
	}
	hooks.OnComposeComplete(ctx, f.ID, len(doc.Sheets), elapsed, nil)

	fallbacks := doc.Fallbacks()
	for _, fb := range fallbacks {
		opts.Logger.Warn("QR encoding failed, drawing placeholder",
			"payload", fb.Payload,
			"sheet", fb.Sheet+1,
			"row", fb.Row,
			"col", fb.Col,
			"err", fb.Err)
		hooks.OnQRFallback(ctx, fb.Payload, fb.Err)
	}

	stats := Stats{
		Labels:      doc.Labels(),
		Sheets:      len(doc.Sheets),
		Fallbacks:   len(fallbacks),
		ComposeTime: elapsed,
	}
	opts.Logger.Info("composed sheets",
		"format", f.ID,
		"labels", stats.Labels,
		"sheets", stats.Sheets,
		"duration", stats.ComposeTime)
	return doc, stats, nil
}

// RenderWithCacheInfo renders doc with caching and returns cache hit info.
// The cache key is derived from the document content, so equal requests
// share an artifact regardless of how their options were spelled.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *compose.Document, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	rd, err := r.renderer(opts.Output)
	if err != nil {
		return nil, false, err
	}

	docHash, err := cache.HashJSON(doc)
	if err != nil {
		return nil, false, fmt.Errorf("rendering: document cache key: %w", err)
	}
	cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts())
	cacheHooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "artifact")
			return data, true, nil // Cache hit
		} else if err != nil {
			opts.Logger.Debug("cache read failed", "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
	}

	data, err := Render(ctx, rd, doc, opts.Output)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	ttl := r.ArtifactTTL
	if ttl <= 0 {
		ttl = cache.TTLArtifact
	}
	if err := r.Cache.Set(ctx, cacheKey, data, ttl); err != nil {
		opts.Logger.Debug("cache write failed", "err", err)
	} else {
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return data, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, doc *compose.Document, opts Options) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, doc, opts)
	return data, err
}

// ResolveFormat returns the label format selected by opts: the parsed grid
// expression when set, otherwise the registered format.
func (r *Runner) ResolveFormat(opts Options) (format.LabelFormat, error) {
	if opts.Grid != "" {
		return format.ParseGrid("custom", opts.Grid)
	}
	return r.Registry.Lookup(opts.Format)
}

// Formats lists the registered formats in display order.
func (r *Runner) Formats() []format.Summary {
	return r.Registry.List()
}

// Outputs lists the output types this runner can produce.
func (r *Runner) Outputs() []string {
	var out []string
	for _, o := range sink.Outputs() {
		if _, ok := r.Renderers[o]; ok {
			out = append(out, o)
		}
	}
	return out
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) renderer(output string) (sink.Renderer, error) {
	rd, ok := r.Renderers[output]
	if !ok || rd == nil {
		return nil, errors.New(errors.ErrCodeUnsupportedType,
			"unsupported output %q (use one of: %v)", output, r.Outputs())
	}
	return rd, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
