package pipeline

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/treelinehq/treeline/pkg/cache"
	"github.com/treelinehq/treeline/pkg/errors"
	"github.com/treelinehq/treeline/pkg/layout"
	"github.com/treelinehq/treeline/pkg/observability"
	"github.com/treelinehq/treeline/pkg/render"
	"github.com/treelinehq/treeline/pkg/tree"
	"github.com/treelinehq/treeline/pkg/treefile"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	t, treeHash, err := r.loadWithHash(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Tree = t
	result.TreeHash = treeHash
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = t.NodeCount()

	r.Logger.Info("loaded tree",
		"source", opts.source(),
		"nodes", t.NodeCount(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, t, treeHash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Width = l.Width
	result.Stats.Depth = l.Depth
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"width", l.Width,
		"depth", l.Depth,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load parses and validates the input tree.
func (r *Runner) Load(ctx context.Context, opts Options) (*tree.Tree, error) {
	t, _, err := r.loadWithHash(ctx, opts)
	return t, err
}

// loadWithHash loads the tree and returns the content hash of its
// canonical serialization, which keys the layout cache.
func (r *Runner) loadWithHash(ctx context.Context, opts Options) (*tree.Tree, string, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", err
	}

	start := time.Now()
	observability.Pipeline().OnParseStart(ctx, opts.source())

	data := opts.Input
	if opts.InputPath != "" {
		var err error
		data, err = os.ReadFile(opts.InputPath)
		if err != nil {
			if os.IsNotExist(err) {
				err = errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", opts.InputPath)
			} else {
				err = errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", opts.InputPath)
			}
			observability.Pipeline().OnParseComplete(ctx, opts.source(), 0, time.Since(start), err)
			return nil, "", err
		}
		if len(data) > MaxInputBytes {
			err = errors.New(errors.ErrCodeInvalidInput, "%s exceeds %d bytes", opts.InputPath, MaxInputBytes)
			observability.Pipeline().OnParseComplete(ctx, opts.source(), 0, time.Since(start), err)
			return nil, "", err
		}
	}

	t, err := treefile.ReadTree(bytes.NewReader(data))
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInvalidTree, err, "parse %s", opts.source())
		observability.Pipeline().OnParseComplete(ctx, opts.source(), 0, time.Since(start), err)
		return nil, "", err
	}

	// Hash the canonical form, not the raw input, so formatting
	// differences don't defeat the cache.
	canonical, err := treefile.MarshalTree(t)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "serialize tree")
	}

	observability.Pipeline().OnParseComplete(ctx, opts.source(), t.NodeCount(), time.Since(start), nil)
	return t, cache.Hash(canonical), nil
}

// ComputeLayout computes the layout for a tree, consulting the cache.
func (r *Runner) ComputeLayout(ctx context.Context, t *tree.Tree, opts Options) (treefile.Layout, error) {
	canonical, err := treefile.MarshalTree(t)
	if err != nil {
		return treefile.Layout{}, errors.Wrap(errors.ErrCodeInternal, err, "serialize tree")
	}
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, t, cache.Hash(canonical), opts)
	return l, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, t *tree.Tree, treeHash string, opts Options) (treefile.Layout, bool, error) {
	r.applyLogger(&opts)
	cacheKey := r.Keyer.LayoutKey(treeHash)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := treefile.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, t.NodeCount())

	res, err := layout.Compute(t)
	observability.Pipeline().OnLayoutComplete(ctx, t.NodeCount(), time.Since(start), err)
	if err != nil {
		return treefile.Layout{}, false, errors.Wrap(errors.ErrCodeInvalidTree, err, "compute layout")
	}
	l := treefile.FromResult(res, t)

	// Cache the result
	if data, err := treefile.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return l, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l treefile.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := treefile.MarshalLayout(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	// Render all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, format)
		data, err := render.Render(ctx, l, format)
		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		rendered[format] = data
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l treefile.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
