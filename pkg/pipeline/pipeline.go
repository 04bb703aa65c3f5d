// Package pipeline provides the core layout pipeline for Treeline.
//
// This package implements the complete load → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse and validate the input tree
//  2. Layout: Compute grid positions for every node
//  3. Render: Generate output in various formats (SVG, text, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Layout and render results are cached by content hash: the same tree never
// pays for the same computation twice.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    InputPath: "tree.json",
//	    Formats:   []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	t, err := runner.Load(ctx, opts)
//	l, err := runner.ComputeLayout(ctx, t, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/treelinehq/treeline/pkg/cache"
	"github.com/treelinehq/treeline/pkg/errors"
	"github.com/treelinehq/treeline/pkg/tree"
	"github.com/treelinehq/treeline/pkg/treefile"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultFormat is the output format used when none is requested.
const DefaultFormat = treefile.FormatSVG

// MaxInputBytes bounds the size of an input document the pipeline accepts.
// Oversized inputs are rejected before parsing.
const MaxInputBytes = 32 << 20

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	treefile.FormatSVG:  true,
	treefile.FormatText: true,
	treefile.FormatDOT:  true,
	treefile.FormatJSON: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input options. Exactly one of InputPath or Input must be set:
	// InputPath names a tree JSON file, Input carries the document inline.
	InputPath string `json:"input_path,omitempty"`
	Input     []byte `json:"input,omitempty"`

	// Refresh bypasses the cache for this run and overwrites stored
	// entries with the fresh results.
	Refresh bool `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the loaded input tree.
	Tree *tree.Tree

	// TreeHash is the content hash of the canonical tree serialization.
	TreeHash string

	// Layout contains the computed positions.
	Layout treefile.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	Width      int
	Depth      int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, text, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading the input tree.
func (o *Options) ValidateForLoad() error {
	if o.InputPath == "" && len(o.Input) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input_path or input is required")
	}
	if o.InputPath != "" && len(o.Input) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "input_path and input are mutually exclusive")
	}
	if o.InputPath != "" {
		if err := errors.ValidatePath(o.InputPath); err != nil {
			return err
		}
	}
	if len(o.Input) > MaxInputBytes {
		return errors.New(errors.ErrCodeInvalidInput, "input exceeds %d bytes", MaxInputBytes)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// source names the input for logging and hooks.
func (o *Options) source() string {
	if o.InputPath != "" {
		return o.InputPath
	}
	return "inline"
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
	}
}
