// Package pkg provides the core libraries for Treeline tree visualization.
//
// # Overview
//
// Treeline computes tidy layouts for rooted trees and renders them as
// diagrams. Every node lands on an integer grid: siblings keep their
// order, parents sit centered over their children, and subtrees never
// overlap. The pkg directory is organized into four main areas:
//
//  1. [tree] - The tree structure and validation
//  2. [layout] - The linear-time tidy layout algorithm
//  3. [render] - Output formats (SVG, text, DOT, JSON)
//  4. [pipeline] - Orchestration (load → layout → render) with caching
//
// # Architecture
//
// The typical data flow through Treeline:
//
//	tree.json document
//	         ↓
//	    [treefile] package (parse + validate)
//	         ↓
//	    [layout] package (compute grid positions)
//	         ↓
//	    [render] package (SVG/text/DOT/JSON output)
//
// # Quick Start
//
// Load a tree and render it to SVG:
//
//	import (
//	    "context"
//	    "github.com/treelinehq/treeline/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Execute(context.Background(), pipeline.Options{
//	    InputPath: "tree.json",
//	    Formats:   []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := res.Artifacts["svg"]
//
// Or drive the stages directly:
//
//	t := tree.New()
//	t.AddNode("root", "")
//	t.AddNode("a", "root")
//	t.AddNode("b", "root")
//	res, err := layout.Compute(t)
//
// # Main Packages
//
// [tree] - Rooted n-ary tree with ordered children. Nodes carry string
// IDs and optional metadata; validation rejects cycles, missing parents,
// and forests.
//
// [layout] - The tidy layout algorithm. Runs in linear time using contour
// threads and lazy offset accumulation, and handles trees deep enough to
// overflow the call stack.
//
// [treefile] - Serialization types for trees and layouts (JSON documents).
//
// [render] - Renderers for the computed layout: scalable SVG, aligned
// text diagrams, Graphviz DOT, and raw JSON. DOT output can be rasterized
// through the embedded Graphviz engine.
//
// [pipeline] - Complete pipeline (load → layout → render) used by CLI and
// API. Layouts and artifacts are cached by content hash.
//
// [cache] - Cache backends: file-based for the CLI, Redis for the HTTP
// service, and a null cache for tests.
//
// [config] - Optional TOML configuration file (~/.config/treeline/).
//
// [errors] - Structured errors with stable codes shared by CLI and API.
//
// [observability] - Hook interfaces for metrics and tracing integration.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//	go test -run Example         # Examples only
//
// [tree]: https://pkg.go.dev/github.com/treelinehq/treeline/pkg/tree
// [layout]: https://pkg.go.dev/github.com/treelinehq/treeline/pkg/layout
// [treefile]: https://pkg.go.dev/github.com/treelinehq/treeline/pkg/treefile
// [render]: https://pkg.go.dev/github.com/treelinehq/treeline/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/treelinehq/treeline/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/treelinehq/treeline/pkg/cache
// [config]: https://pkg.go.dev/github.com/treelinehq/treeline/pkg/config
// [errors]: https://pkg.go.dev/github.com/treelinehq/treeline/pkg/errors
// [observability]: https://pkg.go.dev/github.com/treelinehq/treeline/pkg/observability
package pkg
