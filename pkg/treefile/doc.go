// Package treefile provides serialization types for trees and computed
// layouts.
//
// This package defines the canonical wire format for Treeline's data, used
// for JSON files, API requests and responses, caching, and cross-tool
// interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [TreeFile], [Layout]: Serialization types (this package)
//   - pkg/tree.Tree: Internal tree representation
//   - pkg/layout.Result: Internal layout (positions, stats)
//
// Use [FromTree]/[ToTree] and [FromResult] to convert between them.
//
// # Tree Serialization
//
// Trees use a flat node-list JSON format; the root is the node without a
// parent:
//
//	{
//	  "nodes": [
//	    {"id": "root", "label": "Project"},
//	    {"id": "a", "parent": "root"},
//	    {"id": "b", "parent": "root"}
//	  ]
//	}
//
// Nodes may appear in any order - [ToTree] defers insertion until each
// node's parent is known. Files with missing parents or parent cycles are
// rejected with the corresponding pkg/tree sentinel error.
//
// Common operations:
//
//	t, _ := treefile.ReadTreeFile("tree.json")   // File → Tree
//	treefile.WriteTreeFile(t, "out.json")        // Tree → File
//	data, _ := treefile.MarshalTree(t)           // Tree → []byte
//	parsed, _ := treefile.UnmarshalTreeFile(data)
//
// # Layout Serialization
//
// Computed layouts flatten to a node list with grid coordinates plus the
// parent-child edges, ready for rendering or API transport:
//
//	res, _ := layout.Compute(t)
//	l := treefile.FromResult(res, t)
//	data, _ := treefile.MarshalLayout(l)
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package treefile
