package treefile

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/treelinehq/treeline/pkg/tree"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Output formats for rendered layouts.
const (
	FormatSVG  = "svg"
	FormatText = "text"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// metaLabel is the metadata key carrying display labels through the
// in-memory tree, for round-trip fidelity.
const metaLabel = "label"

// =============================================================================
// TreeFile - Tree Serialization
// =============================================================================

// TreeFile is the canonical serialization format for input trees.
// Used for files, API requests, storage, and caching.
//
// The format is human-readable and designed for round-trip fidelity:
// import → layout → export → re-import produces identical results. Nodes
// may appear in any order; the reader resolves parents after parsing.
type TreeFile struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
}

// Node is the wire representation of a single tree node.
type Node struct {
	ID     string         `json:"id" bson:"id"`
	Label  string         `json:"label,omitempty" bson:"label,omitempty"` // Display label (defaults to ID)
	Parent string         `json:"parent,omitempty" bson:"parent,omitempty"`
	Meta   map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// =============================================================================
// Tree ↔ TreeFile Conversion
// =============================================================================

// FromTree converts a tree to its serialization format. Nodes appear in
// pre-order so files read naturally top-down; the display label is lifted
// out of metadata into its own field.
func FromTree(t *tree.Tree) (TreeFile, error) {
	out := TreeFile{Nodes: make([]Node, 0, t.NodeCount())}
	err := t.Walk(func(n *tree.Node) bool {
		out.Nodes = append(out.Nodes, nodeFromTree(n))
		return true
	})
	if err != nil {
		return TreeFile{}, err
	}
	return out, nil
}

// ToTree converts a TreeFile to a tree.
//
// Wire nodes may reference parents that appear later in the file, so
// insertion is deferred: nodes are added parents-first regardless of file
// order. Nodes whose parent chain never reaches the root are rejected -
// either the parent is missing (tree.ErrUnknownParentNode) or the chain
// loops (tree.ErrCycle).
func ToTree(tf TreeFile) (*tree.Tree, error) {
	t := tree.New()

	byParent := make(map[string][]Node)
	ids := make(map[string]bool, len(tf.Nodes))
	var pending []Node
	for _, nj := range tf.Nodes {
		if nj.ID == "" {
			return nil, tree.ErrInvalidNodeID
		}
		if ids[nj.ID] {
			return nil, fmt.Errorf("node %s: %w", nj.ID, tree.ErrDuplicateNodeID)
		}
		ids[nj.ID] = true
		if nj.Parent == "" {
			pending = append(pending, nj)
			continue
		}
		byParent[nj.Parent] = append(byParent[nj.Parent], nj)
	}

	inserted := 0
	for len(pending) > 0 {
		nj := pending[0]
		pending = pending[1:]
		if err := t.AddNode(nodeToTree(nj)); err != nil {
			return nil, fmt.Errorf("add node %s: %w", nj.ID, err)
		}
		inserted++
		pending = append(pending, byParent[nj.ID]...)
		delete(byParent, nj.ID)
	}

	if inserted != len(tf.Nodes) {
		return nil, describeStranded(byParent, ids)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// describeStranded explains why nodes were left over after the deferred
// insertion: a parent that is not in the file at all, or a parent chain
// that loops back on itself.
func describeStranded(byParent map[string][]Node, ids map[string]bool) error {
	parents := make([]string, 0, len(byParent))
	for p := range byParent {
		parents = append(parents, p)
	}
	sort.Strings(parents)
	for _, p := range parents {
		if !ids[p] {
			return fmt.Errorf("node %s: parent %s: %w",
				byParent[p][0].ID, p, tree.ErrUnknownParentNode)
		}
	}
	return fmt.Errorf("nodes %v unreachable from the root: %w",
		parents, tree.ErrCycle)
}

func nodeFromTree(n *tree.Node) Node {
	node := Node{
		ID:     n.ID,
		Parent: n.Parent,
		Meta:   cleanMeta(n.Meta),
	}
	if label, ok := n.Meta[metaLabel].(string); ok {
		node.Label = label
	}
	return node
}

func nodeToTree(nj Node) tree.Node {
	n := tree.Node{
		ID:     nj.ID,
		Parent: nj.Parent,
		Meta:   copyMeta(nj.Meta),
	}
	if n.Meta == nil {
		n.Meta = tree.Metadata{}
	}
	if nj.Label != "" {
		n.Meta[metaLabel] = nj.Label
	}
	return n
}

// copyMeta creates a shallow copy of metadata to avoid mutation.
func copyMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// cleanMeta returns a copy of metadata without the label key, which has
// its own wire field. Returns nil if the result would be empty.
func cleanMeta(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	hasPublicKeys := false
	for k := range m {
		if k != metaLabel {
			hasPublicKeys = true
			break
		}
	}
	if !hasPublicKeys {
		return nil
	}
	result := make(map[string]any, len(m))
	for k, v := range m {
		if k != metaLabel {
			result[k] = v
		}
	}
	return result
}

// UnmarshalTreeFile deserializes JSON bytes to a TreeFile.
func UnmarshalTreeFile(data []byte) (TreeFile, error) {
	var tf TreeFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return TreeFile{}, err
	}
	return tf, nil
}
