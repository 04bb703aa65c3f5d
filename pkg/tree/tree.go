package tree

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Tree.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Tree.AddNode] when a node with the
	// same ID already exists. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownParentNode is returned by [Tree.AddNode] when the named
	// parent does not exist in the tree.
	ErrUnknownParentNode = errors.New("unknown parent node")

	// ErrMultipleRoots is returned by [Tree.Validate] when more than one
	// node has no parent. A tree has exactly one root.
	ErrMultipleRoots = errors.New("tree has multiple roots")

	// ErrNoRoot is returned by [Tree.Root] and [Tree.Validate] when the
	// tree is empty or every node has a parent (a cycle spanning all nodes).
	ErrNoRoot = errors.New("tree has no root")

	// ErrCycle is returned by [Tree.Validate] when a node is reachable as
	// its own ancestor. This indicates the structure is not a tree.
	ErrCycle = errors.New("tree contains a cycle")
)

// Metadata stores arbitrary key-value pairs attached to nodes.
// It is commonly used to carry display labels or caller-side references.
// Metadata maps are never nil - they are initialized to empty maps on AddNode.
type Metadata map[string]any

// Node represents a single tree node. Child order is significant: children
// appear left to right in insertion order, and the layout engine preserves
// that order exactly.
//
// The zero value is not usable - ID must be set before adding to a Tree.
type Node struct {
	ID     string   // Unique identifier (also the default display label)
	Parent string   // Parent node ID; empty for the root
	Meta   Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Label returns the display label: the "label" metadata entry if present,
// otherwise the node ID.
func (n Node) Label() string {
	if l, ok := n.Meta["label"].(string); ok && l != "" {
		return l
	}
	return n.ID
}

// Tree is a rooted n-ary tree with ordered children.
//
// The zero value is not usable - use New to create a valid instance.
// Tree is not safe for concurrent mutation without external synchronization.
type Tree struct {
	nodes    map[string]*Node
	children map[string][]string // parent ID -> ordered child IDs
	order    []string            // insertion order, for deterministic export
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{
		nodes:    make(map[string]*Node),
		children: make(map[string][]string),
	}
}

// AddNode adds a node to the tree, appending it to its parent's ordered
// child list. A node with an empty Parent is a root candidate; Validate
// checks that exactly one exists.
//
// Returns ErrInvalidNodeID for an empty ID, ErrDuplicateNodeID if the ID is
// taken, or ErrUnknownParentNode if Parent names a node not yet added -
// parents must be added before their children so that child order is
// explicit.
func (t *Tree) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := t.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Parent != "" {
		if _, ok := t.nodes[n.Parent]; !ok {
			return ErrUnknownParentNode
		}
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	t.nodes[node.ID] = node
	t.order = append(t.order, node.ID)
	if node.Parent != "" {
		t.children[node.Parent] = append(t.children[node.Parent], node.ID)
	}
	return nil
}

// Node returns the node with the given ID and true, or nil and false.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (t *Tree) Nodes() []*Node {
	nodes := make([]*Node, 0, len(t.order))
	for _, id := range t.order {
		nodes = append(nodes, t.nodes[id])
	}
	return nodes
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int { return len(t.nodes) }

// Children returns the ordered child IDs of the node.
// The returned slice should not be modified - use it as a read-only view.
func (t *Tree) Children(id string) []string { return t.children[id] }

// Parent returns the parent ID of the node, or "" for the root or an
// unknown ID.
func (t *Tree) Parent(id string) string {
	if n, ok := t.nodes[id]; ok {
		return n.Parent
	}
	return ""
}

// IsLeaf reports whether the node has no children.
// Unknown IDs are reported as leaves.
func (t *Tree) IsLeaf(id string) bool { return len(t.children[id]) == 0 }

// Root returns the ID of the unique parentless node.
// Returns ErrNoRoot for an empty tree, or ErrMultipleRoots when more than
// one parentless node exists.
func (t *Tree) Root() (string, error) {
	root := ""
	for _, id := range t.order {
		if t.nodes[id].Parent != "" {
			continue
		}
		if root != "" {
			return "", ErrMultipleRoots
		}
		root = id
	}
	if root == "" {
		return "", ErrNoRoot
	}
	return root, nil
}

// Depth returns the number of levels in the tree (root counts as one).
// Returns 0 for an empty tree.
func (t *Tree) Depth() int {
	root, err := t.Root()
	if err != nil {
		return 0
	}
	depth := 0
	type item struct {
		id    string
		level int
	}
	stack := []item{{root, 1}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.level > depth {
			depth = it.level
		}
		for _, c := range t.children[it.id] {
			stack = append(stack, item{c, it.level + 1})
		}
	}
	return depth
}

// Walk visits every node reachable from the root in pre-order (parents
// before children, children left to right) using an explicit stack, so
// arbitrarily deep trees are safe. The walk stops early if fn returns false.
func (t *Tree) Walk(fn func(n *Node) bool) error {
	root, err := t.Root()
	if err != nil {
		return err
	}
	stack := []string{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(t.nodes[id]) {
			return nil
		}
		kids := t.children[id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return nil
}

// Validate checks tree integrity and returns nil if valid.
// It verifies three constraints:
//
//  1. Exactly one root exists (a single parentless node)
//  2. Every node is reachable from the root (no detached cycles)
//  3. No node is its own ancestor
//
// Returns ErrNoRoot, ErrMultipleRoots, or ErrCycle accordingly. AddNode's
// add-parents-first discipline makes cycles impossible to build through the
// public API, but trees deserialized from external data are validated here
// before layout.
func (t *Tree) Validate() error {
	root, err := t.Root()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(t.nodes))
	stack := []string{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			return ErrCycle
		}
		seen[id] = true
		for _, c := range t.children[id] {
			stack = append(stack, c)
		}
	}

	if len(seen) != len(t.nodes) {
		// Unreachable nodes all have parents, so they sit on a cycle
		// detached from the root.
		return ErrCycle
	}
	return nil
}

// Leaves returns the IDs of all leaf nodes in insertion order.
func (t *Tree) Leaves() []string {
	var leaves []string
	for _, id := range t.order {
		if len(t.children[id]) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// IDs returns all node IDs in insertion order.
func (t *Tree) IDs() []string { return slices.Clone(t.order) }
