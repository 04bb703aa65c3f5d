// Package tree provides the rooted ordered tree model consumed by the
// layout engine.
//
// A [Tree] holds nodes identified by unique string IDs. Child order is
// significant and preserved exactly: children are laid out left to right in
// the order they were added. Parents must be added before their children,
// which keeps the child order explicit and makes cycles impossible to build
// through the API; trees decoded from external data should still be checked
// with [Tree.Validate] before layout.
//
// # Usage
//
//	t := tree.New()
//	t.AddNode(tree.Node{ID: "root"})
//	t.AddNode(tree.Node{ID: "a", Parent: "root"})
//	t.AddNode(tree.Node{ID: "b", Parent: "root"})
//
//	root, _ := t.Root()          // "root"
//	t.Children("root")           // ["a", "b"]
//
// Tree implements the layout engine's Source interface, so a Tree can be
// passed directly to layout.Compute.
//
// # Concurrency
//
// A Tree is safe for concurrent reads but not concurrent mutation.
package tree
