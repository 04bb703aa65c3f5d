package tree

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddNode(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []Node
		wantErr error
	}{
		{
			name:  "SingleRoot",
			nodes: []Node{{ID: "root"}},
		},
		{
			name: "ParentBeforeChild",
			nodes: []Node{
				{ID: "root"},
				{ID: "a", Parent: "root"},
				{ID: "b", Parent: "a"},
			},
		},
		{
			name:    "EmptyID",
			nodes:   []Node{{ID: ""}},
			wantErr: ErrInvalidNodeID,
		},
		{
			name:    "DuplicateID",
			nodes:   []Node{{ID: "root"}, {ID: "root"}},
			wantErr: ErrDuplicateNodeID,
		},
		{
			name:    "UnknownParent",
			nodes:   []Node{{ID: "root"}, {ID: "a", Parent: "ghost"}},
			wantErr: ErrUnknownParentNode,
		},
		{
			name:    "ChildBeforeParent",
			nodes:   []Node{{ID: "a", Parent: "root"}},
			wantErr: ErrUnknownParentNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			var err error
			for _, n := range tt.nodes {
				if err = tr.AddNode(n); err != nil {
					break
				}
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddNode error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestChildOrder(t *testing.T) {
	tr := New()
	for _, n := range []Node{
		{ID: "root"},
		{ID: "c", Parent: "root"},
		{ID: "a", Parent: "root"},
		{ID: "b", Parent: "root"},
	} {
		if err := tr.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}

	// Children keep insertion order, not lexical order.
	want := []string{"c", "a", "b"}
	if got := tr.Children("root"); !reflect.DeepEqual(got, want) {
		t.Errorf("Children(root) = %v, want %v", got, want)
	}
	if !tr.IsLeaf("a") || tr.IsLeaf("root") {
		t.Error("leaf classification wrong")
	}
	if got := tr.Parent("a"); got != "root" {
		t.Errorf("Parent(a) = %q, want root", got)
	}
	if got := tr.Parent("root"); got != "" {
		t.Errorf("Parent(root) = %q, want empty", got)
	}
}

func TestRoot(t *testing.T) {
	tests := []struct {
		name     string
		nodes    []Node
		wantRoot string
		wantErr  error
	}{
		{
			name:    "Empty",
			wantErr: ErrNoRoot,
		},
		{
			name:     "Single",
			nodes:    []Node{{ID: "r"}, {ID: "a", Parent: "r"}},
			wantRoot: "r",
		},
		{
			name:    "TwoRoots",
			nodes:   []Node{{ID: "r1"}, {ID: "r2"}},
			wantErr: ErrMultipleRoots,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			for _, n := range tt.nodes {
				if err := tr.AddNode(n); err != nil {
					t.Fatalf("AddNode(%s): %v", n.ID, err)
				}
			}
			root, err := tr.Root()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Root error = %v, want %v", err, tt.wantErr)
			}
			if root != tt.wantRoot {
				t.Errorf("Root = %q, want %q", root, tt.wantRoot)
			}
		})
	}
}

func TestWalk(t *testing.T) {
	tr := New()
	for _, n := range []Node{
		{ID: "root"},
		{ID: "a", Parent: "root"},
		{ID: "b", Parent: "root"},
		{ID: "a1", Parent: "a"},
		{ID: "a2", Parent: "a"},
	} {
		if err := tr.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}

	var visited []string
	if err := tr.Walk(func(n *Node) bool {
		visited = append(visited, n.ID)
		return true
	}); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []string{"root", "a", "a1", "a2", "b"}
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("pre-order = %v, want %v", visited, want)
	}

	visited = nil
	if err := tr.Walk(func(n *Node) bool {
		visited = append(visited, n.ID)
		return n.ID != "a1"
	}); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want = []string{"root", "a", "a1"}
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("stopped walk = %v, want %v", visited, want)
	}
}

func TestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		tr := New()
		for _, n := range []Node{{ID: "r"}, {ID: "a", Parent: "r"}} {
			if err := tr.AddNode(n); err != nil {
				t.Fatal(err)
			}
		}
		if err := tr.Validate(); err != nil {
			t.Errorf("Validate = %v, want nil", err)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if err := New().Validate(); !errors.Is(err, ErrNoRoot) {
			t.Errorf("Validate = %v, want %v", err, ErrNoRoot)
		}
	})

	t.Run("DetachedCycle", func(t *testing.T) {
		// The public API cannot build a cycle; simulate a deserialized
		// tree where two nodes parent each other off to the side.
		tr := New()
		if err := tr.AddNode(Node{ID: "r"}); err != nil {
			t.Fatal(err)
		}
		tr.nodes["x"] = &Node{ID: "x", Parent: "y", Meta: Metadata{}}
		tr.nodes["y"] = &Node{ID: "y", Parent: "x", Meta: Metadata{}}
		tr.order = append(tr.order, "x", "y")
		tr.children["x"] = []string{"y"}
		tr.children["y"] = []string{"x"}

		if err := tr.Validate(); !errors.Is(err, ErrCycle) {
			t.Errorf("Validate = %v, want %v", err, ErrCycle)
		}
	})
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"NoMeta", Node{ID: "a"}, "a"},
		{"WithLabel", Node{ID: "a", Meta: Metadata{"label": "Alpha"}}, "Alpha"},
		{"EmptyLabel", Node{ID: "a", Meta: Metadata{"label": ""}}, "a"},
		{"NonStringLabel", Node{ID: "a", Meta: Metadata{"label": 7}}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Label(); got != tt.want {
				t.Errorf("Label = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAccessors(t *testing.T) {
	tr := New()
	for _, n := range []Node{
		{ID: "r"},
		{ID: "a", Parent: "r"},
		{ID: "b", Parent: "r"},
		{ID: "a1", Parent: "a"},
	} {
		if err := tr.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}

	if got := tr.NodeCount(); got != 4 {
		t.Errorf("NodeCount = %d, want 4", got)
	}
	if got := tr.Depth(); got != 3 {
		t.Errorf("Depth = %d, want 3", got)
	}
	if got := tr.Leaves(); !reflect.DeepEqual(got, []string{"b", "a1"}) {
		t.Errorf("Leaves = %v", got)
	}
	if got := tr.IDs(); !reflect.DeepEqual(got, []string{"r", "a", "b", "a1"}) {
		t.Errorf("IDs = %v", got)
	}
	if n, ok := tr.Node("a"); !ok || n.ID != "a" {
		t.Errorf("Node(a) = %v, %v", n, ok)
	}
	if _, ok := tr.Node("ghost"); ok {
		t.Error("Node(ghost) found")
	}
	if n, ok := tr.Node("r"); !ok || n.Meta == nil {
		t.Error("Meta not initialized on AddNode")
	}
}
