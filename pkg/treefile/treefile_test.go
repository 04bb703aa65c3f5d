package treefile

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/treelinehq/treeline/pkg/layout"
	"github.com/treelinehq/treeline/pkg/tree"
)

func mustTree(t *testing.T, nodes []tree.Node) *tree.Tree {
	t.Helper()
	tr := tree.New()
	for _, n := range nodes {
		if err := tr.AddNode(n); err != nil {
			t.Fatalf("AddNode(%s): %v", n.ID, err)
		}
	}
	return tr
}

func TestTreeRoundTrip(t *testing.T) {
	orig := mustTree(t, []tree.Node{
		{ID: "root", Meta: tree.Metadata{"label": "Project"}},
		{ID: "a", Parent: "root", Meta: tree.Metadata{"weight": 3.0}},
		{ID: "b", Parent: "root"},
		{ID: "a1", Parent: "a"},
	})

	data, err := MarshalTree(orig)
	if err != nil {
		t.Fatalf("MarshalTree: %v", err)
	}

	got, err := ReadTree(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}

	if got.NodeCount() != orig.NodeCount() {
		t.Fatalf("node count = %d, want %d", got.NodeCount(), orig.NodeCount())
	}
	for _, id := range orig.IDs() {
		if !reflect.DeepEqual(got.Children(id), orig.Children(id)) {
			t.Errorf("children(%s) = %v, want %v", id, got.Children(id), orig.Children(id))
		}
	}
	n, ok := got.Node("root")
	if !ok || n.Label() != "Project" {
		t.Errorf("root label = %q, want Project", n.Label())
	}
	a, _ := got.Node("a")
	if a.Meta["weight"] != 3.0 {
		t.Errorf("meta weight = %v, want 3", a.Meta["weight"])
	}
}

func TestToTreeOutOfOrder(t *testing.T) {
	// Children listed before their parents must still assemble, keeping
	// the file's relative child order.
	tf := TreeFile{Nodes: []Node{
		{ID: "a1", Parent: "a"},
		{ID: "b", Parent: "root"},
		{ID: "a", Parent: "root"},
		{ID: "root"},
	}}

	got, err := ToTree(tf)
	if err != nil {
		t.Fatalf("ToTree: %v", err)
	}
	if want := []string{"b", "a"}; !reflect.DeepEqual(got.Children("root"), want) {
		t.Errorf("children(root) = %v, want %v", got.Children("root"), want)
	}
	if want := []string{"a1"}; !reflect.DeepEqual(got.Children("a"), want) {
		t.Errorf("children(a) = %v, want %v", got.Children("a"), want)
	}
}

func TestToTreeErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    TreeFile
		wantErr error
	}{
		{
			name:    "EmptyID",
			file:    TreeFile{Nodes: []Node{{ID: ""}}},
			wantErr: tree.ErrInvalidNodeID,
		},
		{
			name: "DuplicateID",
			file: TreeFile{Nodes: []Node{
				{ID: "root"}, {ID: "a", Parent: "root"}, {ID: "a", Parent: "root"},
			}},
			wantErr: tree.ErrDuplicateNodeID,
		},
		{
			name: "UnknownParent",
			file: TreeFile{Nodes: []Node{
				{ID: "root"}, {ID: "a", Parent: "ghost"},
			}},
			wantErr: tree.ErrUnknownParentNode,
		},
		{
			name: "ParentCycle",
			file: TreeFile{Nodes: []Node{
				{ID: "root"},
				{ID: "x", Parent: "y"},
				{ID: "y", Parent: "x"},
			}},
			wantErr: tree.ErrCycle,
		},
		{
			name:    "NoRoot",
			file:    TreeFile{},
			wantErr: tree.ErrNoRoot,
		},
		{
			name: "MultipleRoots",
			file: TreeFile{Nodes: []Node{
				{ID: "r1"}, {ID: "r2"},
			}},
			wantErr: tree.ErrMultipleRoots,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ToTree(tt.file); !errors.Is(err, tt.wantErr) {
				t.Errorf("ToTree error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromTreeLiftsLabel(t *testing.T) {
	tr := mustTree(t, []tree.Node{
		{ID: "root", Meta: tree.Metadata{"label": "Root", "color": "red"}},
		{ID: "a", Parent: "root"},
	})

	tf, err := FromTree(tr)
	if err != nil {
		t.Fatalf("FromTree: %v", err)
	}
	if tf.Nodes[0].Label != "Root" {
		t.Errorf("label = %q, want Root", tf.Nodes[0].Label)
	}
	if _, ok := tf.Nodes[0].Meta["label"]; ok {
		t.Error("label left in meta after lifting")
	}
	if tf.Nodes[0].Meta["color"] != "red" {
		t.Error("public meta key dropped")
	}
	if tf.Nodes[1].Meta != nil {
		t.Errorf("empty meta serialized as %v, want nil", tf.Nodes[1].Meta)
	}
}

func TestTreeFileIO(t *testing.T) {
	tr := mustTree(t, []tree.Node{
		{ID: "root"}, {ID: "a", Parent: "root"},
	})
	path := filepath.Join(t.TempDir(), "tree.json")

	if err := WriteTreeFile(tr, path); err != nil {
		t.Fatalf("WriteTreeFile: %v", err)
	}
	got, err := ReadTreeFile(path)
	if err != nil {
		t.Fatalf("ReadTreeFile: %v", err)
	}
	if got.NodeCount() != 2 {
		t.Errorf("node count = %d, want 2", got.NodeCount())
	}

	if _, err := ReadTreeFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadTreeFile succeeded on missing file")
	}
}

func TestFromResult(t *testing.T) {
	tr := mustTree(t, []tree.Node{
		{ID: "root", Meta: tree.Metadata{"label": "Root"}},
		{ID: "a", Parent: "root"},
		{ID: "b", Parent: "root"},
	})
	res, err := layout.Compute(tr)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	l := FromResult(res, tr)

	if l.Width != 2 || l.Depth != 2 {
		t.Errorf("extent = %dx%d, want 2x2", l.Width, l.Depth)
	}
	wantNodes := []PlacedNode{
		{ID: "root", Label: "Root", X: 0, Y: 0},
		{ID: "a", Label: "a", Parent: "root", X: 0, Y: 1},
		{ID: "b", Label: "b", Parent: "root", X: 1, Y: 1},
	}
	if !reflect.DeepEqual(l.Nodes, wantNodes) {
		t.Errorf("nodes = %+v, want %+v", l.Nodes, wantNodes)
	}
	wantEdges := []Edge{{From: "root", To: "a"}, {From: "root", To: "b"}}
	if !reflect.DeepEqual(l.Edges, wantEdges) {
		t.Errorf("edges = %+v, want %+v", l.Edges, wantEdges)
	}
	if l.Stats == nil || l.Stats.Nodes != 3 {
		t.Errorf("stats = %+v, want 3 nodes", l.Stats)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := Layout{
		Width: 2,
		Depth: 2,
		Nodes: []PlacedNode{
			{ID: "root", X: 0, Y: 0},
			{ID: "a", Parent: "root", X: 0, Y: 1},
		},
		Edges: []Edge{{From: "root", To: "a"}},
	}

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout: %v", err)
	}
	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if !reflect.DeepEqual(got, l) {
		t.Errorf("round trip = %+v, want %+v", got, l)
	}

	if _, err := UnmarshalLayout([]byte(`{"width": 1}`)); err == nil {
		t.Error("UnmarshalLayout accepted a layout without nodes")
	}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	if _, err := ReadLayoutFile(path); err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
}

func TestUnmarshalLayoutRejectsOutOfGrid(t *testing.T) {
	// Hand-edited layout files can declare extents that don't cover the
	// node positions; renderers index by position and must never see one.
	tests := []struct {
		name string
		json string
	}{
		{
			name: "XBeyondWidth",
			json: `{"width": 2, "depth": 2, "nodes": [{"id": "root", "x": 2, "y": 0}]}`,
		},
		{
			name: "YBeyondDepth",
			json: `{"width": 2, "depth": 2, "nodes": [{"id": "root", "x": 0, "y": 2}]}`,
		},
		{
			name: "NegativeX",
			json: `{"width": 2, "depth": 2, "nodes": [{"id": "root", "x": -1, "y": 0}]}`,
		},
		{
			name: "NegativeY",
			json: `{"width": 2, "depth": 2, "nodes": [{"id": "root", "x": 0, "y": -1}]}`,
		},
		{
			name: "ZeroExtents",
			json: `{"nodes": [{"id": "root", "x": 0, "y": 0}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalLayout([]byte(tt.json)); err == nil {
				t.Error("UnmarshalLayout accepted a node outside the grid")
			}
		})
	}
}
