package treefile_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/treelinehq/treeline/pkg/tree"
	"github.com/treelinehq/treeline/pkg/treefile"
)

func ExampleWriteTree() {
	// Create a simple tree
	t := tree.New()
	_ = t.AddNode(tree.Node{ID: "app"})
	_ = t.AddNode(tree.Node{ID: "lib", Parent: "app", Meta: tree.Metadata{"label": "Library", "version": "1.0.0"}})

	// Write to a buffer (or any io.Writer)
	var buf bytes.Buffer
	if err := treefile.WriteTree(t, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("JSON output:")
	fmt.Println(buf.String())
	// Output:
	// JSON output:
	// {
	//   "nodes": [
	//     {
	//       "id": "app"
	//     },
	//     {
	//       "id": "lib",
	//       "label": "Library",
	//       "parent": "app",
	//       "meta": {
	//         "version": "1.0.0"
	//       }
	//     }
	//   ]
	// }
}

func ExampleReadTree() {
	// JSON input representing a tree; nodes may appear in any order
	jsonData := `{
		"nodes": [
			{"id": "lib", "parent": "app"},
			{"id": "app"}
		]
	}`

	t, err := treefile.ReadTree(strings.NewReader(jsonData))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	root, _ := t.Root()
	fmt.Printf("Root: %s\n", root)
	fmt.Printf("Children of %s: %v\n", root, t.Children(root))
	// Output:
	// Root: app
	// Children of app: [lib]
}
