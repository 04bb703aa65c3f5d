package render

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/treelinehq/treeline/pkg/treefile"
)

// RenderText draws a layout as plain monospace text, one line per depth
// level. Each grid column is as wide as the longest label plus one space,
// so sibling separation in the layout stays visible in the output.
func RenderText(l treefile.Layout) []byte {
	colWidth := 1
	labels := make(map[string]string, len(l.Nodes))
	for _, n := range l.Nodes {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		labels[n.ID] = label
		if w := utf8.RuneCountInString(label); w >= colWidth {
			colWidth = w + 1
		}
	}

	rows := make([][]rune, l.Depth)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", l.Width*colWidth))
	}

	for _, n := range l.Nodes {
		pos := n.X * colWidth
		for _, r := range labels[n.ID] {
			rows[n.Y][pos] = r
			pos++
		}
	}

	var buf bytes.Buffer
	for _, row := range rows {
		buf.WriteString(strings.TrimRight(string(row), " "))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
