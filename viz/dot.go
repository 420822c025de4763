package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/TrevorS/mixclust"
)

// DendrogramDOT converts dg to a Graphviz DOT tree: one box per observation,
// one point node per merge labeled with its height, edges from each merge to
// the two ids it joined.
func DendrogramDOT(dg *mixclust.Dendrogram, labels []string) (string, error) {
	names, err := leafLabels(dg.N, labels)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph dendrogram {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=10];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	fmt.Fprintf(&buf, "  label=%q;\n", string(dg.Linkage)+" linkage")
	buf.WriteString("\n")

	for i, name := range names {
		fmt.Fprintf(&buf, "  n%d [shape=box, style=rounded, label=%q];\n", i, name)
	}
	for i, m := range dg.Merges {
		id := dg.N + i
		fmt.Fprintf(&buf, "  n%d [shape=ellipse, label=\"%.3f\"];\n", id, m.Height)
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", id, m.Left)
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", id, m.Right)
	}

	// Keep leaves on one rank so the tree reads like a dendrogram.
	buf.WriteString("  { rank=same;")
	for i := range names {
		fmt.Fprintf(&buf, " n%d;", i)
	}
	buf.WriteString(" }\n}\n")
	return buf.String(), nil
}

// RenderDOT lays out dot with Graphviz and returns the image bytes. Only
// FormatSVG and FormatPNG are supported.
func RenderDOT(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("viz: graphviz cannot render %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("viz: init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("viz: parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("viz: render: %w", err)
	}
	return buf.Bytes(), nil
}
