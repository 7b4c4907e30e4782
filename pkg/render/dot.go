// Package render converts transform results to Graphviz output.
//
// The engine's contract ends at [flow.Result]; this package is a
// convenience consumer that turns a result into DOT, SVG, or PNG for quick
// inspection without the full web front end.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/transferflow/transferflow/pkg/flow"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes aggregate values in node labels.
	Detailed bool
}

// ToDOT converts a transform result to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Links are drawn left to right with their flow value as edge label, which
// reads naturally for both net graphs and bidirectional Out/In splits.
func ToDOT(res *flow.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph flows {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.7;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range res.Nodes {
		label := fmtLabel(n, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, label), ", "))
	}

	buf.WriteString("\n")
	for _, l := range res.Links {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", l.Source, l.Target, fmtValue(l.Value))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n flow.ResultNode, detailed bool) string {
	if !detailed {
		return n.Name
	}
	return fmt.Sprintf("%s\n%s", n.Name, fmtValue(n.Value))
}

func fmtAttrs(n flow.ResultNode, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	// Grey out the synthetic In-halves of bidirectional results so flow
	// direction is readable at a glance.
	if strings.HasSuffix(n.ID, " (In)") {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

func fmtValue(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
