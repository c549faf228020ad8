package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/modorder/pkg/mods"
	"github.com/matzehuels/modorder/pkg/resolve"
)

const (
	fillCycle    = "#fde68a"
	fillConflict = "#fecaca"
	fillDisabled = "#e5e7eb"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Mods supplies display names and versions for labels. Optional.
	Mods mods.Set

	// Disabled mods are drawn greyed out.
	Disabled []mods.ID

	// Detailed includes the display name and version in node labels.
	// When false, only the position and ID are shown.
	Detailed bool
}

// ToDOT converts a constraint graph and the resolved order to Graphviz DOT.
// Nodes appear in load order; ids referenced by constraints but absent from
// the order are added afterwards as missing nodes.
func ToDOT(g *resolve.Graph, order []mods.ID, warnings []resolve.Warning, opts Options) string {
	inOrder := make(map[mods.ID]int, len(order))
	for i, id := range order {
		inOrder[id] = i
	}
	cycle, conflict := flagged(warnings)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i, id := range order {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(i, id, opts))}
		switch {
		case cycle[id]:
			attrs = append(attrs, "fillcolor="+strconv.Quote(fillCycle))
		case conflict[id]:
			attrs = append(attrs, "fillcolor="+strconv.Quote(fillConflict))
		case slices.Contains(opts.Disabled, id):
			attrs = append(attrs, "fillcolor="+strconv.Quote(fillDisabled), "fontcolor=gray40")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	edges := g.Edges()
	for _, id := range missingNodes(edges, inOrder) {
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\", fontcolor=gray40];\n", id, id+"\n(missing)")
	}

	buf.WriteString("\n")
	for _, e := range edges {
		var attrs []string
		_, fromOK := inOrder[e.From]
		_, toOK := inOrder[e.To]
		switch {
		case !fromOK || !toOK:
			attrs = append(attrs, "style=dashed", "color=gray50")
		case isOptional(g, e):
			attrs = append(attrs, "style=dotted")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(pos int, id mods.ID, opts Options) string {
	label := fmt.Sprintf("%d. %s", pos+1, id)
	if !opts.Detailed {
		return label
	}
	m, ok := opts.Mods[id]
	if !ok {
		return label
	}
	if m.Name != "" && m.Name != id {
		label += "\n" + m.Name
	}
	if m.Version != "" {
		label += "\nv" + strings.TrimPrefix(m.Version, "v")
	}
	return label
}

// isOptional reports whether the declaration behind e was optional. Either
// endpoint may have declared it.
func isOptional(g *resolve.Graph, e resolve.Edge) bool {
	if opt, ok := g.Optional[e.To][e.From]; ok {
		return opt
	}
	return g.Optional[e.From][e.To]
}

func flagged(warnings []resolve.Warning) (cycle, conflict map[mods.ID]bool) {
	cycle = make(map[mods.ID]bool)
	conflict = make(map[mods.ID]bool)
	for _, w := range warnings {
		switch w.Kind {
		case resolve.CircularDependency:
			for _, id := range w.Cycle {
				cycle[id] = true
			}
		case resolve.ConflictingConstraints:
			conflict[w.ID] = true
		}
	}
	return cycle, conflict
}

func missingNodes(edges []resolve.Edge, inOrder map[mods.ID]int) []mods.ID {
	var out []mods.ID
	for _, e := range edges {
		for _, id := range []mods.ID{e.From, e.To} {
			if _, ok := inOrder[id]; !ok && !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	slices.Sort(out)
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the diagram scales from the
// origin in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
