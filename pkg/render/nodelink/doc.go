// Package nodelink renders load-order graphs as node-link diagrams.
//
// # Overview
//
// Each installed mod becomes a box labelled with its load position, and each
// ordering constraint becomes an arrow from the mod that loads first to the
// mod that loads after it. Problems found by the resolver are highlighted:
//
//   - Cycle members are filled amber
//   - Mods with conflicting constraints are filled red
//   - Disabled mods are greyed out
//   - Targets that are not installed appear as dashed boxes, joined by dashed edges
//   - Optional constraints are drawn dotted
//
// # Usage
//
//	g := resolve.New(set).Graph(disabled)
//	dot := nodelink.ToDOT(g, result.Order, result.Warnings, nodelink.Options{Mods: set})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. The DOT source can also be saved and processed with external
// Graphviz tools.
package nodelink
