package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/modorder/pkg/mods"
	"github.com/matzehuels/modorder/pkg/resolve"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleNew      = lipgloss.NewStyle().Foreground(colorGreen)
	styleDisabled = lipgloss.NewStyle().Foreground(colorDim).Strikethrough(true)
	styleProblem  = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints an indented detail line.
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints resolution statistics on a single line.
func printStats(w io.Writer, modCount, newCount, edgeCount int, cached bool) {
	parts := []string{fmt.Sprintf("%d mods", modCount)}
	if newCount > 0 {
		parts = append(parts, fmt.Sprintf("%d new", newCount))
	}
	if edgeCount > 0 {
		parts = append(parts, fmt.Sprintf("%d constraints", edgeCount))
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Fprintln(w, line)
}

// =============================================================================
// Load Order Table
// =============================================================================

// orderRow is one line of the load order table.
type orderRow struct {
	id       mods.ID
	meta     *mods.Meta
	isNew    bool
	disabled bool
	problem  bool
}

func (r orderRow) status() string {
	switch {
	case r.disabled:
		return "disabled"
	case r.problem:
		return "attention"
	case r.isNew:
		return "new"
	}
	return ""
}

// orderRows annotates order with per-mod state for display.
func orderRows(order []mods.ID, set mods.Set, newMods, disabled []mods.ID, warnings []resolve.Warning) []orderRow {
	isNew := toSet(newMods)
	isDisabled := toSet(disabled)

	rows := make([]orderRow, len(order))
	for i, id := range order {
		row := orderRow{id: id, meta: set[id], isNew: isNew[id], disabled: isDisabled[id]}
		for _, w := range warnings {
			if w.Involves(id) {
				row.problem = true
				break
			}
		}
		rows[i] = row
	}
	return rows
}

// orderTable renders rows as a lipgloss table. cursor highlights one row and
// may be -1.
func orderTable(rows []orderRow, cursor int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "MOD", "VERSION", "STATUS").
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Bold(true).Foreground(colorCyan)
			}
			if row < 0 || row >= len(rows) {
				return base
			}
			r := rows[row]
			switch {
			case row == cursor:
				base = base.Bold(true).Foreground(colorWhite).Background(lipgloss.Color("237"))
			case r.disabled:
				base = base.Inherit(styleDisabled)
			case r.problem:
				base = base.Inherit(styleProblem)
			case r.isNew:
				base = base.Inherit(styleNew)
			}
			if col == 0 {
				base = base.Align(lipgloss.Right)
			}
			return base
		})

	for i, r := range rows {
		name, version := r.id, ""
		if r.meta != nil {
			name = r.meta.DisplayName()
			if name != r.id {
				name += " (" + r.id + ")"
			}
			version = r.meta.Version
		}
		t.Row(strconv.Itoa(i+1), name, version, r.status())
	}
	return t.String()
}

// formatViolation describes an edge the order does not satisfy.
func formatViolation(e resolve.Edge) string {
	return fmt.Sprintf("%s must load before %s", e.From, e.To)
}

func formatList(ids []mods.ID) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}

func toSet(ids []mods.ID) map[mods.ID]bool {
	s := make(map[mods.ID]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}
