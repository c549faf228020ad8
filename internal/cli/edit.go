package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modorder/pkg/errors"
	"github.com/matzehuels/modorder/pkg/mods"
	"github.com/matzehuels/modorder/pkg/pipeline"
	"github.com/matzehuels/modorder/pkg/profile"
	"github.com/matzehuels/modorder/pkg/resolve"
)

// editCommand creates the interactive load order editor.
func (c *CLI) editCommand() *cobra.Command {
	var flags modFlags

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Reorder and disable mods interactively",
		Long: `Edit opens the resolved load order in an interactive editor.

Keys:
  up/k, down/j       move the cursor
  K/shift+up         move the selected mod up
  J/shift+down       move the selected mod down
  space              enable or disable the selected mod
  s                  save to the profile and quit
  q, esc             quit without saving`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := c.options(flags)

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts.Logger = loggerFromContext(ctx)
			res, err := runner.Resolve(ctx, opts)
			if err != nil {
				return err
			}
			if len(res.Order) == 0 {
				printInfo(cmd.OutOrStdout(), "No mods installed in %s", opts.ModsDir)
				return nil
			}

			final, err := tea.NewProgram(newEditorModel(res, opts.Profile),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if err != nil {
				return fmt.Errorf("run editor: %w", err)
			}

			m := final.(editorModel)
			out := cmd.OutOrStdout()
			if !m.saved {
				printInfo(out, "Discarded changes")
				return nil
			}
			if runner.Profiles == nil {
				return errors.New(errors.ErrCodeUnsupported, "no profile store configured")
			}
			if err := runner.Profiles.Save(ctx, opts.Profile, m.profile()); err != nil {
				return err
			}
			printSuccess(out, "Saved profile %s", StyleHighlight.Render(opts.Profile))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// editorModel is the bubbletea model of the load order editor.
type editorModel struct {
	name     string
	set      mods.Set
	resolver *resolve.Resolver
	warnings []resolve.Warning
	newMods  []mods.ID

	order    []mods.ID
	disabled map[mods.ID]bool
	broken   []resolve.Edge

	cursor int
	dirty  bool
	saved  bool
}

func newEditorModel(res *pipeline.Result, name string) editorModel {
	m := editorModel{
		name:     name,
		set:      res.Mods,
		resolver: resolve.New(res.Mods),
		warnings: res.Warnings,
		newMods:  res.NewMods,
		order:    slices.Clone(res.Order),
		disabled: toSet(res.Disabled),
	}
	// New mods are not in the saved profile yet.
	m.dirty = len(res.NewMods) > 0 || len(res.Removed) > 0
	m.check()
	return m
}

func (m editorModel) Init() tea.Cmd { return nil }

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "s":
		m.saved = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.order)-1 {
			m.cursor++
		}
	case "K", "shift+up":
		m.move(-1)
	case "J", "shift+down":
		m.move(1)
	case " ", "space":
		id := m.order[m.cursor]
		if m.disabled[id] {
			delete(m.disabled, id)
		} else {
			m.disabled[id] = true
		}
		m.dirty = true
		m.check()
	}
	return m, nil
}

// move swaps the selected mod with its neighbour and keeps it selected.
func (m *editorModel) move(delta int) {
	to := m.cursor + delta
	if to < 0 || to >= len(m.order) {
		return
	}
	order := slices.Clone(m.order)
	order[m.cursor], order[to] = order[to], order[m.cursor]
	m.order = order
	m.cursor = to
	m.dirty = true
	m.check()
}

// check recomputes the constraints the current order breaks.
func (m *editorModel) check() {
	disabled := m.disabledList()
	m.broken = violations(m.resolver.Graph(disabled), m.order, disabled)
}

func (m editorModel) disabledList() []mods.ID {
	out := make([]mods.ID, 0, len(m.disabled))
	for id := range m.disabled {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// profile returns the edited order as a profile.
func (m editorModel) profile() *profile.Profile {
	return &profile.Profile{
		Order:    slices.Clone(m.order),
		Disabled: m.disabledList(),
	}
}

func (m editorModel) View() string {
	var b strings.Builder

	title := "Load order · " + m.name
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title) + "\n")

	rows := orderRows(m.order, m.set, m.newMods, m.disabledList(), m.warnings)
	b.WriteString(orderTable(rows, m.cursor) + "\n")

	for _, e := range m.broken {
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(formatViolation(e)) + "\n")
	}
	for _, w := range m.warnings {
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + StyleDim.Render(w.String()) + "\n")
	}

	b.WriteString("\n" + StyleDim.Render("↑/↓ select · K/J move · space toggle · s save · q quit") + "\n")
	return b.String()
}
