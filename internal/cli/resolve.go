package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modorder/pkg/errors"
	"github.com/matzehuels/modorder/pkg/mods"
	"github.com/matzehuels/modorder/pkg/pipeline"
	"github.com/matzehuels/modorder/pkg/resolve"
)

// resolveCommand creates the resolve command.
func (c *CLI) resolveCommand() *cobra.Command {
	var (
		flags  modFlags
		write  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Merge installed mods into the saved load order",
		Long: `Resolve reads every installed mod, keeps the profile's saved order as it is and
places newly installed mods where their declared constraints allow.

Use --write to save the resulting order back to the profile.`,
		Example: `  modorder resolve
  modorder resolve --mods ~/game/mods --profile hardcore --write
  modorder resolve --json | jq .order`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(flags)
			opts.Write = write

			res, err := c.runResolve(cmd, flags, opts, !asJSON)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeResultJSON(out, res)
			}
			printResult(out, res)
			if res.Written {
				printSuccess(out, "Saved profile %s", StyleHighlight.Render(opts.Profile))
			} else if len(res.NewMods) > 0 || len(res.Removed) > 0 {
				printNextStep(out, "Save this order", "modorder resolve --write")
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&write, "write", "w", false, "save the resolved order to the profile")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	var flags modFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report problems with the load order",
		Long: `Check resolves the load order like resolve and exits with an error when the
resolver reports warnings or the saved order breaks a declared constraint.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.runResolve(cmd, flags, c.options(flags), true)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			problems := len(res.Warnings) + printProblems(out, res)
			if problems > 0 {
				return fmt.Errorf("load order has %d problem(s)", problems)
			}
			printSuccess(out, "Load order is consistent (%d mods)", len(res.Order))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// runResolve runs the pipeline with a spinner while it works.
func (c *CLI) runResolve(cmd *cobra.Command, flags modFlags, opts pipeline.Options, spin bool) (*pipeline.Result, error) {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	var spinner *Spinner
	if spin {
		spinner = newSpinner(ctx, "Resolving load order...")
		spinner.Start()
	}
	res, err := runner.Resolve(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// printResult prints the order table, warnings and statistics.
func printResult(w io.Writer, res *pipeline.Result) {
	rows := orderRows(res.Order, res.Mods, res.NewMods, res.Disabled, res.Warnings)
	fmt.Fprintln(w, StyleTitle.Render("Load order"))
	fmt.Fprintln(w, orderTable(rows, -1))

	if len(res.Removed) > 0 {
		printInfo(w, "Removed from order: %s", formatList(res.Removed))
	}
	printProblems(w, res)

	fmt.Fprintln(w)
	printStats(w, len(res.Order), len(res.NewMods), res.Graph().EdgeCount(), res.Cached)
}

// printProblems prints resolver warnings and order violations. It returns the
// number of violations.
func printProblems(w io.Writer, res *pipeline.Result) int {
	for _, warn := range res.Warnings {
		printWarning(w, "%s", warn.String())
	}

	violations := enabledViolations(res)
	for _, e := range violations {
		printWarning(w, "%s", formatViolation(e))
	}
	return len(violations)
}

// enabledViolations returns the constraints the enabled part of the order
// does not satisfy.
func enabledViolations(res *pipeline.Result) []resolve.Edge {
	return violations(res.Graph(), res.Order, res.Disabled)
}

// violations drops edges that involve a disabled mod, since disabled mods do
// not load.
func violations(g *resolve.Graph, order, disabled []mods.ID) []resolve.Edge {
	off := toSet(disabled)
	var out []resolve.Edge
	for _, e := range g.Violations(order) {
		if !off[e.From] && !off[e.To] {
			out = append(out, e)
		}
	}
	return out
}

func writeResultJSON(w io.Writer, res *pipeline.Result) error {
	if res.Warnings == nil {
		res.Warnings = []resolve.Warning{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode result")
	}
	return nil
}
