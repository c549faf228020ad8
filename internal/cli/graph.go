package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modorder/pkg/pipeline"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags    modFlags
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the ordering constraints as DOT or SVG",
		Example: `  modorder graph > order.dot
  modorder graph --format svg -o order.svg --detailed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}

			res, err := c.runResolve(cmd, flags, c.options(flags), output != "")
			if err != nil {
				return err
			}

			data, err := pipeline.Render(cmd.Context(), res, pipeline.RenderOptions{
				Format:   format,
				Detailed: detailed,
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Rendered %d mods", len(res.Order))
			printFile(out, output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, "output format (dot, svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include mod names and versions in node labels")

	return cmd
}
