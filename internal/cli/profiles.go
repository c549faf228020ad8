package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modorder/pkg/profile"
)

// profilesCommand creates the profiles command.
func (c *CLI) profilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List saved load order profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newProfileStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			names, err := store.List(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				printInfo(out, "No saved profiles")
				printNextStep(out, "Create one", "modorder resolve --write")
				return nil
			}

			current := c.cfg().Profile
			for _, name := range names {
				p, err := store.Load(ctx, name)
				if err != nil {
					printError(out, "%s: %v", name, err)
					continue
				}
				line := name
				if name == current {
					line = StyleHighlight.Render(name + " (active)")
				}
				fmt.Fprintf(out, "  %s %s\n", line, StyleDim.Render(summary(p)))
			}
			return nil
		},
	}
	return cmd
}

func summary(p *profile.Profile) string {
	s := fmt.Sprintf("%d mods", len(p.Order))
	if n := len(p.Disabled); n > 0 {
		s += fmt.Sprintf(", %d disabled", n)
	}
	return s
}
