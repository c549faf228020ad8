package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/modorder/pkg/server"
)

type serveFlags struct {
	addr    string
	modsDir string
	noCache bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes the resolver over HTTP.

POST /v1/resolve resolves a mod set sent in the request body. The profile
endpoints work against the mods directory and the configured profile store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			addr, opts := c.serverOptions(flags)

			runner, err := c.newRunner(ctx, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			c.Logger.Debug("serving profiles", "mods", opts.ModsDir)
			err = server.New(runner, opts).ListenAndServe(ctx, addr)
			prog.done("Server stopped")
			return err
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVarP(&flags.modsDir, "mods", "m", "", "mods directory (default from config)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable the resolution cache")

	return cmd
}

// serverOptions returns the listen address and server options, filling unset
// flags from the config.
func (c *CLI) serverOptions(f serveFlags) (string, server.Options) {
	cfg := c.cfg()
	addr, modsDir := f.addr, f.modsDir
	if addr == "" {
		addr = cfg.Server.Addr
	}
	if modsDir == "" {
		modsDir = cfg.ModsDir
	}
	return addr, server.Options{ModsDir: modsDir, Logger: c.Logger}
}
