package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/modorder/internal/config"
	"github.com/matzehuels/modorder/pkg/buildinfo"
	"github.com/matzehuels/modorder/pkg/cache"
	"github.com/matzehuels/modorder/pkg/pipeline"
	"github.com/matzehuels/modorder/pkg/profile"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and cache namespaces.
	appName = config.AppName

	// connectTimeout bounds connecting to Redis or MongoDB.
	connectTimeout = 10 * time.Second
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any command runs.
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "modorder computes mod load orders from declared dependencies",
		Long: `modorder reads the mod.toml manifest of every installed mod, merges newly
installed mods into your saved load order without disturbing it, and reports
cycles, missing dependencies and contradictory constraints.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			if cfg.Source != "" {
				c.Logger.Debug("loaded config", "path", cfg.Source)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/modorder/config.toml)")

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.profilesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) cfg() *config.Config {
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c.Config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache and
// profile store.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	store, err := c.newProfileStore(ctx)
	if err != nil {
		ch.Close()
		return nil, err
	}
	runner := pipeline.NewRunner(ch, keyer, store, c.Logger)
	runner.TTL = c.cfg().Cache.TTL
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	cfg := c.cfg().Cache
	if noCache || cfg.Backend == config.CacheNone {
		return cache.NewNullCache(), nil, nil
	}

	if cfg.Backend == config.CacheRedis {
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: cfg.RedisAddr})
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Debug("using redis cache", "addr", cfg.RedisAddr)
		return rc, cache.NewScopedKeyer(nil, appName+":"), nil
	}

	fc, err := cache.NewFileCache(cfg.Dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", cfg.Dir, "err", err)
		return cache.NewNullCache(), nil, nil
	}
	return fc, nil, nil
}

func (c *CLI) newProfileStore(ctx context.Context) (profile.Store, error) {
	cfg := c.cfg()
	if cfg.Mongo.URI == "" {
		return profile.NewFileStore(cfg.ProfileDir), nil
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	spinner := newSpinner(ctx, "Connecting to MongoDB...")
	spinner.Start()
	store, err := profile.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("using mongo profile store", "database", cfg.Mongo.Database)
	return store, nil
}

// =============================================================================
// Shared Flags
// =============================================================================

// modFlags are the flags shared by every command that resolves an order.
type modFlags struct {
	modsDir string
	profile string
	noCache bool
	refresh bool
}

func (f *modFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.modsDir, "mods", "m", "", "mods directory (default from config)")
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "load order profile (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the resolution cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

func (c *CLI) options(f modFlags) pipeline.Options {
	cfg := c.cfg()
	opts := pipeline.Options{
		ModsDir: f.modsDir,
		Profile: f.profile,
		Refresh: f.refresh,
	}
	if opts.ModsDir == "" {
		opts.ModsDir = cfg.ModsDir
	}
	if opts.Profile == "" {
		opts.Profile = cfg.Profile
	}
	return opts
}
