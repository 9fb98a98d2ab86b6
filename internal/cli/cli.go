// Package cli implements the landscape command-line interface.
//
// This package provides commands for inspecting a dumped kinetic
// transition network, selecting candidate pairs of minima for connection
// attempts, merging and pruning networks, archiving snapshots and serving
// a read-only inspection API. The CLI is built using cobra with verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - info: Summarize a dumped network
//   - select: Run a pair-selection strategy
//   - merge: Fold another dump into the current network
//   - prune: Remove minima or transition states
//   - csv: Export minima as CSV
//   - serve: Serve the inspection API
//   - archive: Push/pull snapshots to MongoDB
//   - cache: Manage the distance-matrix cache
//   - browse: Browse minima interactively
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/landscape/pkg/buildinfo"
	"github.com/matzehuels/landscape/pkg/cache"
	"github.com/matzehuels/landscape/pkg/ktn"
	"github.com/matzehuels/landscape/pkg/metric"
)

// appName is the application name used for directories and display.
const appName = "landscape"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	// configPath overrides the default config location when set by flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Landscape explores kinetic transition networks",
		Long:         `Landscape is a CLI tool for maintaining the network of minima and transition states discovered on an energy landscape: inspecting dumps, selecting pairs of minima worth a connection attempt, merging and pruning networks.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "",
		"config file (default ~/.config/landscape/config.toml)")

	root.AddCommand(c.infoCommand())
	root.AddCommand(c.selectCommand())
	root.AddCommand(c.mergeCommand())
	root.AddCommand(c.pruneCommand())
	root.AddCommand(c.csvCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.archiveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

// networkFlags adds the --path and --suffix flags common to every command
// that loads a dump.
func networkFlags(cmd *cobra.Command) {
	cmd.Flags().String("path", "", "directory holding the dump artifacts (default from config)")
	cmd.Flags().String("suffix", "", "artifact filename suffix (default from config)")
}

// loadNetwork reads a dumped network using flag values with config
// fallbacks.
func (c *CLI) loadNetwork(path, suffix string) (*ktn.Network, error) {
	if path == "" {
		path = c.Config.DumpPath
	}
	if suffix == "" {
		suffix = c.Config.DumpSuffix
	}
	n := ktn.New(ktn.WithDumpPath(path), ktn.WithDumpSuffix(suffix))
	if err := n.Read("", ""); err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded network",
		"path", path, "suffix", suffix, "minima", n.NMinima(), "ts", n.NTS())
	return n, nil
}

// newProvider creates the Euclidean provider, wiring in the configured
// cache backend for distance matrices.
func (c *CLI) newProvider(ctx context.Context, noCache bool) *metric.Euclidean {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "err", err)
		store = cache.NewNullCache()
	}
	return metric.New(metric.WithCache(store))
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr, appName+":")
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/landscape/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/landscape/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
