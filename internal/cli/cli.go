// Package cli implements the linkdown command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdown/internal/config"
	"github.com/matzehuels/linkdown/pkg/buildinfo"
	"github.com/matzehuels/linkdown/pkg/errors"
	"github.com/matzehuels/linkdown/pkg/topology"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and completions.
const appName = "linkdown"

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
		Short: "Linkdown generates link-down snapshots of a layer-1 topology",
		Long: `Linkdown derives network snapshots with physical links removed.

Each derivative holds the reduced layer1_topology.json, hard links of the
source configuration files, and a snapshot_info.json recording which links
were taken down. The derivatives are meant to be fed to a topology analysis
service for what-if failure studies.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $"+config.EnvConfigPath+", ./"+config.ConfigFileName+", ~/.config/"+appName+"/config.toml)")

	// Register all subcommands
	root.AddCommand(c.makeCommand())
	root.AddCommand(c.edgesCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig reads the config file selected by --config or the default
// search path.
func (c *CLI) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, path, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if path != "" {
		loggerFromContext(ctx).Debug("Loaded config", "path", path)
	}
	return cfg, nil
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// loadTopology locates and reads the topology under input, falling back
// to the configured input snapshot base. It returns the directory holding
// the topology file.
func loadTopology(ctx context.Context, cfg *config.Config, input string) (string, *topology.Topology, error) {
	input = firstNonEmpty(input, cfg.InputSnapshotBase)
	if input == "" {
		return "", nil, errors.New(errors.ErrCodeInvalidInput, "no input snapshot base: use --input or set input_snapshot_base")
	}

	dir, err := topology.Find(input)
	if err != nil {
		return "", nil, err
	}
	topo, err := topology.Load(dir)
	if err != nil {
		return "", nil, err
	}
	loggerFromContext(ctx).Debug("Loaded topology", "path", dir, "edges", topo.Len())
	return dir, topo, nil
}
