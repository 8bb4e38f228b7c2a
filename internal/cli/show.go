package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdown/pkg/errors"
	"github.com/matzehuels/linkdown/pkg/reduce"
	"github.com/matzehuels/linkdown/pkg/topology"
	"github.com/matzehuels/linkdown/pkg/topology/export"
)

// Output formats of the show command.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// showCommand creates the show command for printing a topology.
func (c *CLI) showCommand() *cobra.Command {
	var (
		input  string
		format string
		dedup  bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the layer-1 topology",
		Long: `Print the layer-1 topology found under the input directory.

The JSON output has the same shape as layer1_topology.json; YAML uses the
same field names.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd.Context(), os.Stdout, input, format, dedup)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input snapshot base directory")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json, yaml")
	cmd.Flags().BoolVar(&dedup, "dedup", false, "drop duplicate links (reverse direction included)")
	completeValues(cmd, "format", formatJSON, formatYAML)
	completeDirs(cmd, "input")

	return cmd
}

func (c *CLI) runShow(ctx context.Context, w io.Writer, input, format string, dedup bool) error {
	if format != formatJSON && format != formatYAML {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want json or yaml)", format)
	}

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return err
	}
	_, topo, err := loadTopology(ctx, cfg, input)
	if err != nil {
		return err
	}

	edges := topo.Edges
	if dedup {
		edges = reduce.Deduplicate(edges)
	}

	if format == formatYAML {
		return export.WriteYAML(w, edges)
	}
	return topology.Write(w, edges)
}
