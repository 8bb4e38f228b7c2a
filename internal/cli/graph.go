package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdown/pkg/cache"
	"github.com/matzehuels/linkdown/pkg/errors"
	"github.com/matzehuels/linkdown/pkg/reduce"
	"github.com/matzehuels/linkdown/pkg/topology/export"
)

// Output formats of the graph command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// graphOptions holds the flags of the graph command.
type graphOptions struct {
	input   string
	output  string
	format  string
	labels  bool
	node    string
	pattern string
	noCache bool
}

// graphCommand creates the graph command for drawing a topology.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOptions

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the topology as an undirected graph",
		Long: `Render the layer-1 topology as a Graphviz graph.

With --node the links a targeted 'make' would take down are drawn dashed
in red, which makes it easy to check a link pattern before generating
snapshots.`,
		Example: `  linkdown graph -i pushed_configs/mddo_network -o topology.svg
  linkdown graph -i pushed_configs/mddo_network -f dot -n regiona-pe01 -l 'ge-.*'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "input snapshot base directory")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatSVG, "output format: svg, dot")
	cmd.Flags().BoolVar(&opts.labels, "labels", true, "label edge ends with interface names")
	cmd.Flags().StringVarP(&opts.node, "node", "n", "", "highlight the links of this node")
	cmd.Flags().StringVarP(&opts.pattern, "link-pattern", "l", "", "restrict highlighted links to matching interfaces")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always re-render instead of reusing a cached SVG")
	completeValues(cmd, "format", formatSVG, formatDOT)
	completeDirs(cmd, "input")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, opts graphOptions) error {
	if opts.format != formatDOT && opts.format != formatSVG {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want svg or dot)", opts.format)
	}

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return err
	}
	_, topo, err := loadTopology(ctx, cfg, opts.input)
	if err != nil {
		return err
	}

	edges := reduce.Deduplicate(topo.Edges)
	dotOpts := export.DOTOptions{Labels: opts.labels}
	if opts.node != "" {
		part, err := reduce.DrawOff(edges, reduce.Criterion{Node: opts.node, Pattern: opts.pattern})
		if err != nil {
			return err
		}
		dotOpts.Highlight = part.Lost
		loggerFromContext(ctx).Debug("Highlighting", "links", len(part.Lost))
	}

	out := []byte(export.ToDOT(edges, dotOpts))
	if opts.format == formatSVG {
		out, err = renderSVG(ctx, newCache(opts.noCache), out)
		if err != nil {
			return err
		}
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "write %s", opts.output)
	}
	printSuccess("Graph written")
	printFile(opts.output)
	return nil
}

// renderSVG renders dot, reusing a cached result for identical input.
func renderSVG(ctx context.Context, c cache.Cache, dot []byte) ([]byte, error) {
	defer c.Close()
	logger := loggerFromContext(ctx)

	key := cache.RenderKey(formatSVG, dot)
	if svg, ok, err := c.Get(ctx, key); err == nil && ok {
		logger.Debug("Render cache hit", "key", key)
		return svg, nil
	}

	spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
	spinner.Start()
	svg, err := export.RenderSVG(ctx, string(dot))
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, fmt.Errorf("render svg: %w", err)
	}
	spinner.Stop()

	if err := c.Set(ctx, key, svg, cache.DefaultTTL); err != nil {
		logger.Warn("Cannot cache render", "err", err)
	}
	return svg, nil
}
