package cli

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdown/pkg/errors"
	"github.com/matzehuels/linkdown/pkg/observability"
	"github.com/matzehuels/linkdown/pkg/reduce"
	"github.com/matzehuels/linkdown/pkg/snapshot"
	"github.com/matzehuels/linkdown/pkg/topology"
)

// makeOptions holds the flags of the make command.
type makeOptions struct {
	input       string
	output      string
	node        string
	pattern     string
	dryRun      bool
	bestEffort  bool
	interactive bool
	metricsFile string
}

// makeCommand creates the make command for generating link-down snapshots.
func (c *CLI) makeCommand() *cobra.Command {
	var opts makeOptions

	cmd := &cobra.Command{
		Use:   "make",
		Short: "Generate link-down snapshots",
		Long: `Generate derivative snapshots with physical links removed.

Without --node every distinct link is taken down in turn, producing one
snapshot per link named <snapshot>_01, <snapshot>_02, ... in the output
directory. With --node all links of that node whose interface name matches
--link-pattern are taken down together, producing a single snapshot named
after the source.

Configuration files are hard-linked, never copied. Existing snapshots of
the same name are replaced.`,
		Example: `  # One snapshot per link
  linkdown make -i pushed_configs/mddo_network -o linkdown

  # Draw off every ge- interface of regiona-pe01
  linkdown make -i pushed_configs/mddo_network -o linkdown -n regiona-pe01 -l 'ge-0/0/[0-9]+'

  # Pick the link to take down interactively
  linkdown make -i pushed_configs/mddo_network -o linkdown --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMake(cmd.Context(), opts, cmd.Flags().Changed("best-effort"))
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "input snapshot base directory (searched for "+topology.FileName+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output snapshot base directory")
	cmd.Flags().StringVarP(&opts.node, "node", "n", "", "draw off links of this node (case-insensitive)")
	cmd.Flags().StringVarP(&opts.pattern, "link-pattern", "l", "", "regular expression for interface names to draw off (default: all)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "log the links that would go down without writing anything")
	cmd.Flags().BoolVar(&opts.bestEffort, "best-effort", false, "keep going after a failed snapshot and report all failures at the end")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "choose the link to draw off from a list")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics of the run to this file (textfile collector format)")
	cmd.MarkFlagsMutuallyExclusive("interactive", "node")
	completeDirs(cmd, "input", "output")

	return cmd
}

// runMake loads the topology, plans the derivatives and materializes them.
// bestEffortSet reports whether --best-effort was given explicitly and
// therefore overrides the config file.
func (c *CLI) runMake(ctx context.Context, opts makeOptions, bestEffortSet bool) error {
	if opts.pattern != "" && opts.node == "" && !opts.interactive {
		return errors.New(errors.ErrCodeInvalidInput, "--link-pattern requires --node")
	}

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return err
	}
	output := firstNonEmpty(opts.output, cfg.OutputSnapshotBase)
	if output == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no output snapshot base: use --output or set output_snapshot_base")
	}

	bestEffort := cfg.BestEffort
	if bestEffortSet {
		bestEffort = opts.bestEffort
	}

	ctx, logger := withRunID(ctx)
	prog := newProgress(logger)

	src, topo, err := loadTopology(ctx, cfg, opts.input)
	if err != nil {
		return err
	}
	if loops := topo.Loops(); len(loops) > 0 {
		logger.Warn("Topology contains self-loops", "count", len(loops))
	}

	mode := reduce.ModeBulk
	crit := reduce.Criterion{Node: opts.node, Pattern: opts.pattern}
	if opts.interactive {
		ep, ok, err := pickEndpoint(reduce.Deduplicate(topo.Edges))
		if err != nil {
			return err
		}
		if !ok {
			printDetail("No selection made")
			return nil
		}
		crit = reduce.Criterion{Node: ep.Hostname, Pattern: regexp.QuoteMeta(ep.InterfaceName)}
	}
	if crit.Node != "" {
		mode = reduce.ModeTargeted
	}

	plans, err := reduce.Reduce(topo.Edges, mode, crit)
	if err != nil {
		return err
	}
	if mode == reduce.ModeTargeted && len(plans[0].Lost) == 0 {
		logger.Warn("No links matched", "criterion", crit.String())
	}
	logger.Info("Planned snapshots", "mode", mode, "count", len(plans))

	var metrics *observability.SnapshotMetrics
	if opts.metricsFile != "" {
		if metrics, err = observability.NewSnapshotMetrics(nil); err != nil {
			return err
		}
	}

	m, err := snapshot.New(snapshot.Options{
		ArtifactDirs: cfg.ArtifactDirs,
		DryRun:       opts.dryRun,
		BestEffort:   bestEffort,
		Logger:       logger,
		Hooks:        runHooks(logger, metrics),
	})
	if err != nil {
		return err
	}

	results, err := m.Run(ctx, src, output, plans)
	printResults(results, opts.dryRun)

	if metrics != nil {
		metrics.RecordRun(err, time.Now())
		if werr := metrics.WriteTextfile(opts.metricsFile); werr != nil {
			logger.Warn("Cannot write metrics", "err", werr)
		}
	}
	if err != nil {
		return err
	}

	if opts.dryRun {
		prog.done(fmt.Sprintf("Dry run of %d snapshots", len(results)))
		return nil
	}
	prog.done(fmt.Sprintf("Generated %d snapshots", len(results)))
	if len(results) > 0 {
		printNextStep("Inspect", appName+" show -i "+results[0].Path)
	}
	return nil
}

// printResults prints a summary line per derivative plus any skipped files.
func printResults(results []*snapshot.Result, dryRun bool) {
	if len(results) == 0 {
		return
	}
	printNewline()
	for _, r := range results {
		if dryRun {
			printInfo("%s", r)
			continue
		}
		printSuccess("%s", r.Metadata.Description)
		printFile(r.Path)
		printStats(len(r.Metadata.LostEdges), r.Linked, len(r.Skipped))
		for _, s := range r.Skipped {
			printWarning("skipped existing file %s", s)
		}
	}
	printNewline()
}
