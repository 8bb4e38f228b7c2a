package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdown/pkg/reduce"
	"github.com/matzehuels/linkdown/pkg/topology"
)

// edgesCommand creates the edges command, which lists the distinct links
// in the order bulk mode takes them down.
func (c *CLI) edgesCommand() *cobra.Command {
	var (
		input      string
		duplicates bool
	)

	cmd := &cobra.Command{
		Use:   "edges",
		Short: "List the distinct links of a topology",
		Long: `List the distinct links of a topology.

Links are numbered the way 'make' numbers bulk snapshots, so No.03 is the
link removed in <snapshot>_03. Both directions of a link count once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdges(cmd.Context(), input, duplicates)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input snapshot base directory")
	cmd.Flags().BoolVar(&duplicates, "duplicates", false, "also list records dropped as duplicates")
	completeDirs(cmd, "input")

	return cmd
}

func (c *CLI) runEdges(ctx context.Context, input string, duplicates bool) error {
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return err
	}
	dir, topo, err := loadTopology(ctx, cfg, input)
	if err != nil {
		return err
	}

	uniq := reduce.Deduplicate(topo.Edges)

	printKeyValue("Topology", dir)
	printKeyValue("Records", StyleNumber.Render(fmt.Sprintf("%d", topo.Len())))
	printKeyValue("Links", StyleNumber.Render(fmt.Sprintf("%d", len(uniq))))
	printKeyValue("Hosts", StyleNumber.Render(fmt.Sprintf("%d", len(topo.Hosts()))))
	printNewline()

	fmt.Fprintln(os.Stdout, edgeTable(uniq).Render())

	if duplicates {
		dups := reduce.Duplicates(topo.Edges)
		printNewline()
		if len(dups) == 0 {
			printDetail("No duplicate records")
			return nil
		}
		printInfo("%d duplicate records", len(dups))
		for _, e := range dups {
			printDetail("%s", e)
		}
	}
	return nil
}

// edgeTable renders edges as a numbered table.
func edgeTable(edges []topology.Edge) *table.Table {
	rows := make([][]string, len(edges))
	for i, e := range edges {
		rows[i] = []string{fmt.Sprintf("%02d", i+1), e.Node1.String(), e.Node2.String()}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("No.", "Node 1", "Node 2").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleNumber
			}
			return lipgloss.NewStyle()
		})
}
