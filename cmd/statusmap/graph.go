package main

import (
	"fmt"
	"io"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"

	"github.com/aretw0/statusmap/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the status map visualization",
	Long: `Outputs the status map as a Mermaid diagram (graph TD) or a Graphviz
digraph. --from and --to highlight a transition, --visited a status history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMap(cmd)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		visited, _ := cmd.Flags().GetStringSlice("visited")

		var overlay *graph.Overlay
		if from != "" || to != "" || len(visited) > 0 {
			overlay = &graph.Overlay{From: from, To: to, Visited: visited}
		}

		var out string
		switch format {
		case "mermaid":
			out = graph.GenerateMermaid(m, overlay)
		case "dot":
			out = graph.GenerateDOT(m, overlay)
		default:
			return fmt.Errorf("unknown format %q, supported: mermaid, dot", format)
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			_, err := io.WriteString(cmd.OutOrStdout(), out)
			return err
		}
		return writeAtomic(output, out)
	},
}

// writeAtomic replaces path so readers never observe a partial diagram.
func writeAtomic(path, content string) error {
	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = pf.Cleanup() }()

	if _, err := io.WriteString(pf, content); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return pf.CloseAtomicallyReplace()
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().String("format", "mermaid", "Output format: mermaid or dot")
	graphCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	graphCmd.Flags().String("from", "", "Highlight the source status of a transition")
	graphCmd.Flags().String("to", "", "Highlight the target status of a transition")
	graphCmd.Flags().StringSlice("visited", nil, "Highlight a comma separated status history")
}
