package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/gymnasion/internal/presentation/graph"
	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/strategy"
	"github.com/spf13/cobra"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the modes and the strategies each one draws from",
	RunE: func(cmd *cobra.Command, args []string) error {
		asMermaid, _ := cmd.Flags().GetBool("mermaid")
		highlight, _ := cmd.Flags().GetString("highlight")

		set := strategy.Default()
		out := cmd.OutOrStdout()

		if asMermaid {
			var overlay *graph.Overlay
			if highlight != "" {
				m, ok := domain.ParseMode(highlight)
				if !ok {
					return fmt.Errorf("unknown mode %q", highlight)
				}
				overlay = &graph.Overlay{Mode: m}
			}
			fmt.Fprint(out, graph.GenerateMermaid(set, overlay))
			return nil
		}

		for _, m := range domain.Modes() {
			var names []string
			for _, st := range set.Pool(m) {
				names = append(names, st.Name)
			}
			marker := ""
			if m == domain.DefaultMode {
				marker = " (default)"
			}
			fmt.Fprintf(out, "%s%s: %s\n", m, marker, strings.Join(names, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
	modesCmd.Flags().Bool("mermaid", false, "Print a Mermaid flowchart instead of a list")
	modesCmd.Flags().String("highlight", "", "Mode to highlight in the flowchart")
}
