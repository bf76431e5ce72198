package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/baldhumanity/sparsenet/neural"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a population and print its structure",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			sim, _, err := buildSimulation(cmd)
			if err != nil {
				return err
			}

			stats := make([]neural.Stats, 0, sim.Len())
			for _, net := range sim.Networks {
				stats = append(stats, net.Summarize())
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"seed":     sim.Seed(),
					"inputs":   sim.InputSize,
					"outputs":  sim.OutputSize,
					"networks": stats,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seed %d, %d networks, %d inputs, %d outputs\n\n",
				sim.Seed(), sim.Len(), sim.InputSize, sim.OutputSize)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NET\tLAYERS\tNODES\tEDGES\tSAME-LAYER\tORPHANS\tOUT-EDGES\tFAN-IN")
			for _, st := range stats {
				fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.2f±%.2f\n",
					st.Num, st.HiddenLayers, st.HiddenNodes, st.Edges, st.SameLayerEdges,
					st.Orphans, st.OutputEdges, st.MeanFanIn, st.StdevFanIn)
			}
			return w.Flush()
		},
	}
}
