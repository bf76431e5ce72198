package main

import (
	"fmt"
	"os"

	"github.com/baldhumanity/sparsenet/neural/export"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one network as a DOT graph or YAML dump",
		Long: `Export one network of the population in DOT (Graphviz) or YAML format.

With --ticks the network is first evaluated that many times with --input so
the exported node values are the evaluated ones.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			index, _ := cmd.Flags().GetInt("network")
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			ticks, _ := cmd.Flags().GetInt("ticks")
			inputStr, _ := cmd.Flags().GetString("input")

			if ticks < 0 {
				return fmt.Errorf("ticks cannot be negative")
			}

			sim, _, err := buildSimulation(cmd)
			if err != nil {
				return err
			}
			if index < 0 || index >= sim.Len() {
				return fmt.Errorf("network %d out of range (population %d)", index, sim.Len())
			}
			if sim.InputSize == 0 && ticks > 0 {
				return fmt.Errorf("cannot evaluate networks without inputs")
			}

			if ticks > 0 {
				input, err := parseInputs(inputStr)
				if err != nil {
					return err
				}
				for tick := 0; tick < ticks; tick++ {
					if _, err := sim.Evaluate(index, input); err != nil {
						return err
					}
				}
			}

			data, err := export.Render(sim.Networks[index], export.Format(format))
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Network %d exported to %s\n", index, output)
			return nil
		},
	}

	cmd.Flags().Int("network", 0, "Index of the network to export")
	cmd.Flags().String("format", "dot", "Output format: dot or yaml")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	cmd.Flags().Int("ticks", 0, "Evaluate the network this many times before exporting")
	cmd.Flags().String("input", "", "Comma-separated input values used with --ticks")

	return cmd
}
