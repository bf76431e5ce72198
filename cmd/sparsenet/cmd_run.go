package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/baldhumanity/sparsenet/internal/logging"
	"github.com/baldhumanity/sparsenet/internal/store"
	"github.com/baldhumanity/sparsenet/neural"
	"github.com/baldhumanity/sparsenet/neural/tiles"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate every network of a population for a number of ticks",
		Long: `Evaluate every network of a population for a number of ticks.

Inputs come from --input (comma-separated) or, with --tiles, from a row of
tiles of a bitmap map starting at --x/--y. Each tick appends the inputs to the
input layer of every network and runs one forward sweep.

With --store the run and all outputs are recorded ("memory" or "sqlite";
sqlite needs --db).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			ticks, _ := cmd.Flags().GetInt("ticks")
			inputStr, _ := cmd.Flags().GetString("input")
			tilesPath, _ := cmd.Flags().GetString("tiles")
			x, _ := cmd.Flags().GetInt("x")
			y, _ := cmd.Flags().GetInt("y")
			parallel, _ := cmd.Flags().GetBool("parallel")
			storeKind, _ := cmd.Flags().GetString("store")
			dbPath, _ := cmd.Flags().GetString("db")

			if ticks < 0 {
				return fmt.Errorf("ticks cannot be negative")
			}

			sim, logger, err := buildSimulation(cmd)
			if err != nil {
				return err
			}

			var input []float32
			if tilesPath != "" {
				m, err := tiles.Load(tilesPath)
				if err != nil {
					return err
				}
				input = m.Row(x, y, sim.InputSize)
			} else {
				input, err = parseInputs(inputStr)
				if err != nil {
					return err
				}
			}
			if len(input) != sim.InputSize {
				return fmt.Errorf("got %d input values, network takes %d", len(input), sim.InputSize)
			}
			if sim.InputSize == 0 && ticks > 0 && sim.Len() > 0 {
				return fmt.Errorf("cannot evaluate networks without inputs")
			}

			ctx := context.Background()
			var st store.Store
			var runID string
			if storeKind != "" {
				st, err = store.NewStore(storeKind, dbPath)
				if err != nil {
					return err
				}
				if err := st.Init(ctx); err != nil {
					return fmt.Errorf("init store: %w", err)
				}
				defer st.Close()

				runID = store.NewRunID()
				err = st.SaveRun(ctx, store.Run{
					ID:             runID,
					Seed:           sim.Seed(),
					PopulationSize: sim.Len(),
					InputSize:      sim.InputSize,
					OutputSize:     sim.OutputSize,
					Ticks:          ticks,
					CreatedAt:      time.Now(),
				})
				if err != nil {
					return fmt.Errorf("save run: %w", err)
				}
			}

			var results []store.TickOutput
			for tick := 0; tick < ticks; tick++ {
				outs, err := evaluateTick(ctx, sim, input, parallel)
				if err != nil {
					return fmt.Errorf("tick %d: %w", tick, err)
				}
				tickOutputs := make([]store.TickOutput, len(outs))
				for i, values := range outs {
					tickOutputs[i] = store.TickOutput{Tick: tick, Network: i, Values: values}
					logger.Log(ctx, logging.LevelTrace, "network output", "tick", tick, "network", i, "values", values)
				}
				if st != nil {
					if err := st.SaveOutputs(ctx, runID, tickOutputs); err != nil {
						return fmt.Errorf("save outputs: %w", err)
					}
				}
				results = append(results, tickOutputs...)
			}
			logger.Info("run finished", "ticks", ticks, "networks", sim.Len(), "run_id", runID)

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"run_id":  runID,
					"seed":    sim.Seed(),
					"input":   input,
					"outputs": results,
				})
			}

			if runID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "run %s\n", runID)
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "tick %d network %d: %v\n", r.Tick, r.Network, r.Values)
			}
			return nil
		},
	}

	cmd.Flags().Int("ticks", 1, "Number of ticks to evaluate")
	cmd.Flags().String("input", "", "Comma-separated input values, e.g. 0.1,0.2")
	cmd.Flags().String("tiles", "", "BMP map to sample inputs from")
	cmd.Flags().Int("x", 0, "Tile column of the first sampled tile")
	cmd.Flags().Int("y", 0, "Tile row to sample")
	cmd.Flags().Bool("parallel", false, "Evaluate networks concurrently")
	cmd.Flags().String("store", "", "Record the run: memory or sqlite")
	cmd.Flags().String("db", "sparsenet.db", "SQLite database path for --store sqlite")

	return cmd
}

func evaluateTick(ctx context.Context, sim *neural.Simulation, input []float32, parallel bool) ([][]float32, error) {
	if parallel {
		return sim.EvaluateAll(ctx, input)
	}
	outs := make([][]float32, sim.Len())
	for i := range sim.Networks {
		out, err := sim.Evaluate(i, input)
		if err != nil {
			return nil, err
		}
		outs[i] = out
	}
	return outs, nil
}
