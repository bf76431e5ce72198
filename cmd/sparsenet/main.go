package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/baldhumanity/sparsenet/internal/logging"
	"github.com/baldhumanity/sparsenet/neural"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sparsenet",
		Short: "Generate and evaluate populations of sparse layered networks",
		Long: `sparsenet builds a population of randomly structured, sparse, layered
feed-forward networks from a single seed and evaluates them tick by tick.

Generation parameters come from an INI config file (--config) and can be
overridden with --seed, --population, --inputs and --outputs.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Path to an INI config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug or trace (overrides config)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Random seed (overrides config)")
	rootCmd.PersistentFlags().Int("population", 0, "Population size (overrides config)")
	rootCmd.PersistentFlags().Int("inputs", 0, "Input width (overrides config)")
	rootCmd.PersistentFlags().Int("outputs", 0, "Output width (overrides config)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newGenerateCmd(),
		newRunCmd(),
		newExportCmd(),
		newTilesCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "sparsenet version %s\n", version)
			}
		},
	}
}

// loadConfig reads --config (or the defaults) and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*neural.Config, error) {
	config := neural.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		config, err = neural.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		config.Simulation.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("population") {
		config.Simulation.PopulationSize, _ = flags.GetInt("population")
	}
	if flags.Changed("inputs") {
		config.Simulation.InputSize, _ = flags.GetInt("inputs")
	}
	if flags.Changed("outputs") {
		config.Simulation.OutputSize, _ = flags.GetInt("outputs")
	}
	if level, _ := flags.GetString("log-level"); level != "" {
		config.Logging.Level = strings.ToLower(level)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// buildSimulation loads the config and generates the population.
func buildSimulation(cmd *cobra.Command) (*neural.Simulation, *slog.Logger, error) {
	config, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	level, err := logging.ParseLevel(config.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.NewLogger(level, cmd.ErrOrStderr())

	sim, err := neural.NewSimulationFromConfig(config, neural.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return sim, logger, nil
}

// parseInputs parses a comma-separated list of floats. An empty string yields
// an empty vector.
func parseInputs(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float32{}, nil
	}
	parts := strings.Split(s, ",")
	values := make([]float32, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid input value %q: %w", p, err)
		}
		values = append(values, float32(v))
	}
	return values, nil
}
