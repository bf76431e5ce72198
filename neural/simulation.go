package neural

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/baldhumanity/sparsenet/internal/logging"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidSize  = errors.New("invalid simulation size")
	ErrInputSize    = errors.New("input size mismatch")
	ErrNetworkIndex = errors.New("network index out of range")
)

// Simulation owns a population of networks generated from one seeded random
// stream. Network k is only reproducible if networks 0..k-1 were generated
// from the same seed before it.
type Simulation struct {
	Networks   []*NeuralNetwork
	InputSize  int
	OutputSize int

	seed   uint64
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger used for generation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSimulation seeds the random stream and synchronously generates
// populationSize networks from it.
func NewSimulation(seed uint64, populationSize, inputSize, outputSize int, opts ...Option) (*Simulation, error) {
	if populationSize < 0 || inputSize < 0 || outputSize < 0 {
		return nil, fmt.Errorf("%w: population=%d inputs=%d outputs=%d",
			ErrInvalidSize, populationSize, inputSize, outputSize)
	}

	s := &Simulation{
		Networks:   make([]*NeuralNetwork, 0, populationSize),
		InputSize:  inputSize,
		OutputSize: outputSize,
		seed:       seed,
		rng:        rand.New(rand.NewPCG(seed, 0)),
		logger:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.init(populationSize)
	return s, nil
}

// NewSimulationFromConfig creates a Simulation from the [Simulation] section
// of a loaded config.
func NewSimulationFromConfig(config *Config, opts ...Option) (*Simulation, error) {
	sc := config.Simulation
	sim, err := NewSimulation(sc.Seed, sc.PopulationSize, sc.InputSize, sc.OutputSize, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}
	return sim, nil
}

func (s *Simulation) init(populationSize int) {
	start := time.Now()
	for num := 0; num < populationSize; num++ {
		netStart := time.Now()
		net := newNetwork(num, s.InputSize, s.OutputSize)
		net.generate(s.rng, s.OutputSize)
		s.Networks = append(s.Networks, net)

		s.logger.Debug("generated network",
			"num", num,
			"hidden_layers", net.HiddenLayers(),
			"shape", net.Shape(),
			"elapsed", time.Since(netStart))
	}
	s.logger.Info("generated population",
		"seed", s.seed,
		"size", populationSize,
		"inputs", s.InputSize,
		"outputs", s.OutputSize,
		"elapsed", time.Since(start))
}

// Seed returns the seed the random stream was created with.
func (s *Simulation) Seed() uint64 {
	return s.seed
}

// Len returns the population size.
func (s *Simulation) Len() int {
	return len(s.Networks)
}

// Evaluate feeds input to network i and returns its outputs.
func (s *Simulation) Evaluate(i int, input []float32) ([]float32, error) {
	if i < 0 || i >= len(s.Networks) {
		return nil, fmt.Errorf("%w: %d (population %d)", ErrNetworkIndex, i, len(s.Networks))
	}
	if len(input) != s.InputSize {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrInputSize, len(input), s.InputSize)
	}
	return s.Networks[i].Update(input), nil
}

// EvaluateAll feeds the same input to every network and returns the outputs
// indexed by network. Networks share no state, so each one is evaluated by its
// own goroutine; results match sequential evaluation.
//
// ctx is only checked before the tick starts. Once started, every network is
// advanced so the population never ends up split across ticks.
func (s *Simulation) EvaluateAll(ctx context.Context, input []float32) ([][]float32, error) {
	if len(input) != s.InputSize {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrInputSize, len(input), s.InputSize)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluation aborted: %w", err)
	}

	results := make([][]float32, len(s.Networks))
	var g errgroup.Group
	for i, net := range s.Networks {
		g.Go(func() error {
			results[i] = net.Update(input)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
