// Package store records simulation runs and the outputs each network produced
// per tick.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run describes one invocation of a simulation.
type Run struct {
	ID             string    `json:"id"`
	Seed           uint64    `json:"seed"`
	PopulationSize int       `json:"population_size"`
	InputSize      int       `json:"input_size"`
	OutputSize     int       `json:"output_size"`
	Ticks          int       `json:"ticks"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// TickOutput is the output vector of one network at one tick.
type TickOutput struct {
	Tick    int       `json:"tick"`
	Network int       `json:"network"`
	Values  []float32 `json:"values"`
}

// Store persists runs and their outputs.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	SaveOutputs(ctx context.Context, runID string, outputs []TickOutput) error
	// GetOutputs returns outputs ordered by tick, then network.
	GetOutputs(ctx context.Context, runID string) ([]TickOutput, error)
	Close() error
}

// NewStore returns an uninitialized store of the given kind.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

func encodeValues(values []float32) ([]byte, error) {
	if values == nil {
		values = []float32{}
	}
	return json.Marshal(values)
}

func decodeValues(data []byte) ([]float32, error) {
	var values []float32
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
