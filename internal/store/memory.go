package store

import (
	"context"
	"errors"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]Run
	outputs     map[string]map[outputKey]TickOutput
}

// outputKey identifies one stored row; later saves for the same key replace
// earlier ones.
type outputKey struct {
	tick    int
	network int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]Run)
	s.outputs = make(map[string]map[outputKey]TickOutput)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	if run.ID == "" {
		return errors.New("run id is required")
	}
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) SaveOutputs(_ context.Context, runID string, outputs []TickOutput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errors.New("store is not initialized")
	}
	if _, ok := s.runs[runID]; !ok {
		return errors.New("unknown run: " + runID)
	}

	rows, ok := s.outputs[runID]
	if !ok {
		rows = make(map[outputKey]TickOutput, len(outputs))
		s.outputs[runID] = rows
	}
	for _, out := range outputs {
		out.Values = append([]float32(nil), out.Values...)
		rows[outputKey{tick: out.Tick, network: out.Network}] = out
	}
	return nil
}

func (s *MemoryStore) GetOutputs(_ context.Context, runID string) ([]TickOutput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.outputs[runID]
	out := make([]TickOutput, 0, len(rows))
	for _, o := range rows {
		o.Values = append([]float32(nil), o.Values...)
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tick != out[j].Tick {
			return out[i].Tick < out[j].Tick
		}
		return out[i].Network < out[j].Network
	})
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
