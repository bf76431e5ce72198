package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db")),
	}
}

func TestStoreRunRoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Init(ctx))
			t.Cleanup(func() { _ = s.Close() })

			run := Run{
				ID:             NewRunID(),
				Seed:           ^uint64(0),
				PopulationSize: 3,
				InputSize:      2,
				OutputSize:     2,
				Ticks:          5,
				CreatedAt:      time.Date(2024, 5, 1, 12, 30, 0, 123, time.UTC),
			}
			require.NoError(t, s.SaveRun(ctx, run))

			got, ok, err := s.GetRun(ctx, run.ID)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, run.Seed, got.Seed)
			assert.Equal(t, run.PopulationSize, got.PopulationSize)
			assert.Equal(t, run.Ticks, got.Ticks)
			assert.True(t, run.CreatedAt.Equal(got.CreatedAt))

			_, ok, err = s.GetRun(ctx, "missing")
			require.NoError(t, err)
			assert.False(t, ok)

			assert.Error(t, s.SaveRun(ctx, Run{}))
		})
	}
}

func TestStoreOutputs(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Init(ctx))
			t.Cleanup(func() { _ = s.Close() })

			run := Run{ID: "run-1", Seed: 1, PopulationSize: 2, InputSize: 2, OutputSize: 2, CreatedAt: time.Now()}
			require.NoError(t, s.SaveRun(ctx, run))

			require.NoError(t, s.SaveOutputs(ctx, run.ID, []TickOutput{
				{Tick: 1, Network: 1, Values: []float32{0.5, -0.25}},
				{Tick: 0, Network: 1, Values: []float32{0.1, 0.2}},
				{Tick: 0, Network: 0, Values: []float32{-1, 1}},
			}))
			// replace (0, 1) and add an empty vector
			require.NoError(t, s.SaveOutputs(ctx, run.ID, []TickOutput{
				{Tick: 0, Network: 1, Values: []float32{0.3, 0.4}},
				{Tick: 1, Network: 0},
			}))

			got, err := s.GetOutputs(ctx, run.ID)
			require.NoError(t, err)
			assert.Equal(t, []TickOutput{
				{Tick: 0, Network: 0, Values: []float32{-1, 1}},
				{Tick: 0, Network: 1, Values: []float32{0.3, 0.4}},
				{Tick: 1, Network: 0, Values: []float32{}},
				{Tick: 1, Network: 1, Values: []float32{0.5, -0.25}},
			}, normalize(got))

			none, err := s.GetOutputs(ctx, "other")
			require.NoError(t, err)
			assert.Empty(t, none)

			assert.ErrorContains(t, s.SaveOutputs(ctx, "other", []TickOutput{{Tick: 0}}), "unknown run")
		})
	}
}

func TestStoreOutputsManyTicks(t *testing.T) {
	const ticks, population = 50, 40
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Init(ctx))
			t.Cleanup(func() { _ = s.Close() })

			run := Run{ID: "run-many", Seed: 1, PopulationSize: population, InputSize: 1, OutputSize: 1, CreatedAt: time.Now()}
			require.NoError(t, s.SaveRun(ctx, run))

			// one save per tick, networks in reverse order, like a run loop
			for tick := 0; tick < ticks; tick++ {
				batch := make([]TickOutput, 0, population)
				for n := population - 1; n >= 0; n-- {
					batch = append(batch, TickOutput{Tick: tick, Network: n, Values: []float32{float32(tick)}})
				}
				require.NoError(t, s.SaveOutputs(ctx, run.ID, batch))
			}
			// overwrite the last tick
			require.NoError(t, s.SaveOutputs(ctx, run.ID, []TickOutput{{Tick: ticks - 1, Network: 0, Values: []float32{-1}}}))

			got, err := s.GetOutputs(ctx, run.ID)
			require.NoError(t, err)
			require.Len(t, got, ticks*population)
			for i, out := range got {
				require.Equal(t, i/population, out.Tick)
				require.Equal(t, i%population, out.Network)
			}
			assert.Equal(t, []float32{-1}, got[(ticks-1)*population].Values)
			assert.Equal(t, []float32{float32(ticks - 1)}, got[len(got)-1].Values)
		})
	}
}

// normalize makes nil and empty value slices compare equal.
func normalize(outputs []TickOutput) []TickOutput {
	for i := range outputs {
		if outputs[i].Values == nil {
			outputs[i].Values = []float32{}
		}
	}
	return outputs
}

func TestStoreNotInitialized(t *testing.T) {
	ctx := context.Background()

	sq := NewSQLiteStore(filepath.Join(t.TempDir(), "runs.db"))
	assert.Error(t, sq.SaveRun(ctx, Run{ID: "x"}))
	_, err := sq.GetOutputs(ctx, "x")
	assert.Error(t, err)
	assert.NoError(t, sq.Close())

	mem := NewMemoryStore()
	assert.Error(t, mem.SaveRun(ctx, Run{ID: "x"}))
}

func TestSQLiteRequiresPath(t *testing.T) {
	assert.ErrorContains(t, NewSQLiteStore("").Init(context.Background()), "path is required")
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")

	first := NewSQLiteStore(path)
	require.NoError(t, first.Init(ctx))
	require.NoError(t, first.SaveRun(ctx, Run{ID: "r", Seed: 7, CreatedAt: time.Now()}))
	require.NoError(t, first.SaveOutputs(ctx, "r", []TickOutput{{Tick: 0, Network: 0, Values: []float32{0.75}}}))
	require.NoError(t, first.Close())

	second := NewSQLiteStore(path)
	require.NoError(t, second.Init(ctx))
	defer second.Close()

	run, ok, err := second.GetRun(ctx, "r")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(7), run.Seed)

	outs, err := second.GetOutputs(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, []TickOutput{{Tick: 0, Network: 0, Values: []float32{0.75}}}, outs)
}

func TestNewStore(t *testing.T) {
	s, err := NewStore("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = NewStore("sqlite", "x.db")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)

	_, err = NewStore("unknown", "")
	assert.Error(t, err)
}

func TestNewRunIDUnique(t *testing.T) {
	assert.NotEqual(t, NewRunID(), NewRunID())
	assert.Len(t, NewRunID(), 36)
}
