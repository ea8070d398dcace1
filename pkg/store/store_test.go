package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecotrust/arbcarbon/pkg/errors"
	"github.com/ecotrust/arbcarbon/pkg/pipeline"
	"github.com/ecotrust/arbcarbon/pkg/report"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	run := &Run{ID: "r1", CreatedAt: time.Now(), Region: "WOR", Trees: 10}
	require.NoError(t, s.SaveRun(ctx, run))

	got, err := s.GetRun(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "WOR", got.Region)
	assert.Equal(t, 10, got.Trees)

	_, err = s.GetRun(ctx, "missing")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "error = %v, want NOT_FOUND", err)
}

func TestMemoryStoreRejectsEmptyID(t *testing.T) {
	s := NewMemoryStore()
	err := s.SaveRun(context.Background(), &Run{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "error = %v, want INVALID_INPUT", err)
}

func TestMemoryStoreListOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Date(2016, 5, 11, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := &Run{ID: fmt.Sprintf("r%d", i), CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, s.SaveRun(ctx, run))
	}

	runs, err := s.ListRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "r4", runs[0].ID, "newest run first")
	assert.Equal(t, "r2", runs[2].ID)
}

func TestNewRun(t *testing.T) {
	result := &pipeline.Result{
		InventoryHash:  "abc123",
		SkippedSpecies: []string{"ZZ"},
		Files:          []string{"out/FPS2ARB_Ridge_2016-05-11.csv"},
		Rows: []report.Row{
			{Property: "Ridge", CarbonTotal: 100},
			{Property: "Ridge", CarbonTotal: 50},
			{Property: "North Fork", CarbonTotal: 25},
		},
		Stats: pipeline.Stats{
			Stands: 2, Trees: 3, Computed: 2, Skipped: 1,
			LoadTime: 120 * time.Millisecond,
		},
	}
	opts := pipeline.Options{Region: "CA", Years: []int{2012}}

	run := NewRun(result, opts)
	require.NotEmpty(t, run.ID)
	assert.Equal(t, "CA", run.Region)
	assert.Equal(t, "abc123", run.InventoryHash)
	assert.Equal(t, 3, run.Trees)
	assert.EqualValues(t, 120, run.Durations.LoadMs)

	require.Len(t, run.Totals, 2)
	assert.Equal(t, PropertyTotal{Property: "Ridge", Rows: 2, CarbonTotal: 150}, run.Totals[0])
	assert.Equal(t, 25.0, run.Totals[1].CarbonTotal)
}
