// Package store persists pipeline run records so past carbon reports can be
// listed and retrieved through the API. Two backends are provided: an
// in-memory store for tests and single-shot CLI use, and a MongoDB store for
// server deployments.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ecotrust/arbcarbon/pkg/pipeline"
	"github.com/ecotrust/arbcarbon/pkg/report"
)

// Run is one completed pipeline execution.
type Run struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// Request parameters.
	Region     string   `json:"region" bson:"region"`
	Properties []string `json:"properties,omitempty" bson:"properties,omitempty"`
	Years      []int    `json:"years,omitempty" bson:"years,omitempty"`

	// InventoryHash identifies the exact FPS export pair the run saw.
	InventoryHash string `json:"inventory_hash" bson:"inventory_hash"`

	// Outcome.
	Stands         int             `json:"stands" bson:"stands"`
	Trees          int             `json:"trees" bson:"trees"`
	Computed       int             `json:"computed" bson:"computed"`
	Skipped        int             `json:"skipped" bson:"skipped"`
	SkippedSpecies []string        `json:"skipped_species,omitempty" bson:"skipped_species,omitempty"`
	Files          []string        `json:"files,omitempty" bson:"files,omitempty"`
	Totals         []PropertyTotal `json:"totals" bson:"totals"`
	Durations      RunDurations    `json:"durations" bson:"durations"`
}

// PropertyTotal aggregates one property's carbon across all its report rows.
type PropertyTotal struct {
	Property    string  `json:"property" bson:"property"`
	Rows        int     `json:"rows" bson:"rows"`
	CarbonTotal float64 `json:"carbon_total_tco2" bson:"carbon_total_tco2"`
}

// RunDurations records per-stage wall time in milliseconds.
type RunDurations struct {
	LoadMs    int64 `json:"load_ms" bson:"load_ms"`
	ComputeMs int64 `json:"compute_ms" bson:"compute_ms"`
	WriteMs   int64 `json:"write_ms" bson:"write_ms"`
}

// Store persists and retrieves runs.
type Store interface {
	// SaveRun stores a completed run.
	SaveRun(ctx context.Context, run *Run) error

	// GetRun retrieves a run by ID. Returns ErrCodeNotFound if absent.
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	// Close releases the store.
	Close(ctx context.Context) error
}

// DefaultListLimit caps ListRuns when the caller passes limit <= 0.
const DefaultListLimit = 50

// NewRun builds a run record from a pipeline result.
func NewRun(result *pipeline.Result, opts pipeline.Options) *Run {
	run := &Run{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Region:         opts.Region,
		Properties:     opts.Properties,
		Years:          opts.Years,
		InventoryHash:  result.InventoryHash,
		Stands:         result.Stats.Stands,
		Trees:          result.Stats.Trees,
		Computed:       result.Stats.Computed,
		Skipped:        result.Stats.Skipped,
		SkippedSpecies: result.SkippedSpecies,
		Files:          result.Files,
		Totals:         propertyTotals(result.Rows),
		Durations: RunDurations{
			LoadMs:    result.Stats.LoadTime.Milliseconds(),
			ComputeMs: result.Stats.ComputeTime.Milliseconds(),
			WriteMs:   result.Stats.WriteTime.Milliseconds(),
		},
	}
	return run
}

// propertyTotals sums per-row carbon by property, preserving row order.
func propertyTotals(rows []report.Row) []PropertyTotal {
	index := map[string]int{}
	var totals []PropertyTotal
	for _, row := range rows {
		i, seen := index[row.Property]
		if !seen {
			i = len(totals)
			index[row.Property] = i
			totals = append(totals, PropertyTotal{Property: row.Property})
		}
		totals[i].Rows++
		totals[i].CarbonTotal += row.CarbonTotal
	}
	return totals
}
