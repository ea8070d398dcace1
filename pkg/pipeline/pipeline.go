// Package pipeline runs the FPS-to-ARB carbon calculation: load the FPS
// inventory exports, resolve each tree's species to its regional equation
// assignments, compute per-tree volume, biomass, and carbon, and write one
// report CSV per property.
//
// The pipeline is driven by a Runner so the CLI and the HTTP API share the
// same caching and logging behavior:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    DataDir: ".",
//	    Region:  "WOR",
//	})
//
// The load stage memoizes the parsed inventory keyed on the content hash of
// the CSV exports; the compute stage memoizes the calculated rows keyed on
// the inventory hash plus the run options.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ecotrust/arbcarbon/pkg/errors"
	"github.com/ecotrust/arbcarbon/pkg/inventory"
	"github.com/ecotrust/arbcarbon/pkg/report"
	"github.com/ecotrust/arbcarbon/pkg/species"
)

// DefaultRegion is used when no assessment region is requested.
const DefaultRegion = "WOR"

// DefaultOutDirName is the report directory created under the data
// directory when no output directory is configured.
const DefaultOutDirName = "FPS2ARB_Outputs"

// Unit conversions used by the carbon calculation.
const (
	LbsToKg    = 0.453592
	LbsPerTon  = 2000.0
	InchesToCm = 2.54
	FeetToM    = 0.3048
	// CO2PerKgBiomass converts live-tree biomass (kg) to metric tons CO2.
	CO2PerKgBiomass = 44.0 / 12.0 / 1000.0
)

// Options configures a pipeline run. The zero value runs every property and
// year in the current directory with WOR equations.
type Options struct {
	DataDir    string   `json:"data_dir,omitempty"`   // directory holding ADMIN.csv and DBHCLS.csv
	OutDir     string   `json:"out_dir,omitempty"`    // report directory, default <DataDir>/FPS2ARB_Outputs
	Region     string   `json:"region,omitempty"`     // WOR, WWA, EOR, EWA, or CA
	Properties []string `json:"properties,omitempty"` // empty = all properties
	Years      []int    `json:"years,omitempty"`      // empty = all report years
	Crosswalk  string   `json:"crosswalk,omitempty"`  // TOML species crosswalk path
	Refresh    bool     `json:"refresh,omitempty"`    // bypass the inventory cache

	// Runtime options (not serialized).
	Date   time.Time   `json:"-"` // report date stamp, default now
	Logger *log.Logger `json:"-"`

	region    species.Region
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.DataDir == "" {
		o.DataDir = "."
	}
	if o.Region == "" {
		o.Region = DefaultRegion
	}
	r, err := species.ParseRegion(o.Region)
	if err != nil {
		return err
	}
	o.region = r
	o.Region = string(r)
	if err := errors.ValidatePath(o.DataDir); err != nil {
		return err
	}
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// wantsYear reports whether a report year passes the year filter.
func (o *Options) wantsYear(year int) bool {
	if len(o.Years) == 0 {
		return true
	}
	for _, y := range o.Years {
		if y == year {
			return true
		}
	}
	return false
}

// wantsProperty reports whether a property passes the property filter.
func (o *Options) wantsProperty(property string) bool {
	if len(o.Properties) == 0 {
		return true
	}
	for _, p := range o.Properties {
		if p == property {
			return true
		}
	}
	return false
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Inventory is the parsed FPS export pair.
	Inventory *inventory.Inventory

	// InventoryHash is the content hash of the CSV exports.
	InventoryHash string

	// Rows holds every report row in output order.
	Rows []report.Row

	// Files lists the report CSVs written, one per property.
	Files []string

	// SkippedSpecies lists inventory species codes with no crosswalk match.
	SkippedSpecies []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Stands      int
	Trees       int
	Computed    int // rows with carbon results
	Skipped     int // dead trees and unmatched species carried through
	LoadTime    time.Duration
	ComputeTime time.Duration
	WriteTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit    bool // parsed inventory came from cache
	ComputeHit bool // computed rows came from cache
}
