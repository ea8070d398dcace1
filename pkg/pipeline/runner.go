package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ecotrust/arbcarbon/pkg/cache"
	"github.com/ecotrust/arbcarbon/pkg/errors"
	"github.com/ecotrust/arbcarbon/pkg/inventory"
	"github.com/ecotrust/arbcarbon/pkg/observability"
	"github.com/ecotrust/arbcarbon/pkg/report"
	"github.com/ecotrust/arbcarbon/pkg/species"
)

// Runner encapsulates pipeline execution with caching. Both the CLI and the
// HTTP API use it, so caching and logging behave identically from either
// entry point. A Runner is stateless apart from its cache and logger and is
// safe for concurrent use with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching (NullCache), a
// nil keyer falls back to the DefaultKeyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs the complete load → compute → report pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	cw, crosswalkHash, err := r.loadCrosswalk(opts)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: load the FPS exports.
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.DataDir)
	inv, hash, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, opts.DataDir, 0, time.Since(loadStart), err)
		return nil, err
	}
	observability.Pipeline().OnLoadComplete(ctx, opts.DataDir, len(inv.Trees), time.Since(loadStart), nil)
	result.Inventory = inv
	result.InventoryHash = hash
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Stands = len(inv.Stands)
	result.Stats.Trees = len(inv.Trees)
	result.CacheInfo.LoadHit = loadHit

	opts.Logger.Info("loaded inventory",
		"stands", len(inv.Stands),
		"trees", len(inv.Trees),
		"cached", loadHit,
		"duration", result.Stats.LoadTime)

	// Stage 2: per-tree carbon calculation.
	computeStart := time.Now()
	observability.Pipeline().OnComputeStart(ctx, opts.Region, len(inv.Trees))
	rows, skipped, computeHit, err := r.ComputeWithCacheInfo(ctx, inv, hash, cw, crosswalkHash, opts)
	if err != nil {
		observability.Pipeline().OnComputeComplete(ctx, opts.Region, 0, 0, time.Since(computeStart), err)
		return nil, err
	}
	result.Rows = rows
	result.SkippedSpecies = skipped
	result.Stats.ComputeTime = time.Since(computeStart)
	result.CacheInfo.ComputeHit = computeHit
	for i := range rows {
		if rows[i].Computed {
			result.Stats.Computed++
		} else {
			result.Stats.Skipped++
		}
	}

	observability.Pipeline().OnComputeComplete(ctx, opts.Region,
		result.Stats.Computed, result.Stats.Skipped, result.Stats.ComputeTime, nil)

	if len(skipped) > 0 {
		opts.Logger.Warn("species without crosswalk entries carry no carbon",
			"codes", skipped)
	}
	opts.Logger.Info("computed carbon",
		"rows", len(rows),
		"computed", result.Stats.Computed,
		"skipped", result.Stats.Skipped,
		"region", opts.Region,
		"cached", computeHit,
		"duration", result.Stats.ComputeTime)

	// Stage 3: one report CSV per property.
	writeStart := time.Now()
	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Join(opts.DataDir, DefaultOutDirName)
	}
	observability.Pipeline().OnWriteStart(ctx, outDir)
	files, err := r.writeReports(rows, opts)
	if err != nil {
		observability.Pipeline().OnWriteComplete(ctx, outDir, 0, time.Since(writeStart), err)
		return nil, err
	}
	result.Files = files
	result.Stats.WriteTime = time.Since(writeStart)
	observability.Pipeline().OnWriteComplete(ctx, outDir, len(files), result.Stats.WriteTime, nil)

	opts.Logger.Info("wrote reports",
		"files", len(files),
		"duration", result.Stats.WriteTime)

	return result, nil
}

// LoadWithCacheInfo reads and parses the FPS exports, memoized on the
// content hash of the two CSV files. Returns the inventory, its content
// hash, and whether the parse came from cache.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*inventory.Inventory, string, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, "", false, err
	}

	adminData, err := readExport(filepath.Join(opts.DataDir, inventory.AdminFile))
	if err != nil {
		return nil, "", false, err
	}
	treeData, err := readExport(filepath.Join(opts.DataDir, inventory.TreesFile))
	if err != nil {
		return nil, "", false, err
	}

	h := cache.Hash(append(append([]byte{}, adminData...), treeData...))
	key := r.Keyer.InventoryKey(h, cache.InventoryKeyOpts{})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var inv inventory.Inventory
			if err := json.Unmarshal(data, &inv); err == nil {
				observability.Cache().OnCacheHit(ctx, "inventory")
				return &inv, h, true, nil
			}
			// Corrupt entry: fall through and reparse.
		}
		observability.Cache().OnCacheMiss(ctx, "inventory")
	}

	stands, err := inventory.ReadStands(bytes.NewReader(adminData))
	if err != nil {
		return nil, "", false, err
	}
	trees, err := inventory.ReadTrees(bytes.NewReader(treeData))
	if err != nil {
		return nil, "", false, err
	}
	inv := &inventory.Inventory{Stands: stands, Trees: trees}

	if data, err := json.Marshal(inv); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLInventory)
		observability.Cache().OnCacheSet(ctx, "inventory", len(data))
	}
	return inv, h, false, nil
}

// Load is a convenience wrapper that discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*inventory.Inventory, error) {
	inv, _, _, err := r.LoadWithCacheInfo(ctx, opts)
	return inv, err
}

// computedRows is the cached form of the compute stage.
type computedRows struct {
	Rows    []report.Row `json:"rows"`
	Skipped []string     `json:"skipped"`
}

// ComputeWithCacheInfo runs the carbon calculation, memoized on the
// inventory hash and the run options.
func (r *Runner) ComputeWithCacheInfo(ctx context.Context, inv *inventory.Inventory,
	inventoryHash string, cw *species.Crosswalk, crosswalkHash string,
	opts Options) ([]report.Row, []string, bool, error) {

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, false, err
	}

	key := r.Keyer.ReportKey(inventoryHash, cache.ReportKeyOpts{
		Region:     opts.Region,
		Crosswalk:  crosswalkHash,
		Properties: opts.Properties,
		Years:      opts.Years,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached computedRows
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "report")
				return cached.Rows, cached.Skipped, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "report")
	}

	rows, skipped, err := Compute(inv, cw, opts)
	if err != nil {
		return nil, nil, false, err
	}

	if data, err := json.Marshal(computedRows{Rows: rows, Skipped: skipped}); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLReport)
		observability.Cache().OnCacheSet(ctx, "report", len(data))
	}
	return rows, skipped, false, nil
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// loadCrosswalk loads the optional species crosswalk and hashes its content
// for cache keying.
func (r *Runner) loadCrosswalk(opts Options) (*species.Crosswalk, string, error) {
	if opts.Crosswalk == "" {
		return nil, "", nil
	}
	cw, err := species.LoadCrosswalk(opts.Crosswalk)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(opts.Crosswalk)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeIO, err, "read crosswalk %s", opts.Crosswalk)
	}
	return cw, cache.Hash(data), nil
}

// writeReports writes one CSV per property present in the rows.
func (r *Runner) writeReports(rows []report.Row, opts Options) ([]string, error) {
	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Join(opts.DataDir, DefaultOutDirName)
	}

	byProperty := map[string][]report.Row{}
	var order []string
	for _, row := range rows {
		if _, seen := byProperty[row.Property]; !seen {
			order = append(order, row.Property)
		}
		byProperty[row.Property] = append(byProperty[row.Property], row)
	}

	files := make([]string, 0, len(order))
	for _, property := range order {
		path, err := report.WriteProperty(outDir, property, byProperty[property], opts.Date)
		if err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	return files, nil
}

func readExport(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err,
				"FPS export %s not found; export it from your FPS database first", filepath.Base(path))
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	return data, nil
}
