package pipeline

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ecotrust/arbcarbon/pkg/cache"
	"github.com/ecotrust/arbcarbon/pkg/errors"
)

const testAdmin = `STD_ID,RPT_YR,MSMT_YR,Property,AREA_GIS
S001,2012,2011,North Fork,40
S002,2012,2011,North Fork,10
S003,2012,2010,Ridge,5
`

// S001 has a live Douglas-fir and a cut one; S002 a live western hemlock;
// S003 a live tree of an unknown species code and a 2013 remeasurement.
const testTrees = `RPT_YR,STD_ID,PlotTree,GRP,SPECIES,TREES,DBH,HEIGHT
2012,S001,1-01,..,DF,12.5,14.2,98
2012,S001,1-02,.C,DF,4,22.1,130
2012,S002,2-01,..,WH,8,11,76
2012,S003,3-01,..,ZZ,20,9.6,55
2013,S003,3-02,..,ZZ,20,10.1,58
`

const testCrosswalk = `
[[species]]
code = "DF"
fia = 202

[[species]]
code = "WH"
fia = 263
`

func writeTestData(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	for name, data := range map[string]string{
		"ADMIN.csv":      testAdmin,
		"DBHCLS.csv":     testTrees,
		"crosswalk.toml": testCrosswalk,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return Options{
		DataDir:   dir,
		Region:    "WOR",
		Crosswalk: filepath.Join(dir, "crosswalk.toml"),
		Date:      time.Date(2016, 5, 11, 0, 0, 0, 0, time.UTC),
		Logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
}

func testRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestExecute(t *testing.T) {
	opts := writeTestData(t)
	r := testRunner(nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Stats.Stands != 3 || result.Stats.Trees != 5 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if len(result.Rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(result.Rows))
	}
	// Live DF and WH compute; the cut tree and the two unknown-species
	// trees carry through blank.
	if result.Stats.Computed != 2 || result.Stats.Skipped != 3 {
		t.Errorf("computed/skipped = %d/%d", result.Stats.Computed, result.Stats.Skipped)
	}
	if len(result.SkippedSpecies) != 1 || result.SkippedSpecies[0] != "ZZ" {
		t.Errorf("SkippedSpecies = %v", result.SkippedSpecies)
	}

	// Rows sort by property, year, stand, tree.
	if result.Rows[0].StandID != "S001" || result.Rows[len(result.Rows)-1].Property != "Ridge" {
		t.Errorf("row order: first %+v last %+v", result.Rows[0], result.Rows[len(result.Rows)-1])
	}

	// One report per property.
	if len(result.Files) != 2 {
		t.Fatalf("files = %v", result.Files)
	}
	for _, f := range result.Files {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("report not written: %v", err)
		}
	}
	if !strings.HasSuffix(result.Files[0], "FPS2ARB_North Fork_2016-05-11.csv") {
		t.Errorf("file name = %q", result.Files[0])
	}
}

// The computed columns must stay internally consistent.
func TestComputedRowArithmetic(t *testing.T) {
	opts := writeTestData(t)
	r := testRunner(nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	checked := 0
	for _, row := range result.Rows {
		if !row.Computed {
			continue
		}
		checked++
		if row.CVTS <= 0 || row.WoodDensity <= 0 {
			t.Errorf("%s/%s: CVTS=%v density=%v", row.StandID, row.PlotTree, row.CVTS, row.WoodDensity)
		}
		approx(t, "stem kg", row.StemKg, row.CVTS*row.WoodDensity*LbsToKg)
		approx(t, "stem tons", row.StemTons, row.CVTS*row.WoodDensity/LbsPerTon)
		approx(t, "aboveground", row.AbovegroundKg, row.StemKg+row.BarkKg+row.BranchKg)
		approx(t, "live tree", row.LiveTreeKg, row.AbovegroundKg+row.BelowgroundKg)
		approx(t, "carbon/tree", row.CarbonTree, row.LiveTreeKg*CO2PerKgBiomass)
		approx(t, "carbon/acre", row.CarbonAcre, row.CarbonTree*row.TPA)
		approx(t, "carbon total", row.CarbonTotal, row.CarbonAcre*row.AreaGIS)
		if row.BelowgroundKg <= 0 || row.BelowgroundKg >= row.AbovegroundKg {
			t.Errorf("%s/%s: belowground %v vs aboveground %v",
				row.StandID, row.PlotTree, row.BelowgroundKg, row.AbovegroundKg)
		}
	}
	if checked != 2 {
		t.Errorf("checked %d computed rows, want 2", checked)
	}
}

func approx(t *testing.T, what string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9*math.Max(1, math.Abs(want)) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func TestExecuteCaching(t *testing.T) {
	opts := writeTestData(t)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := testRunner(fc)
	defer r.Close()

	ctx := context.Background()
	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LoadHit || first.CacheInfo.ComputeHit {
		t.Error("first run should not hit the cache")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LoadHit || !second.CacheInfo.ComputeHit {
		t.Errorf("second run cache info = %+v", second.CacheInfo)
	}
	if len(second.Rows) != len(first.Rows) {
		t.Errorf("cached rows = %d, want %d", len(second.Rows), len(first.Rows))
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LoadHit || third.CacheInfo.ComputeHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestFilters(t *testing.T) {
	opts := writeTestData(t)
	r := testRunner(nil)
	defer r.Close()
	ctx := context.Background()

	// Year filter drops the 2013 remeasurement.
	yearOpts := opts
	yearOpts.Years = []int{2012}
	result, err := r.Execute(ctx, yearOpts)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 4 {
		t.Errorf("year filter rows = %d, want 4", len(result.Rows))
	}

	// Property filter keeps only Ridge stands.
	propOpts := opts
	propOpts.Properties = []string{"Ridge"}
	result, err = r.Execute(ctx, propOpts)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 2 || len(result.Files) != 1 {
		t.Errorf("property filter rows = %d files = %d", len(result.Rows), len(result.Files))
	}
}

func TestInvalidRegion(t *testing.T) {
	opts := writeTestData(t)
	opts.Region = "MARS"
	r := testRunner(nil)
	defer r.Close()

	_, err := r.Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeInvalidRegion) {
		t.Errorf("error = %v, want INVALID_REGION", err)
	}
}

func TestMissingExports(t *testing.T) {
	opts := Options{
		DataDir: t.TempDir(),
		Logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	r := testRunner(nil)
	defer r.Close()

	_, err := r.Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}
