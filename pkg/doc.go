// Package pkg provides the core libraries for the arbcarbon calculator.
//
// # Overview
//
// arbcarbon computes forest carbon under the California Air Resources Board
// forest protocol from FPS database exports. The pkg directory is organized
// into:
//
//  1. [equations/volume] - Published stem volume equations 1-46
//  2. [equations/biomass] - Bark, live branch, and belowground biomass
//  3. [species] - FIA species registry with per-region equation assignments
//  4. [inventory] - FPS export parsing (ADMIN.csv, DBHCLS.csv)
//  5. [pipeline] - Orchestration (load → compute → report)
//  6. [report] - Per-property carbon report CSVs
//  7. [cache] / [store] - Memoization and run history backends
//  8. [api] - HTTP API server
//
// # Architecture
//
// The typical data flow:
//
//	FPS exports (ADMIN.csv + DBHCLS.csv)
//	         ↓
//	    [inventory] package (parse stands and trees)
//	         ↓
//	    [species] package (resolve codes to equation assignments)
//	         ↓
//	    [equations/volume] + [equations/biomass] (per-tree CVTS, bark, branch)
//	         ↓
//	    [report] package (one carbon CSV per property)
//
// # Quick Start
//
// Run the complete pipeline:
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    DataDir: "./exports",
//	    Region:  "WOR",
//	})
//
// Or compute one tree directly:
//
//	sp, _ := species.Lookup(202) // Douglas-fir
//	tc, _ := pipeline.ComputeTreeCarbon(sp, species.WOR, 18.5, 110)
//	fmt.Printf("%.3f tCO2e\n", tc.CarbonTree)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/equations/...          # Equation suites only
//
// [equations/volume]: https://pkg.go.dev/github.com/ecotrust/arbcarbon/pkg/equations/volume
// [equations/biomass]: https://pkg.go.dev/github.com/ecotrust/arbcarbon/pkg/equations/biomass
// [species]: https://pkg.go.dev/github.com/ecotrust/arbcarbon/pkg/species
// [inventory]: https://pkg.go.dev/github.com/ecotrust/arbcarbon/pkg/inventory
// [pipeline]: https://pkg.go.dev/github.com/ecotrust/arbcarbon/pkg/pipeline
// [report]: https://pkg.go.dev/github.com/ecotrust/arbcarbon/pkg/report
// [cache]: https://pkg.go.dev/github.com/ecotrust/arbcarbon/pkg/cache
// [store]: https://pkg.go.dev/github.com/ecotrust/arbcarbon/pkg/store
// [api]: https://pkg.go.dev/github.com/ecotrust/arbcarbon/pkg/api
package pkg
