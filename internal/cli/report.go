package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecotrust/arbcarbon/pkg/pipeline"
	"github.com/ecotrust/arbcarbon/pkg/store"
)

// reportOpts holds the command-line flags for the report command.
type reportOpts struct {
	dataDir    string   // directory with ADMIN.csv and DBHCLS.csv
	outDir     string   // report output directory
	region     string   // assessment region
	properties []string // restrict to these properties
	years      []int    // restrict to these report years
	crosswalk  string   // TOML species crosswalk path
	refresh    bool     // bypass the cache
	noCache    bool     // disable caching entirely
	mongoURI   string   // record the run in MongoDB
}

// reportCommand creates the report command, the main entry point of the tool.
func (c *CLI) reportCommand() *cobra.Command {
	opts := reportOpts{dataDir: ".", region: pipeline.DefaultRegion}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute carbon reports from FPS exports",
		Long: `Compute per-tree carbon from FPS database exports and write one
report CSV per property.

The data directory must contain ADMIN.csv (stands) and DBHCLS.csv (trees),
exported from FPS. Inventories using local species codes need a TOML
crosswalk mapping them to FIA codes.

Examples:
  fps2arb report                                  # current directory, WOR equations
  fps2arb report -d ./exports -r CA               # California assessment area
  fps2arb report --property "North Fork" --year 2012
  fps2arb report --crosswalk species.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runReport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dataDir, "data-dir", "d", opts.dataDir, "directory containing the FPS exports")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "report directory (default <data-dir>/FPS2ARB_Outputs)")
	cmd.Flags().StringVarP(&opts.region, "region", "r", opts.region, "assessment region (WOR, WWA, EOR, EWA, CA)")
	cmd.Flags().StringSliceVar(&opts.properties, "property", nil, "restrict to these properties (repeatable)")
	cmd.Flags().IntSliceVar(&opts.years, "year", nil, "restrict to these report years (repeatable)")
	cmd.Flags().StringVar(&opts.crosswalk, "crosswalk", "", "TOML species crosswalk file")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "record the run in MongoDB")

	return cmd
}

func (c *CLI) runReport(ctx context.Context, opts reportOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Computing carbon for %s...", opts.dataDir))
	spin.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		DataDir:    opts.dataDir,
		OutDir:     opts.outDir,
		Region:     opts.region,
		Properties: opts.properties,
		Years:      opts.years,
		Crosswalk:  opts.crosswalk,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
	})
	if err != nil {
		spin.StopWithError("Report failed")
		return err
	}
	spin.Stop()

	printSuccess("Computed carbon for %d trees (%d without equations)",
		result.Stats.Computed, result.Stats.Skipped)
	printStats(result.Stats.Stands, result.Stats.Trees, result.CacheInfo.ComputeHit)

	if len(result.SkippedSpecies) > 0 {
		printWarning("No species match for: %v", result.SkippedSpecies)
		printDetail("Map these codes in a crosswalk file and pass --crosswalk")
	}

	for _, f := range result.Files {
		printFile(f)
	}

	if opts.mongoURI != "" {
		if err := c.recordRun(ctx, opts.mongoURI, result, opts); err != nil {
			printWarning("Run not recorded: %v", err)
		}
	}
	return nil
}

// recordRun stores the run record in MongoDB.
func (c *CLI) recordRun(ctx context.Context, uri string, result *pipeline.Result, opts reportOpts) error {
	st, err := store.NewMongoStore(ctx, store.MongoConfig{URI: uri})
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	run := store.NewRun(result, pipeline.Options{
		Region:     opts.region,
		Properties: opts.properties,
		Years:      opts.years,
	})
	if err := st.SaveRun(ctx, run); err != nil {
		return err
	}
	printDetail("Run recorded as %s", run.ID)
	return nil
}
