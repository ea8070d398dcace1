package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ecotrust/arbcarbon/pkg/pipeline"
	"github.com/ecotrust/arbcarbon/pkg/species"
)

// carbonCommand creates the carbon command, which runs the full per-tree
// chain for a single tree without an inventory.
func (c *CLI) carbonCommand() *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "carbon <fia-code-or-name> <dbh-in> <height-ft>",
		Short: "Compute carbon for a single tree",
		Long: `Compute stem volume, biomass, and carbon for one tree.

Examples:
  fps2arb carbon 202 18.5 110          # Douglas-fir in western Oregon
  fps2arb carbon "red alder" 12 60 -r WWA`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCarbon(args, region)
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", pipeline.DefaultRegion, "assessment region")
	return cmd
}

func runCarbon(args []string, regionName string) error {
	sp, err := lookupSpeciesArg(args[0])
	if err != nil {
		return err
	}
	region, err := species.ParseRegion(regionName)
	if err != nil {
		return err
	}
	dbh, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid dbh %q", args[1])
	}
	ht, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("invalid height %q", args[2])
	}

	tc, err := pipeline.ComputeTreeCarbon(sp, region, dbh, ht)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(sp.CommonName) + " " +
		StyleDim.Render(fmt.Sprintf("%g in / %g ft, %s", dbh, ht, region)))
	printKeyValue("Equations", fmt.Sprintf("vol %s  bark BB_%d  branch %s",
		tc.VolumeEq, tc.BarkEq, branchLabel(tc.BranchEq)))
	printNewline()
	printKeyValue("CVTS", fmt.Sprintf("%.3f ft3", tc.CVTS))
	printKeyValue("Stem", fmt.Sprintf("%.2f kg", tc.StemKg))
	printKeyValue("Bark", fmt.Sprintf("%.2f kg", tc.BarkKg))
	printKeyValue("Branch", fmt.Sprintf("%.2f kg", tc.BranchKg))
	printKeyValue("Aboveground", fmt.Sprintf("%.2f kg", tc.AbovegroundKg))
	printKeyValue("Belowground", fmt.Sprintf("%.2f kg", tc.BelowgroundKg))
	printKeyValue("Live tree", fmt.Sprintf("%.2f kg", tc.LiveTreeKg))
	printNewline()
	printKeyValue("Carbon", StyleNumber.Render(fmt.Sprintf("%.4f tCO2e", tc.CarbonTree)))
	return nil
}
