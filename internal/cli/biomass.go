package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ecotrust/arbcarbon/pkg/equations/biomass"
)

// biomassCommand creates the biomass command for evaluating bark, branch,
// and belowground biomass equations directly.
func (c *CLI) biomassCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "biomass",
		Short: "Evaluate biomass equations",
		Long: `Evaluate the published biomass equations for a single tree.

Bark and branch equations take DBH in centimeters and height in meters and
return kilograms of dry biomass. Shell-form bark equations also need the
species wood density (lbs per cubic foot).`,
	}

	cmd.AddCommand(c.biomassComponentCommand(biomass.Bark))
	cmd.AddCommand(c.biomassComponentCommand(biomass.Branch))
	cmd.AddCommand(c.belowgroundCommand())

	return cmd
}

func (c *CLI) biomassComponentCommand(component biomass.Component) *cobra.Command {
	var density float64

	name := "bark"
	lookup := biomass.LookupBark
	if component == biomass.Branch {
		name = "branch"
		lookup = biomass.LookupBranch
	}

	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <equation> <dbh-cm> <height-m>", name),
		Short: fmt.Sprintf("Evaluate a %s biomass equation", name),
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid equation number %q", args[0])
			}
			eq, err := lookup(number)
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

			kg, err := eq.Calc(dbh, ht, density)
			if err != nil {
				return err
			}

			printKeyValue("Equation", eq.String())
			printKeyValue("Biomass", StyleNumber.Render(fmt.Sprintf("%.3f kg", kg)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&density, "density", 0, "wood density in lbs/ft3 (shell-form bark equations)")
	return cmd
}

func (c *CLI) belowgroundCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "belowground <aboveground-kg>",
		Short: "Estimate belowground biomass from aboveground biomass",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ag, err := strconv.ParseFloat(args[0], 64)
			if err != nil || ag < 0 {
				return fmt.Errorf("invalid aboveground biomass %q", args[0])
			}
			printKeyValue("Belowground", StyleNumber.Render(fmt.Sprintf("%.3f kg", biomass.Belowground(ag))))
			return nil
		},
	}
}
