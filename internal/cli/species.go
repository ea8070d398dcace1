package cli

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ecotrust/arbcarbon/pkg/species"
)

// speciesCommand creates the species command for browsing the equation
// assignment tables.
func (c *CLI) speciesCommand() *cobra.Command {
	var (
		region      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "species [fia-code-or-name]",
		Short: "Browse species and their equation assignments",
		Long: `Browse the species registry and the per-region equation assignments.

Without arguments, lists every species. With an FIA code or common name,
shows that species' assignments in every assessment region.

Examples:
  fps2arb species                      # list all species
  fps2arb species -r CA                # assignments for California
  fps2arb species 202                  # Douglas-fir detail
  fps2arb species "red alder"
  fps2arb species --interactive        # browse in a TUI`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return runSpeciesTUI(region)
			}
			if len(args) == 1 {
				return printSpeciesDetail(args[0])
			}
			return printSpeciesList(region)
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", "", "show assignments for this region")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse species interactively")

	return cmd
}

func printSpeciesList(regionName string) error {
	var region species.Region
	if regionName != "" {
		var err error
		region, err = species.ParseRegion(regionName)
		if err != nil {
			return err
		}
	}

	for _, sp := range species.All() {
		line := fmt.Sprintf("%s  %-22s %s",
			StyleNumber.Render(fmt.Sprintf("%4d", sp.FIA)),
			sp.CommonName,
			StyleDim.Render(fmt.Sprintf("%-8s %5.1f lbs/ft3", sp.Kind, sp.Density)))
		if region != "" {
			asn, err := sp.Assignment(region)
			if err != nil {
				line += StyleDim.Render("  (no assignment)")
			} else {
				line += StyleDim.Render(fmt.Sprintf("  vol %s  bark BB_%d  branch %s",
					asn.Volume, asn.Bark, branchLabel(asn.Branch)))
			}
		}
		fmt.Println(line)
	}
	return nil
}

func printSpeciesDetail(arg string) error {
	sp, err := lookupSpeciesArg(arg)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(sp.CommonName))
	printKeyValue("FIA code", strconv.Itoa(sp.FIA))
	printKeyValue("Kind", sp.Kind.String())
	printKeyValue("Sp. gravity", fmt.Sprintf("%.3f", sp.SpecificGravity))
	printKeyValue("Density", fmt.Sprintf("%.2f lbs/ft3", sp.Density))
	printNewline()

	for _, region := range species.Regions {
		asn, err := sp.Assignment(region)
		if err != nil {
			printKeyValue(string(region), StyleDim.Render("no assignment"))
			continue
		}
		printKeyValue(string(region), fmt.Sprintf("vol %s  bark BB_%d  branch %s",
			asn.Volume, asn.Bark, branchLabel(asn.Branch)))
	}
	return nil
}

// lookupSpeciesArg resolves an argument as an FIA code or a common name.
func lookupSpeciesArg(arg string) (*species.Species, error) {
	if fia, err := strconv.Atoi(arg); err == nil {
		return species.Lookup(fia)
	}
	return species.LookupCommon(arg)
}

func branchLabel(n int) string {
	if n == 0 {
		return "--"
	}
	return fmt.Sprintf("BLB_%d", n)
}

// runSpeciesTUI starts the interactive species browser.
func runSpeciesTUI(regionName string) error {
	region := species.WOR
	if regionName != "" {
		var err error
		region, err = species.ParseRegion(regionName)
		if err != nil {
			return err
		}
	}

	model := newSpeciesListModel(species.All(), region)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}

	if m, ok := final.(speciesListModel); ok && m.Selected != nil {
		printNewline()
		return printSpeciesDetail(strconv.Itoa(m.Selected.FIA))
	}
	return nil
}
