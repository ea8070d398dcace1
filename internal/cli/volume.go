package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ecotrust/arbcarbon/pkg/equations/volume"
)

// volumeCommand creates the volume command for evaluating a single equation.
func (c *CLI) volumeCommand() *cobra.Command {
	var (
		metrics []string
		stems   int
		list    bool
	)

	cmd := &cobra.Command{
		Use:   "volume [equation] [dbh-in] [height-ft]",
		Short: "Evaluate a stem volume equation",
		Long: `Evaluate one of the published stem volume equations for a single tree.

DBH is in inches, height in feet, volumes in cubic feet.

Examples:
  fps2arb volume --list                 # show all equations
  fps2arb volume 1 18.5 110             # Douglas-fir, all metrics
  fps2arb volume 25 12 60 -m CVTS,CV4   # red alder, selected metrics
  fps2arb volume 46 8 20 --stems 3      # multi-stemmed mesquite`,
		Args: cobra.RangeArgs(0, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list || len(args) == 0 {
				printEquationList()
				return nil
			}
			if len(args) != 3 {
				return fmt.Errorf("expected <equation> <dbh-in> <height-ft>")
			}
			return runVolume(args, metrics, stems)
		},
	}

	cmd.Flags().StringSliceVarP(&metrics, "metric", "m", nil, "metrics to compute (default all supported)")
	cmd.Flags().IntVar(&stems, "stems", 1, "stem count for multi-stem equations")
	cmd.Flags().BoolVar(&list, "list", false, "list all volume equations")

	return cmd
}

func runVolume(args []string, metricNames []string, stems int) error {
	eq, err := volume.Lookup(args[0])
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
	if stems < 1 {
		stems = 1
	}

	metrics := eq.Metrics()
	if len(metricNames) > 0 {
		metrics = metrics[:0]
		for _, name := range metricNames {
			m, err := volume.ParseMetric(name)
			if err != nil {
				return err
			}
			metrics = append(metrics, m)
		}
	}

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Equation %s", eq.Number())) +
		" " + StyleDim.Render(eq.Description()))
	printKeyValue("Kind", eq.Kind().String())
	printKeyValue("DBH", fmt.Sprintf("%g in", dbh))
	printKeyValue("Height", fmt.Sprintf("%g ft", ht))
	printNewline()

	for _, m := range metrics {
		v, err := eq.CalcStems(m, dbh, ht, stems)
		if err != nil {
			return err
		}
		printKeyValue(string(m), StyleNumber.Render(fmt.Sprintf("%.4f", v)))
	}
	return nil
}

func printEquationList() {
	for _, eq := range volume.All() {
		fmt.Printf("%s  %s %s\n",
			StyleNumber.Render(fmt.Sprintf("%5s", eq.Number())),
			StyleDim.Render(fmt.Sprintf("[%s]", eq.Kind())),
			eq.Description())
	}
}
