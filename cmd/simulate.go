package cmd

import (
	"fmt"

	"github.com/theirongolddev/valuate/internal/cli"
	"github.com/theirongolddev/valuate/internal/simulate"

	"github.com/spf13/cobra"
)

var flagHistBins int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Monte Carlo spread around the DCF valuation",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagHistBins, "bins", 12, "Histogram rows to print")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	rc, an, err := analyze(cmd)
	if err != nil {
		return err
	}
	if flagHistBins < 1 {
		return fmt.Errorf("--bins must be positive, got %d", flagHistBins)
	}
	sum := an.Summary

	fmt.Println()
	fmt.Println(cli.RenderTitle("MONTE CARLO SIMULATION"))
	fmt.Println(cli.RenderMuted(fmt.Sprintf("  %s draws  spread %s  seed %d",
		cli.FormatNumber(int64(sum.N)), cli.FormatPercent(rc.opts.SpreadPercent), an.Sample.Seed)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Statistic", "Valuation"},
		Rows: [][]string{
			{"DCF (center)", cli.FormatMillions(an.Result.DCFValuation)},
			{"Mean", cli.FormatMillions(sum.Mean)},
			{"Std Dev", cli.FormatMillions(sum.StdDev)},
			{"---"},
			{"Min", cli.FormatMillions(sum.Min)},
			{"Q1", cli.FormatMillions(sum.Q1)},
			{"Median", cli.FormatMillions(sum.Median)},
			{"Q3", cli.FormatMillions(sum.Q3)},
			{"Max", cli.FormatMillions(sum.Max)},
			{"---"},
			{"Whiskers", cli.FormatMillions(sum.LowerWhisker) + " - " + cli.FormatMillions(sum.UpperWhisker)},
			{"Outliers", cli.FormatNumber(int64(sum.Outliers))},
		},
	}))
	fmt.Println()

	hist := simulate.Summarize(an.Sample, flagHistBins)
	peak := 0
	for _, b := range hist.Bins {
		peak = max(peak, b.Count)
	}
	for _, b := range hist.Bins {
		label := fmt.Sprintf("%8.2f-%-8.2f", b.Lo, b.Hi)
		fmt.Println(cli.RenderHorizontalBar(label, float64(b.Count), float64(peak), len(label), 40))
	}
	fmt.Println()

	return nil
}
