package cmd

import (
	"fmt"

	"github.com/theirongolddev/valuate/internal/cli"
	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/pipeline"
	"github.com/theirongolddev/valuate/internal/valuation"

	"github.com/spf13/cobra"
)

var (
	flagSweepSteps        int
	flagSweepGrowthStep   float64
	flagSweepDiscountStep float64
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "DCF valuation across growth and discount rates",
	RunE:  runSensitivity,
}

func init() {
	sensitivityCmd.Flags().IntVar(&flagSweepSteps, "steps", 5, fmt.Sprintf("Points per axis (1-%d)", pipeline.MaxAxisPoints))
	sensitivityCmd.Flags().Float64Var(&flagSweepGrowthStep, "growth-step", 5, "Growth rate spacing (percentage points)")
	sensitivityCmd.Flags().Float64Var(&flagSweepDiscountStep, "discount-step", 1, "Discount rate spacing (percentage points)")
	rootCmd.AddCommand(sensitivityCmd)
}

func runSensitivity(cmd *cobra.Command, _ []string) error {
	if flagSweepSteps < 1 || flagSweepSteps > pipeline.MaxAxisPoints {
		return fmt.Errorf("--steps must be in [1, %d], got %d", pipeline.MaxAxisPoints, flagSweepSteps)
	}
	rc, err := resolve(cmd)
	if err != nil {
		return err
	}
	in := rc.inputs

	growths := pipeline.Axis(in.GrowthRatePercent, flagSweepGrowthStep,
		model.MinGrowthRatePercent, model.MaxGrowthRatePercent, flagSweepSteps)
	discounts := pipeline.Axis(in.DiscountRatePercent, flagSweepDiscountStep,
		model.MinDiscountRatePercent, model.MaxDiscountRatePercent, flagSweepSteps)

	grid, err := pipeline.Sweep(in, growths, discounts, func(current, total int) {
		progressf("\r  Valuing [%d/%d]", current, total)
	})
	if err != nil {
		return err
	}
	progressf("\n")

	headers := []string{"Growth \\ Discount"}
	for _, d := range grid.Discounts {
		headers = append(headers, cli.FormatPercent(d))
	}
	rows := make([][]string, 0, len(grid.Growths))
	for i, g := range grid.Growths {
		row := []string{cli.FormatPercent(g)}
		for j := range grid.Discounts {
			row = append(row, cli.FormatMillions(grid.At(i, j).DCFValuation))
		}
		rows = append(rows, row)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("DCF SENSITIVITY"))
	fmt.Println(cli.RenderMuted("  Multiple valuation is unaffected: " + cli.FormatMillions(valuation.MultipleValuation(in.AnnualRevenue, in.IndustryMultiple))))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{Headers: headers, Rows: rows}))

	return nil
}
