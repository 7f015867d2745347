package cmd

import (
	"fmt"

	"github.com/theirongolddev/valuate/internal/cli"

	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Revenue projection with trend, sparkline and bar chart",
	RunE:  runProject,
}

func init() {
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	_, an, err := analyze(cmd)
	if err != nil {
		return err
	}
	res := an.Result
	projected := res.ProjectedSeries()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("REVENUE PROJECTION  %d years", res.Inputs.HorizonYears)))
	fmt.Println()
	fmt.Print(cli.RenderTable(projectionTable(res)))
	fmt.Println()

	fmt.Printf("  Projected  %s\n", cli.RenderSparkline(projected))
	fmt.Printf("  Fitted     %s\n", cli.RenderSparkline(res.FittedSeries()))
	fmt.Println()

	peak := 0.0
	for _, v := range projected {
		peak = max(peak, v)
	}
	for i, v := range projected {
		label := fmt.Sprintf("%s (%s)", cli.YearLabel(i+1), cli.FormatPercent(an.Shares[i]))
		fmt.Println(cli.RenderHorizontalBar(label, v, peak, 18, 40))
	}
	fmt.Println()

	return nil
}
