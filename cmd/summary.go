package cmd

import (
	"fmt"

	"github.com/theirongolddev/valuate/internal/advisor"
	"github.com/theirongolddev/valuate/internal/cli"
	"github.com/theirongolddev/valuate/internal/model"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Valuation range, key figures and projection table",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	rc, an, err := analyze(cmd)
	if err != nil {
		return err
	}
	res := an.Result
	in := res.Inputs

	title := "STARTUP VALUATION"
	if rc.scenario != "" {
		title += "  " + rc.scenario
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println(cli.RenderMuted("  " + advisor.Tagline))
	fmt.Println()
	fmt.Println(cli.RenderHeadline("Estimated Valuation Range", cli.FormatRange(res.MultipleValuation, res.DCFValuation)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Annual Revenue", cli.FormatMillions(in.AnnualRevenue)},
			{"Growth Rate", cli.FormatPercent(in.GrowthRatePercent)},
			{"Profit Margin", cli.FormatPercent(in.ProfitMarginPercent)},
			{"Industry Multiple", cli.FormatMultiple(in.IndustryMultiple)},
			{"Discount Rate", cli.FormatPercent(in.DiscountRatePercent)},
			{"Horizon", fmt.Sprintf("%d years", in.HorizonYears)},
			{"---"},
			{"Multiple Valuation", cli.FormatMillions(res.MultipleValuation)},
			{"DCF Valuation", cli.FormatMillions(res.DCFValuation)},
			{"DCF vs Multiple", cli.FormatDelta(res.DCFValuation, res.MultipleValuation)},
		},
	}))
	fmt.Println()
	fmt.Print(cli.RenderTable(projectionTable(res)))

	return nil
}

func projectionTable(res model.Result) cli.Table {
	rows := make([][]string, 0, len(res.Projection))
	for _, row := range res.Projection {
		rows = append(rows, []string{
			cli.YearLabel(row.Year),
			cli.FormatMillions(row.ProjectedRevenue),
			cli.FormatMillions(row.FittedRevenue),
		})
	}
	return cli.Table{
		Headers: []string{"Year", "Projected Revenue", "AI-Predicted Revenue"},
		Rows:    rows,
	}
}
