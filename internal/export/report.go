package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/theirongolddev/valuate/internal/advisor"
	"github.com/theirongolddev/valuate/internal/cli"
	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/simulate"
)

// ReportMeta identifies one generated report.
type ReportMeta struct {
	ID          string
	GeneratedAt time.Time
}

// Markdown renders a valuation report as GitHub-flavoured markdown.
func Markdown(meta ReportMeta, res model.Result, sum simulate.Summary) string {
	in := res.Inputs
	var b strings.Builder

	b.WriteString("# Startup Valuation Report\n\n")
	if meta.ID != "" {
		fmt.Fprintf(&b, "Report `%s`, generated %s.\n\n", meta.ID, meta.GeneratedAt.UTC().Format(time.RFC3339))
	}

	fmt.Fprintf(&b, "**Estimated valuation:** %s\n\n", cli.FormatRange(res.MultipleValuation, res.DCFValuation))

	b.WriteString("## Assumptions\n\n")
	b.WriteString("| Input | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Annual revenue | %s |\n", cli.FormatMillions(in.AnnualRevenue))
	fmt.Fprintf(&b, "| Growth rate | %s |\n", cli.FormatPercent(in.GrowthRatePercent))
	fmt.Fprintf(&b, "| Profit margin | %s |\n", cli.FormatPercent(in.ProfitMarginPercent))
	fmt.Fprintf(&b, "| Industry multiple | %s |\n", cli.FormatMultiple(in.IndustryMultiple))
	fmt.Fprintf(&b, "| Discount rate | %s |\n", cli.FormatPercent(in.DiscountRatePercent))
	fmt.Fprintf(&b, "| Horizon | %d years |\n\n", in.HorizonYears)

	b.WriteString("## Valuation\n\n")
	fmt.Fprintf(&b, "- Revenue multiple: %s\n", cli.FormatMillions(res.MultipleValuation))
	fmt.Fprintf(&b, "- Discounted cash flow: %s\n\n", cli.FormatMillions(res.DCFValuation))

	b.WriteString("## Revenue projection\n\n")
	fmt.Fprintf(&b, "| %s |\n|---|---:|---:|\n", strings.Join(ProjectionHeader, " | "))
	for _, row := range res.Projection {
		fmt.Fprintf(&b, "| %s | %s | %s |\n",
			cli.YearLabel(row.Year), cli.FormatAmount(row.ProjectedRevenue), cli.FormatAmount(row.FittedRevenue))
	}
	b.WriteString("\n")

	if sum.N > 0 {
		b.WriteString("## Monte Carlo spread\n\n")
		fmt.Fprintf(&b, "%s simulated valuations around the DCF value.\n\n", cli.FormatNumber(int64(sum.N)))
		b.WriteString("| Statistic | $M |\n|---|---:|\n")
		for _, kv := range []struct {
			k string
			v float64
		}{
			{"Mean", sum.Mean},
			{"Std. dev.", sum.StdDev},
			{"Min", sum.Min},
			{"Q1", sum.Q1},
			{"Median", sum.Median},
			{"Q3", sum.Q3},
			{"Max", sum.Max},
		} {
			fmt.Fprintf(&b, "| %s | %s |\n", kv.k, cli.FormatAmount(kv.v))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "_%s_\n", advisor.Tagline)
	return b.String()
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders the markdown report as a standalone HTML document.
func HTML(meta ReportMeta, res model.Result, sum simulate.Summary) (string, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(meta, res, sum)), &body); err != nil {
		return "", fmt.Errorf("rendering report html: %w", err)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>Startup Valuation Report</title>\n</head>\n<body>\n")
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
