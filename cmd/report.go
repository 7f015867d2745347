package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/valuate/internal/export"

	"github.com/spf13/cobra"
)

var (
	flagReportFormat string
	flagReportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a markdown or HTML valuation report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&flagReportFormat, "format", "f", "md", "Report format: md or html")
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if flagReportFormat != "md" && flagReportFormat != "html" {
		return fmt.Errorf("--format must be md or html, got %q", flagReportFormat)
	}
	_, an, err := analyze(cmd)
	if err != nil {
		return err
	}

	meta := export.ReportMeta{ID: uuid.NewString(), GeneratedAt: time.Now()}
	var out string
	if flagReportFormat == "html" {
		out, err = export.HTML(meta, an.Result, an.Summary)
		if err != nil {
			return err
		}
	} else {
		out = export.Markdown(meta, an.Result, an.Summary)
	}

	if flagReportOut == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(flagReportOut, []byte(out), 0o600); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	progressf("  Report %s written to %s\n", meta.ID, flagReportOut)
	return nil
}
