// Package cmd implements the valuate CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/valuate/internal/cli"
	"github.com/theirongolddev/valuate/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	d := cfg.Defaults
	fmt.Println("  [Defaults]")
	fmt.Printf("    Annual revenue:    %s\n", cli.FormatMillions(d.AnnualRevenue))
	fmt.Printf("    Growth rate:       %s\n", cli.FormatPercent(d.GrowthRatePercent))
	fmt.Printf("    Profit margin:     %s\n", cli.FormatPercent(d.ProfitMarginPercent))
	fmt.Printf("    Industry multiple: %s\n", cli.FormatMultiple(d.IndustryMultiple))
	fmt.Printf("    Discount rate:     %s\n", cli.FormatPercent(d.DiscountRatePercent))
	fmt.Printf("    Horizon:           %d years\n", d.HorizonYears)
	fmt.Println()

	fmt.Println("  [Simulation]")
	fmt.Printf("    Samples: %s\n", cli.FormatNumber(int64(cfg.Simulation.Samples)))
	fmt.Printf("    Spread:  %s\n", cli.FormatPercent(cfg.Simulation.SpreadPercent))
	fmt.Printf("    Bins:    %d\n", cfg.Simulation.Bins)
	if cfg.Simulation.Seed != 0 {
		fmt.Printf("    Seed:    %d\n", cfg.Simulation.Seed)
	} else {
		fmt.Println("    Seed:    clock")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Export]")
	fmt.Printf("    Directory: %s\n", cfg.Export.Dir)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", cfg.Server.Addr)
	fmt.Printf("    Events buffer: %d\n", cfg.Server.EventsBuffer)
	fmt.Println()

	fmt.Println("  Run `valuate setup` to reconfigure.")
	return nil
}
