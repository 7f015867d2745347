package cmd

import (
	"fmt"

	"github.com/theirongolddev/valuate/internal/export"

	"github.com/spf13/cobra"
)

var (
	flagExportDir  string
	flagExportOnly string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the projection and simulation CSV files",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagExportDir, "dir", "", "Output directory (default from config)")
	exportCmd.Flags().StringVar(&flagExportOnly, "only", "", "Write only one file: projection or simulation")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	rc, an, err := analyze(cmd)
	if err != nil {
		return err
	}

	dir := rc.cfg.Export.Dir
	if flagExportDir != "" {
		dir = flagExportDir
	}

	var written []string
	switch flagExportOnly {
	case "":
		files, err := export.WriteFiles(dir, an.Result, &an.Sample)
		if err != nil {
			return err
		}
		written = append(written, files.Projection, files.Simulation)
	case "projection":
		path, err := export.WriteProjectionFile(dir, an.Result)
		if err != nil {
			return err
		}
		written = append(written, path)
	case "simulation":
		path, err := export.WriteSimulationFile(dir, an.Sample)
		if err != nil {
			return err
		}
		written = append(written, path)
	default:
		return fmt.Errorf("--only must be projection or simulation, got %q", flagExportOnly)
	}

	for _, p := range written {
		fmt.Printf("  Wrote %s\n", p)
	}
	return nil
}
