// Package export writes valuation results to CSV and report formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/theirongolddev/valuate/internal/cli"
	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/simulate"
)

// Default file names for the two downloads.
const (
	ProjectionFile = "valuation_report.csv"
	SimulationFile = "monte_carlo_simulation.csv"
)

// Column headers.
var (
	ProjectionHeader = []string{"Year", "Projected Revenue ($M)", "AI-Predicted Revenue ($M)"}
	SimulationHeader = []string{"Simulated Valuation ($M)"}
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteProjectionCSV writes one row per projection year.
func WriteProjectionCSV(w io.Writer, res model.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ProjectionHeader); err != nil {
		return fmt.Errorf("writing projection header: %w", err)
	}
	for _, row := range res.Projection {
		rec := []string{
			cli.YearLabel(row.Year),
			formatFloat(row.ProjectedRevenue),
			formatFloat(row.FittedRevenue),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing projection row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSimulationCSV writes one row per simulated valuation.
func WriteSimulationCSV(w io.Writer, s simulate.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SimulationHeader); err != nil {
		return fmt.Errorf("writing simulation header: %w", err)
	}
	for _, v := range s.Values {
		if err := cw.Write([]string{formatFloat(v)}); err != nil {
			return fmt.Errorf("writing simulation row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Files lists the paths written by WriteFiles.
type Files struct {
	Projection string
	Simulation string
}

// WriteFiles writes both CSV exports into dir, creating it if needed.
// A nil sample skips the simulation file.
func WriteFiles(dir string, res model.Result, sample *simulate.Sample) (Files, error) {
	var out Files
	var err error
	if out.Projection, err = WriteProjectionFile(dir, res); err != nil {
		return Files{}, err
	}
	if sample != nil {
		if out.Simulation, err = WriteSimulationFile(dir, *sample); err != nil {
			return Files{}, err
		}
	}
	return out, nil
}

// WriteProjectionFile writes ProjectionFile into dir and returns its path.
func WriteProjectionFile(dir string, res model.Result) (string, error) {
	path := filepath.Join(dir, ProjectionFile)
	return path, writeFile(path, func(w io.Writer) error {
		return WriteProjectionCSV(w, res)
	})
}

// WriteSimulationFile writes SimulationFile into dir and returns its path.
func WriteSimulationFile(dir string, s simulate.Sample) (string, error) {
	path := filepath.Join(dir, SimulationFile)
	return path, writeFile(path, func(w io.Writer) error {
		return WriteSimulationCSV(w, s)
	})
}

func writeFile(path string, fill func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // export path chosen by the local user
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
