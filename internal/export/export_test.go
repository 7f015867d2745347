package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/simulate"
	"github.com/theirongolddev/valuate/internal/valuation"
)

func mustResult(t *testing.T) model.Result {
	t.Helper()
	res, err := valuation.Compute(model.DefaultInputs())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	return res
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	recs, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	return recs
}

func TestWriteProjectionCSV(t *testing.T) {
	res := mustResult(t)

	var buf bytes.Buffer
	if err := WriteProjectionCSV(&buf, res); err != nil {
		t.Fatalf("WriteProjectionCSV: %v", err)
	}

	recs := readCSV(t, buf.Bytes())
	if len(recs) != 6 {
		t.Fatalf("rows = %d, want 6 (header + 5 years)", len(recs))
	}
	if strings.Join(recs[0], ",") != "Year,Projected Revenue ($M),AI-Predicted Revenue ($M)" {
		t.Fatalf("header = %v", recs[0])
	}
	if recs[1][0] != "Year 1" || recs[5][0] != "Year 5" {
		t.Errorf("year labels = %q..%q", recs[1][0], recs[5][0])
	}
	if recs[1][1] != "5" {
		t.Errorf("first projected revenue = %q, want 5", recs[1][1])
	}
}

func TestWriteSimulationCSV(t *testing.T) {
	s := simulate.Run(30, simulate.Options{Samples: 25, SpreadPercent: 20, Seed: 5})

	var buf bytes.Buffer
	if err := WriteSimulationCSV(&buf, s); err != nil {
		t.Fatalf("WriteSimulationCSV: %v", err)
	}

	recs := readCSV(t, buf.Bytes())
	if len(recs) != 26 {
		t.Fatalf("rows = %d, want 26", len(recs))
	}
	if recs[0][0] != "Simulated Valuation ($M)" {
		t.Fatalf("header = %v", recs[0])
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	res := mustResult(t)
	s := simulate.Run(res.DCFValuation, simulate.Options{Samples: 10, SpreadPercent: 20, Seed: 1})

	files, err := WriteFiles(dir, res, &s)
	if err != nil {
		t.Fatalf("WriteFiles: %v", err)
	}
	for _, p := range []string{files.Projection, files.Simulation} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing export %s: %v", p, err)
		}
	}
	if filepath.Base(files.Projection) != ProjectionFile {
		t.Errorf("projection file = %s", files.Projection)
	}

	only, err := WriteFiles(dir, res, nil)
	if err != nil {
		t.Fatalf("WriteFiles without sample: %v", err)
	}
	if only.Simulation != "" {
		t.Errorf("Simulation path = %q, want empty", only.Simulation)
	}
}

func TestWriteSimulationFileAlone(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "sim")
	s := simulate.Run(10, simulate.Options{Samples: 5, SpreadPercent: 20, Seed: 3})

	path, err := WriteSimulationFile(dir, s)
	if err != nil {
		t.Fatalf("WriteSimulationFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if recs := readCSV(t, data); len(recs) != 6 {
		t.Errorf("rows = %d, want 6", len(recs))
	}
	if _, err := os.Stat(filepath.Join(dir, ProjectionFile)); !os.IsNotExist(err) {
		t.Errorf("projection file should not exist, stat err = %v", err)
	}
}

func TestMarkdownAndHTML(t *testing.T) {
	res := mustResult(t)
	sum := simulate.Summarize(simulate.Run(res.DCFValuation, simulate.Options{Samples: 100, SpreadPercent: 20, Seed: 2}), 10)
	meta := ReportMeta{ID: "test-id", GeneratedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}

	mdText := Markdown(meta, res, sum)
	for _, want := range []string{"$25.00M - $29.98M", "Year 5", "test-id", "Monte Carlo"} {
		if !strings.Contains(mdText, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	html, err := HTML(meta, res, sum)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "<table>", "<h1>Startup Valuation Report</h1>"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
}
