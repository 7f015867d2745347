package cmd

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/valuate/internal/export"
)

func TestExportCommandLayersScenarioAndFlags(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	out := t.TempDir()

	sc := filepath.Join(t.TempDir(), "seed-round.yaml")
	if err := os.WriteFile(sc, []byte("annual_revenue: 2\nhorizon_years: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	rootCmd.SetArgs([]string{
		"export", "--dir", out, "--only", "projection",
		"--scenario", sc, "--years", "4", "--samples", "10", "--seed", "9", "-q",
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := os.Open(filepath.Join(out, export.ProjectionFile))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// The flag overrides the scenario horizon; the scenario revenue survives.
	if len(recs) != 5 {
		t.Fatalf("rows = %d, want header + 4 years", len(recs))
	}
	if recs[1][1] != "2" {
		t.Errorf("year 1 revenue = %q, want 2", recs[1][1])
	}
	if _, err := os.Stat(filepath.Join(out, export.SimulationFile)); !os.IsNotExist(err) {
		t.Errorf("simulation file written with --only projection")
	}
}

func TestSensitivityRejectsOversizedAxis(t *testing.T) {
	t.Cleanup(func() { flagSweepSteps = 5 })

	for _, steps := range []string{"0", "16", "100000"} {
		rootCmd.SetArgs([]string{"sensitivity", "--steps", steps, "-q"})
		err := rootCmd.Execute()
		if err == nil || !strings.Contains(err.Error(), "--steps") {
			t.Errorf("--steps %s: err = %v, want a --steps range error", steps, err)
		}
	}
}

func TestSetupFloat(t *testing.T) {
	tests := []struct {
		in      string
		lo, hi  float64
		wantErr bool
	}{
		{"5", 0, -1, false},
		{"-1", 0, -1, true},
		{"1e9", 0, -1, false},
		{"abc", 0, -1, true},
		{"20", 1, 20, false},
		{"20.5", 1, 20, true},
	}
	for _, tt := range tests {
		err := setupFloat(tt.lo, tt.hi)(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("setupFloat(%g, %g)(%q) err = %v, wantErr %v", tt.lo, tt.hi, tt.in, err, tt.wantErr)
		}
	}
}
