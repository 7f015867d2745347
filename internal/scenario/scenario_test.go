package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/valuate/internal/model"
)

func writeScenario(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_TOMLOverlaysDefaults(t *testing.T) {
	path := writeScenario(t, "seed.toml", `
name = "Seed round"
annual_revenue = 2.5
growth_rate_percent = 80
`)

	sc, err := Load(path, model.DefaultInputs())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Name != "Seed round" {
		t.Errorf("Name = %q", sc.Name)
	}
	if sc.Inputs.AnnualRevenue != 2.5 || sc.Inputs.GrowthRatePercent != 80 {
		t.Errorf("overlay not applied: %+v", sc.Inputs)
	}
	if sc.Inputs.IndustryMultiple != model.DefaultIndustryMultiple {
		t.Errorf("IndustryMultiple = %v, want default", sc.Inputs.IndustryMultiple)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeScenario(t, "series-a.yaml", `
annual_revenue: 12
industry_multiple: 8.5
discount_rate_percent: 15
horizon_years: 5
`)

	sc, err := Load(path, model.DefaultInputs())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Name != "series-a" {
		t.Errorf("Name = %q, want file stem", sc.Name)
	}
	if sc.Inputs.IndustryMultiple != 8.5 || sc.Inputs.DiscountRatePercent != 15 {
		t.Errorf("inputs = %+v", sc.Inputs)
	}
}

func TestLoad_ExplicitZeroRevenueKept(t *testing.T) {
	path := writeScenario(t, "zero.toml", "annual_revenue = 0.0\n")

	sc, err := Load(path, model.DefaultInputs())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sc.Inputs.AnnualRevenue != 0 {
		t.Errorf("AnnualRevenue = %v, want explicit 0", sc.Inputs.AnnualRevenue)
	}
}

func TestLoad_RejectsOutOfRange(t *testing.T) {
	path := writeScenario(t, "bad.yml", "discount_rate_percent: 45\n")

	_, err := Load(path, model.DefaultInputs())
	if !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestLoad_RejectsUnknownYAMLField(t *testing.T) {
	path := writeScenario(t, "typo.yaml", "anual_revenue: 3\n")

	if _, err := Load(path, model.DefaultInputs()); err == nil {
		t.Fatal("Load accepted unknown field")
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeScenario(t, "inputs.json", "{}")

	_, err := Load(path, model.DefaultInputs())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml"), model.DefaultInputs()); err == nil {
		t.Fatal("Load of missing file returned nil error")
	}
}
