package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/valuate/internal/advisor"
	"github.com/theirongolddev/valuate/internal/config"
	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/simulate"
	"github.com/theirongolddev/valuate/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

func testApp(t *testing.T) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := config.DefaultConfig()
	cfg.Export.Dir = t.TempDir()
	a := NewApp(cfg, model.DefaultInputs(), simulate.Options{Samples: 200, SpreadPercent: 20, Seed: 5})

	msg := computeCmd(a.inputs, a.opts, cfg.Simulation.Bins)()
	m, _ := a.Update(msg)
	m, _ = m.(App).Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	return m.(App)
}

func press(t *testing.T, a App, keys ...string) (App, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		var m tea.Model
		m, cmd = a.Update(msg)
		a = m.(App)
	}
	return a, cmd
}

func TestComputedMsgPopulatesDashboard(t *testing.T) {
	a := testApp(t)
	if !a.computed || a.computing {
		t.Fatalf("computed=%v computing=%v", a.computed, a.computing)
	}
	if len(a.analysis.Sample.Values) != 200 {
		t.Errorf("draws = %d, want 200", len(a.analysis.Sample.Values))
	}

	view := a.View()
	for _, want := range []string{"$25.00M", "$29.98M", "Overview"} {
		if !strings.Contains(view, want) {
			t.Errorf("overview missing %q", want)
		}
	}
}

func TestTabKeys(t *testing.T) {
	a := testApp(t)

	tests := []struct {
		key  string
		want int
	}{
		{"v", components.TabRevenue},
		{"s", components.TabSimulation},
		{"a", components.TabAdvisor},
		{"t", components.TabSettings},
		{"o", components.TabOverview},
		{"3", components.TabSimulation},
		{"right", components.TabAdvisor},
		{"left", components.TabSimulation},
	}
	for _, tt := range tests {
		a, _ = press(t, a, tt.key)
		if a.activeTab != tt.want {
			t.Errorf("after %q activeTab = %d, want %d", tt.key, a.activeTab, tt.want)
		}
		if a.View() == "" {
			t.Errorf("empty view on tab %d", a.activeTab)
		}
	}
}

func TestReseedChangesSeed(t *testing.T) {
	a := testApp(t)
	before := a.opts.Seed

	a, cmd := press(t, a, "r")
	if a.opts.Seed == before {
		t.Error("seed unchanged after reseed")
	}
	if !a.computing || cmd == nil {
		t.Error("reseed did not schedule a recompute")
	}
}

func TestAdvisorAsk(t *testing.T) {
	a := testApp(t)
	a, _ = press(t, a, "a", "/")
	if !a.advisor.typing {
		t.Fatal("advisor input not focused")
	}

	a, _ = press(t, a, "w", "h", "y", "?", "enter")
	if len(a.advisor.history) != 1 || a.advisor.history[0].answer != advisor.Reply {
		t.Fatalf("history = %+v", a.advisor.history)
	}

	// A blank question gets no reply.
	a, _ = press(t, a, "/", "enter")
	if len(a.advisor.history) != 1 {
		t.Errorf("blank question added a reply: %+v", a.advisor.history)
	}

	a, _ = press(t, a, "b")
	if a.advisor.history[0].answer != advisor.Boost() {
		t.Errorf("boost reply = %q", a.advisor.history[0].answer)
	}
	if a.analysis.Result.DCFValuation == 0 {
		t.Error("boost changed the valuation")
	}
}

func TestExportWritesFiles(t *testing.T) {
	a := testApp(t)
	a, cmd := press(t, a, "x")
	if cmd == nil {
		t.Fatal("export returned no command")
	}

	msg, ok := cmd().(ExportedMsg)
	if !ok {
		t.Fatal("export command did not return ExportedMsg")
	}
	if msg.Err != nil {
		t.Fatalf("export: %v", msg.Err)
	}
	for _, p := range []string{msg.Files.Projection, msg.Files.Simulation} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing export %s: %v", p, err)
		}
	}

	m, _ := a.Update(msg)
	if flash := m.(App).flash; !strings.Contains(flash, filepath.Base(msg.Files.Projection)) {
		t.Errorf("flash = %q", flash)
	}
}

func TestSettingsSaveSamples(t *testing.T) {
	a := testApp(t)
	a, _ = press(t, a, "t", "j")
	if a.settings.cursor != settingsFieldSamples {
		t.Fatalf("cursor = %d", a.settings.cursor)
	}

	a, _ = press(t, a, "enter")
	if !a.settings.editing {
		t.Fatal("not editing after enter")
	}
	a.settings.input.SetValue("300")
	a, cmd := press(t, a, "enter")
	if a.settings.saveErr != nil {
		t.Fatalf("save: %v", a.settings.saveErr)
	}
	if a.opts.Samples != 300 || cmd == nil {
		t.Errorf("samples = %d, recompute scheduled = %v", a.opts.Samples, cmd != nil)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if cfg.Simulation.Samples != 300 {
		t.Errorf("persisted samples = %d", cfg.Simulation.Samples)
	}
}

func TestInputValuesRoundTrip(t *testing.T) {
	in := model.DefaultInputs()
	got, err := newInputValues(in).inputs()
	if err != nil {
		t.Fatalf("inputs: %v", err)
	}
	if got != in {
		t.Errorf("got %+v, want %+v", got, in)
	}

	v := newInputValues(in)
	v.discount = "42"
	v.years = "2.5"
	if _, err := v.inputs(); err == nil {
		t.Error("invalid form values accepted")
	}
}

func TestFieldValidators(t *testing.T) {
	if floatIn(1, 100)("50") != nil || floatIn(1, 100)("0") == nil || floatIn(1, 100)("abc") == nil {
		t.Error("floatIn misbehaves")
	}
	if intIn(1, 30)("5") != nil || intIn(1, 30)("5.5") == nil || intIn(1, 30)("31") == nil {
		t.Error("intIn misbehaves")
	}
	if atLeast(0)("0") != nil || atLeast(0)("-1") == nil {
		t.Error("atLeast misbehaves")
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0
		for i, tab := range components.Tabs {
			w := len(tab.Name) + 2
			if got := a.tabAtX(pos + w/2); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, pos+w/2, got, i)
			}
			pos += w + 1
		}
	}
	if got := (App{}).tabAtX(10_000); got != -1 {
		t.Errorf("tabAtX(far right) = %d, want -1", got)
	}
}
