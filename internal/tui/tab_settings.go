package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/valuate/internal/config"
	"github.com/theirongolddev/valuate/internal/tui/components"
	"github.com/theirongolddev/valuate/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldTheme = iota
	settingsFieldSamples
	settingsFieldSpread
	settingsFieldBins
	settingsFieldSeed
	settingsFieldExportDir
	settingsFieldSaveDefaults
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.saved = false

	// Saving defaults is an action, not a text field
	if a.settings.cursor == settingsFieldSaveDefaults {
		a.cfg.Defaults = a.inputs
		a.settings.saveErr = config.Save(a.cfg)
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	}

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldSamples:
		ti.Placeholder = "1000"
		ti.SetValue(strconv.Itoa(a.opts.Samples))
	case settingsFieldSpread:
		ti.Placeholder = "20 (percent of the DCF value)"
		ti.SetValue(strconv.FormatFloat(a.opts.SpreadPercent, 'f', -1, 64))
	case settingsFieldBins:
		ti.Placeholder = "50"
		ti.SetValue(strconv.Itoa(a.cfg.Simulation.Bins))
	case settingsFieldSeed:
		ti.Placeholder = "0 for a fresh seed each run"
		ti.SetValue(strconv.FormatUint(a.cfg.Simulation.Seed, 10))
	case settingsFieldExportDir:
		ti.Placeholder = "."
		ti.SetValue(a.cfg.Export.Dir)
	}

	a.settings.editing = true
	cmd := ti.Focus()
	a.settings.input = ti
	return a, cmd
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		cmd := a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, cmd
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited field, persists the config and returns a
// recompute command when simulation settings changed.
func (a *App) settingsSave() tea.Cmd {
	val := strings.TrimSpace(a.settings.input.Value())
	cfg := a.cfg
	rerun := false

	switch a.settings.cursor {
	case settingsFieldTheme:
		if _, ok := theme.Lookup(val); !ok {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return nil
		}
		cfg.Appearance.Theme = val
	case settingsFieldSamples:
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			a.settings.saveErr = fmt.Errorf("samples must be a positive whole number")
			return nil
		}
		cfg.Simulation.Samples = n
		rerun = true
	case settingsFieldSpread:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f < 0 {
			a.settings.saveErr = fmt.Errorf("spread must be a non-negative number")
			return nil
		}
		cfg.Simulation.SpreadPercent = f
		rerun = true
	case settingsFieldBins:
		n, err := strconv.Atoi(val)
		if err != nil || n < 1 {
			a.settings.saveErr = fmt.Errorf("bins must be a positive whole number")
			return nil
		}
		cfg.Simulation.Bins = n
		rerun = true
	case settingsFieldSeed:
		seed, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("seed must be a non-negative whole number")
			return nil
		}
		cfg.Simulation.Seed = seed
		rerun = true
	case settingsFieldExportDir:
		if val == "" {
			val = "."
		}
		cfg.Export.Dir = val
	}

	a.cfg = cfg
	theme.SetActive(cfg.Appearance.Theme)
	a.settings.saveErr = config.Save(cfg)
	if !rerun {
		return nil
	}

	a.opts = cfg.SimulateOptions()
	if a.opts.Seed == 0 {
		a.opts.Seed = newSeed()
	}
	return a.recompute()
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	seed := "fresh each run"
	if a.cfg.Simulation.Seed != 0 {
		seed = strconv.FormatUint(a.cfg.Simulation.Seed, 10)
	}

	fields := []struct{ label, value string }{
		{"Theme", a.cfg.Appearance.Theme},
		{"Samples", strconv.Itoa(a.cfg.Simulation.Samples)},
		{"Spread", fmt.Sprintf("%g%%", a.cfg.Simulation.SpreadPercent)},
		{"Histogram Bins", strconv.Itoa(a.cfg.Simulation.Bins)},
		{"Seed", seed},
		{"Export Directory", a.cfg.Export.Dir},
		{"Save As Defaults", "store current assumptions"},
	}

	innerW := components.CardInnerWidth(cw)
	var form strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			form.WriteString(markerStyle.Render("▸ "))
			form.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			form.WriteString(a.settings.input.View())
			form.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			form.WriteString(marker + label + value)
			if pad := innerW - lipgloss.Width(marker) - lipgloss.Width(label) - lipgloss.Width(value); pad > 0 {
				form.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", pad)))
			}
		} else {
			form.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			form.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			form.WriteString(valueStyle.Render(f.value))
		}
		form.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		form.WriteString("\n")
		form.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		form.WriteString("\n")
		form.WriteString(greenStyle.Render("Saved!"))
	}
	form.WriteString("\n")
	form.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var info strings.Builder
	info.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.Path()) + "\n")
	info.WriteString(labelStyle.Render("Current seed:    ") + valueStyle.Render(strconv.FormatUint(a.analysis.Sample.Seed, 10)) + "\n")
	info.WriteString(labelStyle.Render("Default revenue: ") + valueStyle.Render(fmt.Sprintf("$%gM", a.cfg.Defaults.AnnualRevenue)))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", form.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", info.String(), cw))
	return b.String()
}
