// Package tui provides the interactive Bubble Tea dashboard for valuate.
package tui

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/valuate/internal/advisor"
	"github.com/theirongolddev/valuate/internal/config"
	"github.com/theirongolddev/valuate/internal/export"
	"github.com/theirongolddev/valuate/internal/model"
	"github.com/theirongolddev/valuate/internal/pipeline"
	"github.com/theirongolddev/valuate/internal/simulate"
	"github.com/theirongolddev/valuate/internal/tui/components"
	"github.com/theirongolddev/valuate/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ComputedMsg is sent when a valuation run finishes.
type ComputedMsg struct {
	Analysis pipeline.Analysis
	Err      error
}

// ExportedMsg reports the outcome of a CSV export.
type ExportedMsg struct {
	Files export.Files
	Err   error
}

// App is the root Bubble Tea model.
type App struct {
	// Assumptions and run settings
	cfg    config.Config
	inputs model.Inputs
	opts   simulate.Options

	// Latest run
	analysis   pipeline.Analysis
	computed   bool
	computing  bool
	computeErr error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	flash     string

	// Assumptions form (huh), open while non-nil
	form     *huh.Form
	formVals *inputValues

	// Per-tab state
	advisor  advisorState
	settings settingsState

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// NewApp creates the dashboard for in, using cfg for simulation, export and
// appearance settings.
func NewApp(cfg config.Config, in model.Inputs, opts simulate.Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	if opts.Seed == 0 {
		opts.Seed = newSeed()
	}

	return App{
		cfg:       cfg,
		inputs:    in,
		opts:      opts,
		computing: true,
		advisor:   newAdvisorState(),
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
		computeCmd(a.inputs, a.opts, a.cfg.Simulation.Bins),
	)
}

func newSeed() uint64 {
	return rand.Uint64() | 1
}

func computeCmd(in model.Inputs, opts simulate.Options, bins int) tea.Cmd {
	return func() tea.Msg {
		an, err := pipeline.Run(in, opts, bins)
		return ComputedMsg{Analysis: an, Err: err}
	}
}

func exportCmd(dir string, an pipeline.Analysis) tea.Cmd {
	return func() tea.Msg {
		files, err := export.WriteFiles(dir, an.Result, &an.Sample)
		return ExportedMsg{Files: files, Err: err}
	}
}

// recompute schedules a new run with the current inputs and options.
func (a *App) recompute() tea.Cmd {
	a.computing = true
	return tea.Batch(a.spinner.Tick, computeCmd(a.inputs, a.opts, a.cfg.Simulation.Bins))
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case ComputedMsg:
		a.computing = false
		a.computeErr = msg.Err
		if msg.Err != nil {
			a.flash = "Error: " + msg.Err.Error()
			return a, nil
		}
		a.analysis = msg.Analysis
		a.computed = true
		return a, nil

	case ExportedMsg:
		if msg.Err != nil {
			a.flash = "Export failed: " + msg.Err.Error()
		} else {
			a.flash = fmt.Sprintf("Exported %s", strings.Join(exportedNames(msg.Files), ", "))
		}
		return a, nil

	case spinner.TickMsg:
		if a.computing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	// Forward everything else (cursor blinks etc.) to the open form
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// The assumptions form intercepts all keys
	if a.form != nil {
		return a.updateForm(msg)
	}

	if a.activeTab == components.TabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}
	if a.activeTab == components.TabAdvisor && a.advisor.typing {
		return a.updateAdvisorInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case components.TabSettings:
		switch key {
		case "j", "down":
			a.settings.cursor = min(a.settings.cursor+1, settingsFieldCount-1)
			return a, nil
		case "k", "up":
			a.settings.cursor = max(a.settings.cursor-1, 0)
			return a, nil
		case "enter":
			return a.settingsStartEdit()
		}
	case components.TabAdvisor:
		switch key {
		case "/", "i", "enter":
			return a.advisorStartTyping()
		case "b":
			a.advisor.push("Boost my valuation", advisor.Boost())
			return a, nil
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "e":
		a.openForm()
		cmd := a.form.Init()
		return a, cmd
	case "x":
		if !a.computed {
			return a, nil
		}
		a.flash = "Exporting..."
		return a, exportCmd(a.cfg.Export.Dir, a.analysis)
	case "r":
		a.opts.Seed = newSeed()
		a.flash = fmt.Sprintf("Reseeded (%d)", a.opts.Seed)
		cmd := a.recompute()
		return a, cmd
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "1", "2", "3", "4", "5":
		a.activeTab = int(key[0] - '1')
	default:
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func exportedNames(f export.Files) []string {
	var names []string
	for _, p := range []string{f.Projection, f.Simulation} {
		if p != "" {
			names = append(names, filepath.Base(p))
		}
	}
	return names
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if a.form != nil {
		return a.form.View()
	}
	if !a.computed {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  valuate needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ valuate"))
	b.WriteString(subtitleStyle.Render(" · Startup Valuation"))
	b.WriteString("\n\n")
	if a.computeErr != nil {
		b.WriteString(errStyle.Render(a.computeErr.Error()))
		b.WriteString("\n\n")
		b.WriteString(subtitleStyle.Render("Press e to edit the assumptions, q to quit"))
	} else {
		b.WriteString(a.spinner.View())
		b.WriteString(subtitleStyle.Render(" Projecting revenue..."))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o v s a t", "Jump to tab"},
			{"1-5", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move in settings"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"e", "Edit assumptions"},
			{"x", "Export CSV files"},
			{"r", "Reseed simulation"},
			{"/", "Ask the advisor"},
			{"b", "Boost (advisor tab)"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	details := fmt.Sprintf("seed %d · %d draws", a.analysis.Sample.Seed, len(a.analysis.Sample.Values))
	if a.computing {
		details = a.spinner.View() + " " + details
	}
	statusBar := components.RenderStatusBar(w, a.flash, details)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case components.TabOverview:
		content = a.renderOverviewTab(cw)
	case components.TabRevenue:
		content = a.renderRevenueTab(cw)
	case components.TabSimulation:
		content = a.renderSimulationTab(cw)
	case components.TabAdvisor:
		content = a.renderAdvisorTab(cw)
	case components.TabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
