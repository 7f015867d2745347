// Package theme defines the color themes shared by the valuate dashboard
// and the plain CLI output.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name string

	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceBright lipgloss.Color // Active tab, selected row
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // Focused cards and dialogs

	TextDim     lipgloss.Color // Hints, disabled
	TextMuted   lipgloss.Color // Labels, metadata
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	Green       lipgloss.Color
	GreenBright lipgloss.Color
	Orange      lipgloss.Color
	Red         lipgloss.Color
	Blue        lipgloss.Color
	Yellow      lipgloss.Color
	Magenta     lipgloss.Color
	Cyan        lipgloss.Color

	// Valuation roles
	Projected lipgloss.Color // compounded revenue series
	Fitted    lipgloss.Color // polynomial trend series
	Money     lipgloss.Color // valuation figures
}

// withRoles fills the valuation roles from the base palette.
func withRoles(t Theme) Theme {
	t.Projected = t.Blue
	t.Fitted = t.Orange
	t.Money = t.GreenBright
	return t
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default, a warm paper-inspired dark palette.
var FlexokiDark = withRoles(Theme{
	Name:          "flexoki-dark",
	Background:    "#100F0F",
	Surface:       "#1C1B1A",
	SurfaceBright: "#343331",
	Border:        "#403E3C",
	BorderAccent:  "#3AA99F",
	TextDim:       "#575653",
	TextMuted:     "#878580",
	TextPrimary:   "#FFFCF0",
	Accent:        "#3AA99F",
	AccentBright:  "#5BC8BE",
	Green:         "#879A39",
	GreenBright:   "#A3B859",
	Orange:        "#DA702C",
	Red:           "#D14D41",
	Blue:          "#4385BE",
	Yellow:        "#D0A215",
	Magenta:       "#CE5D97",
	Cyan:          "#24837B",
})

// CatppuccinMocha is a soft pastel palette.
var CatppuccinMocha = withRoles(Theme{
	Name:          "catppuccin-mocha",
	Background:    "#1E1E2E",
	Surface:       "#313244",
	SurfaceBright: "#585B70",
	Border:        "#585B70",
	BorderAccent:  "#89B4FA",
	TextDim:       "#6C7086",
	TextMuted:     "#A6ADC8",
	TextPrimary:   "#CDD6F4",
	Accent:        "#89B4FA",
	AccentBright:  "#B4D0FB",
	Green:         "#A6E3A1",
	GreenBright:   "#C6F6C1",
	Orange:        "#FAB387",
	Red:           "#F38BA8",
	Blue:          "#89B4FA",
	Yellow:        "#F9E2AF",
	Magenta:       "#F5C2E7",
	Cyan:          "#94E2D5",
})

// TokyoNight is a cool blue/purple palette.
var TokyoNight = withRoles(Theme{
	Name:          "tokyo-night",
	Background:    "#1A1B26",
	Surface:       "#24283B",
	SurfaceBright: "#414868",
	Border:        "#565F89",
	BorderAccent:  "#7AA2F7",
	TextDim:       "#565F89",
	TextMuted:     "#A9B1D6",
	TextPrimary:   "#C0CAF5",
	Accent:        "#7AA2F7",
	AccentBright:  "#A9C1FF",
	Green:         "#9ECE6A",
	GreenBright:   "#B9E87A",
	Orange:        "#FF9E64",
	Red:           "#F7768E",
	Blue:          "#7AA2F7",
	Yellow:        "#E0AF68",
	Magenta:       "#BB9AF7",
	Cyan:          "#7DCFFF",
})

// Terminal uses the ANSI 16 colors only.
var Terminal = withRoles(Theme{
	Name:          "terminal",
	Background:    "0",
	Surface:       "0",
	SurfaceBright: "8",
	Border:        "8",
	BorderAccent:  "6",
	TextDim:       "8",
	TextMuted:     "7",
	TextPrimary:   "15",
	Accent:        "6",
	AccentBright:  "14",
	Green:         "2",
	GreenBright:   "10",
	Orange:        "3",
	Red:           "1",
	Blue:          "4",
	Yellow:        "3",
	Magenta:       "5",
	Cyan:          "6",
})

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Names lists the registered theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// Lookup returns the theme registered under name.
func Lookup(name string) (Theme, bool) {
	for _, t := range All {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
