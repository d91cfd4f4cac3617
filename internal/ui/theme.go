package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the UI. All colors are hex strings.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header and command bar
	SurfaceAlt string // Unfocused panes
	FocusBg    string // Focused pane

	SelectionBg   string
	SelectionText string

	Border      string
	BorderMuted string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// Keyed by lower-case character status: alive, dead, unknown.
	StatusColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		WarningText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		DangerText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		InfoText:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Logo   lipgloss.Style

	statusColors map[string]string
	background   string
	muted        string
}

// StatusBadge returns a filled badge style for a character status.
func (s Styles) StatusBadge(status string) lipgloss.Style {
	color := s.statusColors[normalizeStatus(status)]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles whose text styles paint bgColor
// instead of inheriting the terminal background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	return Styles{
		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),
		InfoText:    s.InfoText.Background(bg),
		Header:      s.Header.Background(bg),
		Logo:        s.Logo.Background(bg),

		statusColors: s.statusColors,
		background:   s.background,
		muted:        s.muted,
	}
}

// StatusColor returns the theme color for a character status, falling back
// to the muted color for anything unrecognised.
func (t Theme) StatusColor(status string) string {
	if color, ok := t.StatusColors[normalizeStatus(status)]; ok {
		return color
	}
	return t.Muted
}

func normalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

var themes = map[string]Theme{
	"Portal":  portalTheme(),
	"Citadel": citadelTheme(),
}

var themeOrder = []string{"Portal", "Citadel"}

// DefaultThemeName is used when no preference has been saved.
const DefaultThemeName = "Portal"

// GetTheme returns a theme by name, or the default theme for unknown names.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes[DefaultThemeName]
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func portalTheme() Theme {
	return Theme{
		Name: "Portal",

		Background: "#0b1410",
		Surface:    "#111f18",
		SurfaceAlt: "#172a20",
		FocusBg:    "#1d3428",

		SelectionBg:   "#2f6b3f",
		SelectionText: "#eafbe7",

		Border:      "#2c4a38",
		BorderMuted: "#172a20",
		BorderFocus: "#97ce4c", // portal green

		Text:    "#dfeedd",
		Muted:   "#8aa596",
		Faint:   "#61796b",
		Accent:  "#97ce4c",
		Success: "#97ce4c",
		Warning: "#f0e14a",
		Danger:  "#e4572e",
		Info:    "#44b3d6",

		StatusColors: map[string]string{
			"alive":   "#97ce4c",
			"dead":    "#e4572e",
			"unknown": "#8aa596",
		},
	}
}

func citadelTheme() Theme {
	return Theme{
		Name: "Citadel",

		Background: "#0d1117",
		Surface:    "#161b22",
		SurfaceAlt: "#1c2330",
		FocusBg:    "#242d3c",

		SelectionBg:   "#1f6feb",
		SelectionText: "#f0f6fc",

		Border:      "#30363d",
		BorderMuted: "#1c2330",
		BorderFocus: "#58a6ff",

		Text:    "#e6edf3",
		Muted:   "#8b949e",
		Faint:   "#6e7681",
		Accent:  "#58a6ff",
		Success: "#3fb950",
		Warning: "#d29922",
		Danger:  "#f85149",
		Info:    "#39c5cf",

		StatusColors: map[string]string{
			"alive":   "#3fb950",
			"dead":    "#f85149",
			"unknown": "#8b949e",
		},
	}
}
