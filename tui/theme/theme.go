package theme

import (
	"os"
	"strings"

	"github.com/Mahdiglm/draugr-deploy/config"
	"github.com/charmbracelet/lipgloss"
)

const defaultThemeName = "kanagawa"

// --- Kanagawa Dragon (dark) palette ---
const (
	kanagawaDarkGreen      = "#98BB6C"
	kanagawaDarkYellow     = "#FF9E3B"
	kanagawaDarkRed        = "#FF5D62"
	kanagawaDarkOrange     = "#FFA066"
	kanagawaDarkCyan       = "#7E9CD8"
	kanagawaDarkBlue       = "#7FB4CA"
	kanagawaDarkViolet     = "#957FB8"
	kanagawaDarkLightText  = "#DCD7BA"
	kanagawaDarkMutedText  = "#727169"
	kanagawaDarkBackground = "#1D1C19"
	kanagawaDarkBorder     = "#363646"
)

// --- Kanagawa Lotus (light) palette ---
const (
	kanagawaLightGreen      = "#4E7C5A"
	kanagawaLightYellow     = "#A68A64"
	kanagawaLightRed        = "#C34043"
	kanagawaLightOrange     = "#CC6B4E"
	kanagawaLightCyan       = "#5B8BBE"
	kanagawaLightBlue       = "#4F7CAC"
	kanagawaLightViolet     = "#674D7A"
	kanagawaLightLightText  = "#2B2F42"
	kanagawaLightMutedText  = "#6C7086"
	kanagawaLightBackground = "#F7F7FB"
	kanagawaLightBorder     = "#B5BDC5"
)

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen      = "2"
	terminalYellow     = "3"
	terminalRed        = "1"
	terminalOrange     = "208"
	terminalCyan       = "6"
	terminalBlue       = "4"
	terminalViolet     = "5"
	terminalLightText  = "7"
	terminalMutedText  = "8"
	terminalBackground = "0"
	terminalBorder     = "8"
)

// Colors encapsulates the palette used by a theme.
type Colors struct {
	Green      lipgloss.TerminalColor
	Yellow     lipgloss.TerminalColor
	Red        lipgloss.TerminalColor
	Orange     lipgloss.TerminalColor
	Cyan       lipgloss.TerminalColor
	Blue       lipgloss.TerminalColor
	Violet     lipgloss.TerminalColor
	LightText  lipgloss.TerminalColor
	MutedText  lipgloss.TerminalColor
	Background lipgloss.TerminalColor
	Border     lipgloss.TerminalColor

	// Hex endpoints (dark variant) used where a color has to be
	// interpolated. Empty for palettes made of ANSI indexes.
	TextHex       string
	BackgroundHex string
}

// Theme holds the pre-configured styles used by the draugr tools.
type Theme struct {
	Name   string
	Colors Colors

	Header  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold   lipgloss.Style
	Italic lipgloss.Style
	Normal lipgloss.Style
	Muted  lipgloss.Style

	Highlight lipgloss.Style
	Accent    lipgloss.Style
}

var themeRegistry = map[string]func() Colors{
	"kanagawa": newKanagawaColors,
	"terminal": newTerminalColors,
}

var themeAliases = map[string]string{
	"kanagawa-dark":   "kanagawa",
	"kanagawa-dragon": "kanagawa",
	"default":         "kanagawa",
	"ansi":            "terminal",
}

// DefaultTheme is the theme selected from DRAUGR_THEME or the `tui` config section.
var DefaultTheme = NewTheme()

// NewTheme creates a theme based on the configured theme selection.
func NewTheme() *Theme {
	return NewThemeWithName(getThemeName())
}

// NewThemeWithName constructs a theme from a specific palette name.
// Unknown names fall back to the default palette.
func NewThemeWithName(name string) *Theme {
	key := normalizeThemeName(name)
	if alias, ok := themeAliases[key]; ok {
		key = alias
	}
	builder, ok := themeRegistry[key]
	if !ok {
		key = defaultThemeName
		builder = themeRegistry[defaultThemeName]
	}
	return newThemeFromColors(key, builder())
}

func newThemeFromColors(name string, colors Colors) *Theme {
	return &Theme{
		Name:   name,
		Colors: colors,

		Header: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		Success: lipgloss.NewStyle().
			Foreground(colors.Green).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(colors.Red).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(colors.Yellow).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(colors.Cyan).
			Bold(true),

		Bold: lipgloss.NewStyle().
			Bold(true),

		Italic: lipgloss.NewStyle().
			Italic(true),

		Normal: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Faint(true),

		Highlight: lipgloss.NewStyle().
			Foreground(colors.Orange).
			Bold(true),

		Accent: lipgloss.NewStyle().
			Foreground(colors.Violet).
			Bold(true),
	}
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

func getThemeName() string {
	if theme := normalizeThemeName(os.Getenv("DRAUGR_THEME")); theme != "" {
		return theme
	}

	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil {
		return defaultThemeName
	}

	var tuiCfg struct {
		Theme string `yaml:"theme"`
	}
	if err := cfg.UnmarshalExtension("tui", &tuiCfg); err == nil {
		if theme := normalizeThemeName(tuiCfg.Theme); theme != "" {
			return theme
		}
	}

	return defaultThemeName
}

func newKanagawaColors() Colors {
	return Colors{
		Green:      lipgloss.AdaptiveColor{Light: kanagawaLightGreen, Dark: kanagawaDarkGreen},
		Yellow:     lipgloss.AdaptiveColor{Light: kanagawaLightYellow, Dark: kanagawaDarkYellow},
		Red:        lipgloss.AdaptiveColor{Light: kanagawaLightRed, Dark: kanagawaDarkRed},
		Orange:     lipgloss.AdaptiveColor{Light: kanagawaLightOrange, Dark: kanagawaDarkOrange},
		Cyan:       lipgloss.AdaptiveColor{Light: kanagawaLightCyan, Dark: kanagawaDarkCyan},
		Blue:       lipgloss.AdaptiveColor{Light: kanagawaLightBlue, Dark: kanagawaDarkBlue},
		Violet:     lipgloss.AdaptiveColor{Light: kanagawaLightViolet, Dark: kanagawaDarkViolet},
		LightText:  lipgloss.AdaptiveColor{Light: kanagawaLightLightText, Dark: kanagawaDarkLightText},
		MutedText:  lipgloss.AdaptiveColor{Light: kanagawaLightMutedText, Dark: kanagawaDarkMutedText},
		Background: lipgloss.AdaptiveColor{Light: kanagawaLightBackground, Dark: kanagawaDarkBackground},
		Border:     lipgloss.AdaptiveColor{Light: kanagawaLightBorder, Dark: kanagawaDarkBorder},

		TextHex:       kanagawaDarkLightText,
		BackgroundHex: kanagawaDarkBackground,
	}
}

func newTerminalColors() Colors {
	return Colors{
		Green:      lipgloss.Color(terminalGreen),
		Yellow:     lipgloss.Color(terminalYellow),
		Red:        lipgloss.Color(terminalRed),
		Orange:     lipgloss.Color(terminalOrange),
		Cyan:       lipgloss.Color(terminalCyan),
		Blue:       lipgloss.Color(terminalBlue),
		Violet:     lipgloss.Color(terminalViolet),
		LightText:  lipgloss.Color(terminalLightText),
		MutedText:  lipgloss.Color(terminalMutedText),
		Background: lipgloss.Color(terminalBackground),
		Border:     lipgloss.Color(terminalBorder),
	}
}
