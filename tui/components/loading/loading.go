// Package loading renders the indicator shown while a long operation runs:
// a rotating ring over a pulsing caption, centred in the viewport.
package loading

import (
	"math"
	"time"

	"github.com/Mahdiglm/draugr-deploy/tui/theme"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// RotationPeriod is one full turn of the ring.
	RotationPeriod = 2 * time.Second
	// PulsePeriod is one 0.5 -> 1 -> 0.5 opacity cycle of the caption.
	PulsePeriod = 1500 * time.Millisecond

	pulseSteps    = 30
	defaultWidth  = 80
	defaultHeight = 24
)

// Ring is a circle drawn as a moving arc. Frames have equal duration, so the
// rotation is linear.
var Ring = spinner.Spinner{
	Frames: []string{"◜", "◠", "◝", "◞", "◡", "◟"},
	FPS:    RotationPeriod / 6,
}

type pulseMsg struct{}

// Model is the loading indicator. It takes no configuration.
type Model struct {
	spinner spinner.Model
	caption string
	styles  []lipgloss.Style
	pulse   int
	width   int
	height  int
}

// New returns an indicator with the caption localised from the environment.
func New() Model {
	t := theme.DefaultTheme
	return Model{
		spinner: spinner.New(
			spinner.WithSpinner(Ring),
			spinner.WithStyle(t.Highlight),
		),
		caption: Caption(),
		styles:  pulseStyles(t),
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// Init starts both animations.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, pulseTick())
}

// Update advances the animations and tracks the viewport size.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pulseMsg:
		m.pulse = (m.pulse + 1) % pulseSteps
		return m, pulseTick()
	}

	return m, nil
}

// View renders the ring above the caption, centred in the viewport.
func (m Model) View() string {
	caption := m.styles[m.pulse].Render(m.caption)
	block := lipgloss.JoinVertical(lipgloss.Center, m.spinner.View(), caption)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

func pulseTick() tea.Cmd {
	return tea.Tick(PulsePeriod/pulseSteps, func(time.Time) tea.Msg {
		return pulseMsg{}
	})
}

// Opacity is the caption opacity at a pulse step: a raised cosine between
// 0.5 and 1, which eases in and out at both ends.
func Opacity(step int) float64 {
	phase := float64(step%pulseSteps) / pulseSteps
	return 0.75 - 0.25*math.Cos(2*math.Pi*phase)
}

// pulseStyles precomputes one caption style per pulse step. Opacity is
// simulated by blending the text color into the background; palettes
// without hex endpoints fall back to faint text for the dim half.
func pulseStyles(t *theme.Theme) []lipgloss.Style {
	styles := make([]lipgloss.Style, pulseSteps)

	fg, fgErr := colorful.Hex(t.Colors.TextHex)
	bg, bgErr := colorful.Hex(t.Colors.BackgroundHex)
	blend := fgErr == nil && bgErr == nil

	for i := range styles {
		opacity := Opacity(i)
		style := lipgloss.NewStyle().Italic(true)
		switch {
		case blend:
			style = style.Foreground(lipgloss.Color(bg.BlendRgb(fg, opacity).Clamped().Hex()))
		case opacity < 0.75:
			style = style.Foreground(t.Colors.LightText).Faint(true)
		default:
			style = style.Foreground(t.Colors.LightText)
		}
		styles[i] = style
	}
	return styles
}
