package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/Mahdiglm/draugr-deploy/tui/theme"
)

// PrettyLogger prints the human-facing lines that are not log records: the
// final error summary of a command with its hint, and labelled paths.
type PrettyLogger struct {
	writer io.Writer
	styles PrettyStyles
}

// PrettyStyles contains lipgloss styles for the pretty line kinds.
type PrettyStyles struct {
	Error lipgloss.Style
	Hint  lipgloss.Style
	Key   lipgloss.Style
	Path  lipgloss.Style
}

// DefaultPrettyStyles derives the styles from the active theme.
func DefaultPrettyStyles() PrettyStyles {
	t := theme.DefaultTheme
	return PrettyStyles{
		Error: t.Error,
		Hint:  t.Muted,
		Key:   t.Muted,
		Path:  t.Italic.Foreground(t.Colors.Cyan),
	}
}

// NewPrettyLogger creates a pretty logger writing to stderr
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{
		writer: os.Stderr,
		styles: DefaultPrettyStyles(),
	}
}

// WithWriter sets a custom writer for pretty output
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

// Error prints a failure headline.
func (p *PrettyLogger) Error(message string) {
	fmt.Fprintf(p.writer, "%s %s\n", p.styles.Error.Render("✗"), p.styles.Error.Render(message))
}

// Hint prints a follow-up line under an error.
func (p *PrettyLogger) Hint(message string) {
	fmt.Fprintf(p.writer, "  %s\n", p.styles.Hint.Render(message))
}

// Path prints a labelled file path.
func (p *PrettyLogger) Path(label string, path string) {
	fmt.Fprintf(p.writer, "%s: %s\n", p.styles.Key.Render(label), p.styles.Path.Render(path))
}
