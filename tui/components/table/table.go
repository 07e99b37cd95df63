// Package table renders plain listings as rounded lipgloss tables styled
// with the active theme.
package table

import (
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/Mahdiglm/draugr-deploy/tui/theme"
)

// New creates a bordered table using the colors of t. A nil theme uses
// theme.DefaultTheme.
func New(t *theme.Theme) *ltable.Table {
	if t == nil {
		t = theme.DefaultTheme
	}
	header := t.Bold.Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	key := t.Muted.Padding(0, 1)

	return ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Colors.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == ltable.HeaderRow:
				return header
			case col == 0:
				return key
			default:
				return cell
			}
		})
}

// Render draws headers and rows with the default theme.
func Render(headers []string, rows [][]string) string {
	t := New(nil).Headers(headers...)
	for _, row := range rows {
		t = t.Row(row...)
	}
	return t.String()
}
