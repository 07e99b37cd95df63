package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewThemeWithName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"kanagawa", "kanagawa"},
		{"Kanagawa Dragon", "kanagawa"},
		{"terminal", "terminal"},
		{"ANSI", "terminal"},
		{"no-such-theme", "kanagawa"},
		{"", "kanagawa"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NewThemeWithName(tt.input).Name)
		})
	}
}

func TestInterpolationEndpoints(t *testing.T) {
	assert.NotEmpty(t, NewThemeWithName("kanagawa").Colors.TextHex)
	assert.NotEmpty(t, NewThemeWithName("kanagawa").Colors.BackgroundHex)
	assert.Empty(t, NewThemeWithName("terminal").Colors.TextHex)
}

func TestThemeFromEnv(t *testing.T) {
	t.Setenv("DRAUGR_THEME", "terminal")
	assert.Equal(t, "terminal", NewTheme().Name)
}
