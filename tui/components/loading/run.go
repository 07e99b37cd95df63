package loading

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the indicator on out for as long as work runs and returns work's
// error. The indicator takes no input; it is torn down as soon as work returns.
func Run(ctx context.Context, out io.Writer, work func(context.Context) error) error {
	p := tea.NewProgram(New(),
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithAltScreen(),
	)

	uiDone := make(chan struct{})
	go func() {
		defer close(uiDone)
		_, _ = p.Run()
	}()

	err := work(ctx)

	p.Quit()
	<-uiDone
	return err
}
