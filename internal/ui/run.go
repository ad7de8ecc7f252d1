package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"efguard/internal/driver"
)

// Progress runs the progress view on out while work runs. work receives
// the sink to publish to; the view exits once work returns and every
// buffered event has been rendered.
func Progress(out io.Writer, title string, files []string, work func(driver.ProgressSink) error) error {
	events := make(chan driver.Event, 256)
	prog := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out), tea.WithInput(nil))

	errCh := make(chan error, 1)
	go func() {
		defer close(events)
		errCh <- work(driver.ChannelSink{Ch: events})
	}()

	if _, err := prog.Run(); err != nil {
		// keep draining so work never blocks on a full channel
		for range events {
		}
		<-errCh
		return err
	}
	return <-errCh
}
