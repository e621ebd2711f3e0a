package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"slate/internal/pipeline"
	"slate/internal/ui"
)

// runWithUI executes the pipeline in a goroutine while a Bubble Tea model
// renders its progress events on stdout.
func runWithUI(title string, req pipeline.Request) pipeline.Result {
	events := make(chan pipeline.Event, 256)
	outcome := make(chan pipeline.Result, 1)

	go func() {
		req.Progress = pipeline.ChannelSink{Ch: events}
		outcome <- pipeline.Run(req)
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		// fall back to draining the pipeline outcome; the run itself is
		// unaffected by a rendering failure
		return <-outcome
	}
	return <-outcome
}
