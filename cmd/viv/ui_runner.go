package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
	"github.com/vivax3794/viv-script-blog/internal/ui"
)

// runWithUI runs work in the background with a progress sink wired to a
// Bubble Tea view of files. work's error wins over a UI failure.
func runWithUI(title string, files []string, work func(buildpipeline.ProgressSink) error) error {
	events := make(chan buildpipeline.Event, 256)
	outcome := make(chan error, 1)

	go func() {
		err := work(buildpipeline.ChannelSink{Ch: events})
		close(events)
		outcome <- err
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, files, events), tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// вью могла выйти раньше (ctrl+c) - дочитываем события, чтобы работа не встала
	go func() {
		for range events {
		}
	}()
	err := <-outcome
	if err != nil {
		return err
	}
	return uiErr
}
