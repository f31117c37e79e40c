package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"darwin/internal/driver"
	"darwin/internal/source"
	"darwin/internal/ui"
)

type dirOutcome struct {
	fileSet *source.FileSet
	results []driver.TokenizeDirResult
	err     error
}

// runTokenizeDirWithUI runs TokenizeDir while a progress view draws on out.
func runTokenizeDirWithUI(ctx context.Context, out io.Writer, title, dir string, files []string, opts driver.Options) (*source.FileSet, []driver.TokenizeDirResult, error) {
	return tokenizeDirBehind(ctx, dir, opts, func(events <-chan driver.Event) error {
		model := ui.NewProgressModel(title, files, events)
		program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
		_, err := program.Run()
		return err
	})
}

// tokenizeDirBehind runs TokenizeDir in the background and hands its progress
// events to show. Once show returns the run is cancelled and the remaining
// events are drained, so an early exit (Ctrl+C, view error) never leaves the
// workers blocked on a full channel.
func tokenizeDirBehind(ctx context.Context, dir string, opts driver.Options, show func(events <-chan driver.Event) error) (*source.FileSet, []driver.TokenizeDirResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fileSet, results, err := driver.TokenizeDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	uiErr := show(events)

	// после завершения прогона отмена ничего не меняет
	cancel()
	go func() {
		for range events {
		}
	}()

	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
