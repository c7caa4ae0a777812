package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"pepfix/internal/driver"
	"pepfix/internal/ui"
)

type fixOutcome struct {
	results []driver.FixResult
	err     error
}

// progressView consumes events until it is done or the user quits. It may
// return before the channel is closed.
type progressView func(events <-chan driver.Event) error

// runFixWithUI runs FixPaths while a progress view consumes its events.
func runFixWithUI(ctx context.Context, title string, paths []string, opts driver.FixOptions) ([]driver.FixResult, error) {
	files, err := driver.CollectFiles(ctx, paths, opts.Extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, driver.ErrNoFiles
	}
	view := func(events <-chan driver.Event) error {
		model := ui.NewProgressModel(title, files, events)
		_, err := tea.NewProgram(model, tea.WithOutput(os.Stdout)).Run()
		return err
	}
	return fixWithProgress(ctx, paths, opts, view)
}

// fixWithProgress runs FixPaths in the background and hands its events to
// view. When view returns early the batch is canceled and the remaining
// events are discarded.
func fixWithProgress(ctx context.Context, paths []string, opts driver.FixOptions, view progressView) ([]driver.FixResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan fixOutcome, 1)

	go func() {
		batch := opts
		batch.Progress = driver.ChannelSink{Ch: events, Done: ctx.Done()}
		res, err := driver.FixPaths(ctx, paths, batch)
		outcomeCh <- fixOutcome{results: res, err: err}
		close(events)
	}()

	viewErr := view(events)
	cancel()
	for range events {
	}
	outcome := <-outcomeCh
	if viewErr != nil {
		return outcome.results, viewErr
	}
	return outcome.results, outcome.err
}
