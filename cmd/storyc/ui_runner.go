package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"storyscript/internal/driver"
	"storyscript/internal/source"
	"storyscript/internal/ui"
)

type parseDirOutcome struct {
	fs      *source.FileSet
	results []*driver.ParseResult
	err     error
}

// runParseDirWithUI запускает driver.ParseDir, показывая прогресс в терминале.
func runParseDirWithUI(ctx context.Context, out io.Writer, title, dir string, files []string, opts driver.DirOptions) (*source.FileSet, []*driver.ParseResult, error) {
	events := make(chan driver.FileEvent, 256)
	outcomeCh := make(chan parseDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.OnFile = func(ev driver.FileEvent) {
			events <- ev
		}
		fs, results, err := driver.ParseDir(ctx, dir, optsCopy)
		outcomeCh <- parseDirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы ParseDir не заблокировался
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
