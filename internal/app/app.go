package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quickvc/commit-control/internal/backend"
	"github.com/quickvc/commit-control/internal/logging"
	"github.com/quickvc/commit-control/internal/state"
	"github.com/quickvc/commit-control/internal/ui"
	"github.com/quickvc/commit-control/internal/vcs"
)

// Config describes user-provided application options.
type Config struct {
	Folder       string
	Limit        int
	ShowAll      bool
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	PollInterval time.Duration
	Debounce     time.Duration
}

// Pipeline defaults used when the configuration leaves them zero.
const (
	DefaultPollInterval = 800 * time.Millisecond
	DefaultDebounce     = 800 * time.Millisecond
)

// Run bootstraps the store, the background pipelines and the Bubble Tea
// program, and blocks until the UI exits.
func Run(cfg Config) error {
	folder, err := resolveFolder(cfg.Folder)
	if err != nil {
		return fmt.Errorf("resolve working folder: %w", err)
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	settle := cfg.Debounce
	if settle <= 0 {
		settle = DefaultDebounce
	}

	be := vcs.NewGit()
	store := state.New(folder)
	if cfg.Limit > 0 {
		store.SetLimit(cfg.Limit)
	}
	if cfg.ShowAll {
		store.SetShowAll(true)
	}

	reloader := backend.NewReloader(be)
	defer reloader.Stop()

	// Limit and show-all edits settle through the debouncer before they
	// reach the reload queue; everything else enqueues directly.
	debouncer := backend.NewDebouncer(settle, reloader.Enqueue)
	defer debouncer.Stop()
	debouncer.Watch(
		store.Subscribe(state.FieldLimit, state.FieldShowAll),
		func() backend.Request {
			return backend.Request{
				Limit:   store.Limit(),
				ShowAll: store.ShowAll(),
				Folder:  store.WorkFolder(),
				Reason:  "settings",
			}
		},
	)

	poller := backend.NewPoller(be, store.WorkFolder, interval)
	defer poller.Stop()

	watcher, err := backend.WatchFolder(folder, poller.Nudge)
	if err != nil {
		// Polling still covers update detection; the watcher only makes
		// it react faster.
		logging.Error(err)
		watcher = nil
	} else {
		defer watcher.Stop()
	}

	reloader.Enqueue(backend.Request{
		Limit:   store.Limit(),
		ShowAll: store.ShowAll(),
		Folder:  folder,
		Reason:  "startup",
	})

	model := ui.NewModel(store, be, poller, reloader, watcher, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func resolveFolder(folder string) (string, error) {
	if folder == "" {
		return os.Getwd()
	}
	info, err := os.Stat(folder)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", folder)
	}
	return folder, nil
}
