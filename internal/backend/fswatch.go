package backend

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/quickvc/commit-control/internal/logging/events"
)

// FolderWatcher nudges the poller when the working folder changes on disk,
// so the pending-updates indicator reacts faster than the poll interval.
// Filesystem event bursts (a git operation touches many files) collapse to
// one nudge per throttle window.
type FolderWatcher struct {
	watcher *fsnotify.Watcher
	gate    *throttle
	nudge   func()

	mu     sync.Mutex
	folder string
	done   chan struct{}
}

// WatchFolder starts watching folder, calling nudge on activity.
func WatchFolder(folder string, nudge func()) (*FolderWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(folder); err != nil {
		watcher.Close()
		return nil, err
	}
	f := &FolderWatcher{
		watcher: watcher,
		gate:    newThrottle(250 * time.Millisecond),
		nudge:   nudge,
		folder:  folder,
		done:    make(chan struct{}),
	}
	go f.loop()
	return f, nil
}

// SetFolder retargets the watcher after a folder switch.
func (f *FolderWatcher) SetFolder(folder string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if folder == f.folder {
		return nil
	}
	if err := f.watcher.Add(folder); err != nil {
		return err
	}
	if err := f.watcher.Remove(f.folder); err != nil {
		events.Poller.WatchError(err)
	}
	f.folder = folder
	return nil
}

// Stop closes the underlying watcher.
func (f *FolderWatcher) Stop() {
	close(f.done)
	f.watcher.Close()
}

func (f *FolderWatcher) loop() {
	for {
		select {
		case <-f.done:
			return
		case _, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			if f.gate.allow() {
				f.nudge()
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			events.Poller.WatchError(err)
		}
	}
}
