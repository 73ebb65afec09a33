package tui

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// repoWatcher watches the working tree and coalesces bursts of file
// events into single change notifications.
type repoWatcher struct {
	fw      *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
}

const debounce = 250 * time.Millisecond

// newRepoWatcher watches root and its subdirectories, skipping .git.
func newRepoWatcher(root string) (*repoWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree: watch what we can
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" && path != root {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
	if err != nil {
		fw.Close()
		return nil, err
	}
	w := &repoWatcher{
		fw:      fw,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Changes delivers one value per coalesced burst of activity.
func (w *repoWatcher) Changes() <-chan struct{} {
	return w.changes
}

func (w *repoWatcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

func (w *repoWatcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.fw.Add(ev.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}
		case <-fire:
			timer = nil
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default: // a notification is already pending
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}
