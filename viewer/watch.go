package viewer

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher signals on C after a quiet period following changes to one file
type fileWatcher struct {
	C <-chan struct{}

	w    *fsnotify.Watcher
	done chan struct{}
}

// watchFile watches the directory of path, since editors commonly replace
// files by rename, and filters events down to path itself
func watchFile(path string, debounce time.Duration) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	c := make(chan struct{}, 1)
	fw := &fileWatcher{C: c, w: w, done: make(chan struct{})}
	go fw.run(abs, debounce, c)
	return fw, nil
}

func (fw *fileWatcher) run(path string, debounce time.Duration, out chan<- struct{}) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			select {
			case out <- struct{}{}:
			default:
				// A reload is already pending
			}

		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			log.Printf("[VIEW] watch error: %v", err)

		case <-fw.done:
			return
		}
	}
}

func (fw *fileWatcher) Close() error {
	close(fw.done)
	return fw.w.Close()
}
