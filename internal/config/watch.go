package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

type watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

// Watch reloads the config file whenever it changes on disk and fires
// change notifications. Events are debounced; editors that replace
// the file produce several in a burst.
func (c *Config) Watch(path string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// watch the directory: most editors rename over the file, which
	// drops a watch held on the file itself
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return err
	}

	w := &watcher{fw: fw, done: make(chan struct{})}
	c.mu.Lock()
	if c.watcher != nil {
		c.mu.Unlock()
		fw.Close()
		return nil
	}
	c.watcher = w
	c.mu.Unlock()

	go c.watchLoop(w, path)
	return nil
}

// Unwatch stops the file watcher.
func (c *Config) Unwatch() {
	c.mu.Lock()
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()
	if w != nil {
		close(w.done)
		w.fw.Close()
	}
}

func (c *Config) watchLoop(w *watcher, path string) {
	var timer *time.Timer
	var fire <-chan time.Time

	target := filepath.Clean(path)
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := c.merge(path); err == nil {
				c.notifyChanged()
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		}
	}
}
