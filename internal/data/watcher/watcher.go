// Package watcher reports changes to event files.
package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/util"
)

// FileWatcher watches a set of event files. It watches their parent
// directories so files replaced by rename (as editors save them) keep being
// reported.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	events  chan model.FileEvent
	done    chan struct{}
}

func NewFileWatcher(files []string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		files:   make(map[string]bool, len(files)),
		events:  make(chan model.FileEvent, 100),
		done:    make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, err
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
	}

	go fw.processEvents()

	return fw, nil
}

func (fw *FileWatcher) processEvents() {
	defer close(fw.done)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(event) {
				continue
			}
			select {
			case fw.events <- model.FileEvent{Path: event.Name, Operation: event.Op.String()}:
			default:
				// A reload is already pending.
				util.LogDebugf("FileWatcher: dropped %s event for %s", event.Op, event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("File monitoring error: " + err.Error())
		}
	}
}

func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return fw.files[abs]
}

func (fw *FileWatcher) Events() <-chan model.FileEvent {
	return fw.events
}

// Close stops watching and waits for the event loop to exit.
func (fw *FileWatcher) Close() error {
	err := fw.watcher.Close()
	<-fw.done
	return err
}
