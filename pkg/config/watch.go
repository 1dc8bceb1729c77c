package config

import (
	"context"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the configuration whenever the file at path changes and
// hands the result to onChange. It blocks until ctx is cancelled or the
// watcher fails. Load errors during a reload are passed to onChange as
// (nil, err) so a bad edit doesn't kill the watch.
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			onChange(Load())
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
