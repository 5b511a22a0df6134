package linkify

import (
	"context"
	"fmt"
	"path/filepath"

	"gopkg.in/fsnotify.v1"

	"github.com/bibliaolvaso/reference/internal/logging"
)

// Watch re-processes HTML files in the top level of the input directory as
// they are created or written, until ctx is cancelled. onResult receives the
// outcome of every rewrite.
func (proc *Processor) Watch(ctx context.Context, onResult func(*FileResult, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(proc.inputDir); err != nil {
		return fmt.Errorf("watching directory %s: %w", proc.inputDir, err)
	}
	logging.Info("watching for changes", "dir", proc.inputDir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isHTML(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			rel, err := filepath.Rel(proc.inputDir, event.Name)
			if err != nil {
				onResult(nil, err)
				continue
			}
			logging.Debug("file changed", "file", rel, "op", event.Op.String())
			fr, err := proc.ProcessFile(rel)
			onResult(fr, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("watcher error", "error", err)
		}
	}
}
