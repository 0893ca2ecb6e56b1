package trellis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

// ThemeFile is the on-disk appearance description watched by WatchTheme.
type ThemeFile struct {
	Theme  string `toml:"theme"`
	Locale string `toml:"locale"`
}

// ReadThemeFile reads and decodes a theme file.
func ReadThemeFile(path string) (ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ThemeFile{}, fmt.Errorf("read theme file: %w", err)
	}
	var tf ThemeFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return ThemeFile{}, fmt.Errorf("parse theme file %s: %w", path, err)
	}
	return tf, nil
}

// WatchTheme watches path and posts ThemeChanged and LocaleChanged
// notifications whenever the file is written. The file is read once up
// front. The watcher runs on its own goroutine until ctx is done.
func (a *App) WatchTheme(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch theme: %w", err)
	}
	// Editors replace files instead of writing in place, so the directory is
	// watched and events are filtered by name.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch theme %s: %w", path, err)
	}
	a.postThemeFile(path)

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					a.postThemeFile(path)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				a.log.Error("theme watcher error", slog.Any("err", err))
			}
		}
	}()
	return nil
}

// postThemeFile reads path and queues the notifications. Called from the
// watcher goroutine.
func (a *App) postThemeFile(path string) {
	tf, err := ReadThemeFile(path)
	if err != nil {
		a.log.Error("theme file unreadable", slog.String("path", path), slog.Any("err", err))
		return
	}
	if tf.Theme != "" {
		a.PostWindow(WindowEvent{Kind: ThemeChanged, Theme: tf.Theme})
	}
	if tf.Locale != "" {
		a.PostWindow(WindowEvent{Kind: LocaleChanged, Locale: tf.Locale})
	}
}
