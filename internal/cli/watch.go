package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nao1215/dsexplorer/domain/model"
	"github.com/nao1215/dsexplorer/internal/cli/config"
)

// reloadDebounce is how long the watcher waits for further writes before reloading.
const reloadDebounce = 200 * time.Millisecond

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [QUERY]",
		Short: "Reload the datasets when their files change",
		Long: `Load the datasets, print the current dataset (or the result of QUERY)
and reload everything whenever one of the source files is written.
The query is run again after every reload. Stop with Ctrl+C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := getConfig(ctx)
			logger := getLogger(ctx)
			w := cmd.OutOrStdout()

			var query string
			if len(args) == 1 {
				query = args[0]
			}

			reload := func(ctx context.Context) error {
				explorer, err := openExplorer(ctx, cfg)
				if err != nil {
					return err
				}
				if query != "" {
					if _, err := explorer.ExecuteQuery(query); err != nil {
						return err
					}
				}
				renderExplorer(w, explorer, cfg.Limit)
				return nil
			}
			if err := reload(ctx); err != nil {
				return err
			}

			fw := &fileWatcher{
				paths:    sourcePaths(cfg),
				debounce: reloadDebounce,
				reload: func(ctx context.Context) error {
					_, _ = fmt.Fprintln(w)
					return reload(ctx)
				},
				logger: logger,
			}
			return fw.run(ctx)
		},
	}
}

// sourcePaths returns the cleaned absolute paths of the dataset files.
func sourcePaths(cfg *config.Config) []string {
	paths := make([]string, 0, len(model.DatasetKeys()))
	for _, key := range model.DatasetKeys() {
		path := cfg.Datasets.Path(key)
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		paths = append(paths, filepath.Clean(path))
	}
	return paths
}

// fileWatcher calls reload after any of paths is written or recreated.
type fileWatcher struct {
	paths    []string
	debounce time.Duration
	reload   func(ctx context.Context) error
	logger   *slog.Logger
}

// run watches until ctx is done. Reload failures are logged and the previous
// result stays on screen.
func (fw *fileWatcher) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch the parent directories so that editors replacing a file are seen
	watched := make(map[string]struct{}, len(fw.paths))
	dirs := make(map[string]struct{}, len(fw.paths))
	for _, path := range fw.paths {
		watched[path] = struct{}{}
		dir := filepath.Dir(path)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		dirs[dir] = struct{}{}
	}
	fw.logger.Info("watching datasets", "files", len(watched))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if _, ok := watched[filepath.Clean(event.Name)]; !ok {
				continue
			}
			fw.logger.Debug("dataset file changed", "file", event.Name)
			pending = time.After(fw.debounce)

		case <-pending:
			pending = nil
			if err := fw.reload(ctx); err != nil {
				fw.logger.Error("reload failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fw.logger.Error("watcher error", "error", err)
		}
	}
}
