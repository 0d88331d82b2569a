package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/dsexplorer/internal/cli/config"
	"github.com/nao1215/dsexplorer/internal/testutil"
)

func TestSourcePaths(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Datasets: config.DatasetsConfig{
		Building: "/data/building.csv",
		Windows:  "/data/sub/../windows.csv.gz",
		Rooms:    "/data/rooms.csv",
	}}
	assert.Equal(t, []string{"/data/building.csv", "/data/windows.csv.gz", "/data/rooms.csv"}, sourcePaths(cfg))
}

func TestFileWatcher_ReloadsOnWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "rooms.csv")
	require.NoError(t, os.WriteFile(path, []byte("building id\n1\n"), 0600))

	reloaded := make(chan struct{}, 16)
	fw := &fileWatcher{
		paths:    []string{path},
		debounce: 10 * time.Millisecond,
		reload: func(context.Context) error {
			reloaded <- struct{}{}
			return nil
		},
		logger: testutil.NewTestLogger(t),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- fw.run(ctx)
	}()

	// The watcher starts asynchronously, so keep writing until a reload is seen.
	timeout := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	seen := false
	for !seen {
		select {
		case <-reloaded:
			seen = true
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, []byte("building id\n2\n"), 0600))
		case <-timeout:
			cancel()
			<-done
			t.Fatal("no reload after writing the watched file")
		}
	}

	cancel()
	assert.NoError(t, <-done)
}

func TestFileWatcher_MissingDirectory(t *testing.T) {
	t.Parallel()

	fw := &fileWatcher{
		paths:    []string{filepath.Join(t.TempDir(), "missing", "rooms.csv")},
		debounce: time.Millisecond,
		reload:   func(context.Context) error { return nil },
		logger:   testutil.NewTestLogger(t),
	}
	err := fw.run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}
