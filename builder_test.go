package dsexplorer

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/dsexplorer/domain/model"
)

const (
	buildingCSV = "building_id,address,apartment_count,levels_count,epw\n1,Oslo,4,2,\n"
	windowsCSV  = "building_id,window_id\n1,w1\n"
	roomsCSV    = "building id,space name\n1,Kitchen\n"
)

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestNewBuilder(t *testing.T) {
	t.Parallel()

	builder := NewBuilder()
	require.NotNil(t, builder, "NewBuilder() should not return nil")
	assert.Empty(t, builder.Sources(), "NewBuilder() should have no sources")
}

func TestBuilder_Sources(t *testing.T) {
	t.Parallel()

	t.Run("load order", func(t *testing.T) {
		t.Parallel()

		builder := NewBuilder().
			AddReader(model.DatasetRooms, strings.NewReader(roomsCSV)).
			AddPath(model.DatasetBuilding, "building.csv").
			AddFS(model.DatasetWindows, fstest.MapFS{}, "windows.csv")

		sources := builder.Sources()
		require.Len(t, sources, 3)
		assert.Equal(t, model.DatasetBuilding, sources[0].Dataset)
		assert.Equal(t, model.DatasetWindows, sources[1].Dataset)
		assert.Equal(t, model.DatasetRooms, sources[2].Dataset)
		assert.NotNil(t, sources[1].FS)
		assert.NotNil(t, sources[2].Reader)
	})

	t.Run("adding a dataset again replaces it", func(t *testing.T) {
		t.Parallel()

		builder := NewBuilder().
			AddPath(model.DatasetBuilding, "old.csv").
			AddPath(model.DatasetBuilding, "new.csv")

		sources := builder.Sources()
		require.Len(t, sources, 1)
		assert.Equal(t, "new.csv", sources[0].Path)
	})
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	t.Run("readers", func(t *testing.T) {
		t.Parallel()

		explorer, err := NewBuilder().
			AddReader(model.DatasetBuilding, strings.NewReader(buildingCSV)).
			AddReader(model.DatasetWindows, strings.NewReader(windowsCSV)).
			AddReader(model.DatasetRooms, strings.NewReader(roomsCSV)).
			Build(context.Background())
		require.NoError(t, err)

		assert.Equal(t, model.DatasetBuilding, explorer.Current())
		filtered, total := explorer.RowCount()
		assert.Equal(t, 1, filtered)
		assert.Equal(t, 1, total)
		assert.Equal(t, []string{climateZoneNoData}, columnValues(explorer.Filtered(), ClimateZoneColumn))
	})

	t.Run("filesystem with compressed file", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"data/building.csv":   &fstest.MapFile{Data: []byte(buildingCSV)},
			"data/windows.csv.gz": &fstest.MapFile{Data: gzipBytes(t, windowsCSV)},
			"data/rooms.csv":      &fstest.MapFile{Data: []byte(roomsCSV)},
		}

		store, err := NewBuilder().
			AddFS(model.DatasetBuilding, fsys, "data/building.csv").
			AddFS(model.DatasetWindows, fsys, "data/windows.csv.gz").
			AddFS(model.DatasetRooms, fsys, "data/rooms.csv").
			Load(context.Background())
		require.NoError(t, err)

		windows, err := store.Get(model.DatasetWindows)
		require.NoError(t, err)
		assert.Equal(t, []string{"w1"}, columnValues(windows.Rows(), "window_id"))
	})

	t.Run("compressed path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		rooms := filepath.Join(dir, "rooms.csv.gz")
		require.NoError(t, os.WriteFile(rooms, gzipBytes(t, roomsCSV), 0600))

		explorer, err := NewBuilder().
			AddPath(model.DatasetBuilding, filepath.Join("testdata", "building.csv")).
			AddPath(model.DatasetWindows, filepath.Join("testdata", "windows.csv")).
			AddPath(model.DatasetRooms, rooms).
			Build(context.Background())
		require.NoError(t, err)

		require.NoError(t, explorer.SwitchDataset(model.DatasetRooms))
		assert.Equal(t, []string{"Kitchen"}, columnValues(explorer.Filtered(), "space name"))
	})
}

func TestBuilder_ErrorCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		builder func(t *testing.T) *Builder
		wantErr error
		errMsg  string
	}{
		{
			name: "missing dataset",
			builder: func(_ *testing.T) *Builder {
				return NewBuilder().
					AddReader(model.DatasetBuilding, strings.NewReader(buildingCSV)).
					AddReader(model.DatasetWindows, strings.NewReader(windowsCSV))
			},
			wantErr: ErrNotReady,
			errMsg:  "no source for rooms",
		},
		{
			name: "nil reader",
			builder: func(_ *testing.T) *Builder {
				return NewBuilder().AddReader(model.DatasetRooms, nil)
			},
			errMsg: "reader for rooms cannot be nil",
		},
		{
			name: "nil filesystem",
			builder: func(_ *testing.T) *Builder {
				return NewBuilder().AddFS(model.DatasetWindows, nil, "windows.csv")
			},
			errMsg: "FS for windows cannot be nil",
		},
		{
			name: "unknown dataset",
			builder: func(_ *testing.T) *Builder {
				return NewBuilder().
					AddReader(model.DatasetBuilding, strings.NewReader(buildingCSV)).
					AddReader(model.DatasetWindows, strings.NewReader(windowsCSV)).
					AddReader(model.DatasetRooms, strings.NewReader(roomsCSV)).
					AddReader(model.DatasetKey("floors"), strings.NewReader(roomsCSV))
			},
			wantErr: ErrUnknownDataset,
		},
		{
			name: "path does not exist",
			builder: func(_ *testing.T) *Builder {
				return NewBuilder().
					AddPath(model.DatasetBuilding, filepath.Join("testdata", "missing.csv")).
					AddReader(model.DatasetWindows, strings.NewReader(windowsCSV)).
					AddReader(model.DatasetRooms, strings.NewReader(roomsCSV))
			},
			wantErr: ErrAggregateLoad,
			errMsg:  "path does not exist",
		},
		{
			name: "path is a directory",
			builder: func(_ *testing.T) *Builder {
				return NewBuilder().
					AddPath(model.DatasetBuilding, "testdata").
					AddReader(model.DatasetWindows, strings.NewReader(windowsCSV)).
					AddReader(model.DatasetRooms, strings.NewReader(roomsCSV))
			},
			wantErr: ErrAggregateLoad,
			errMsg:  "path is a directory",
		},
		{
			name: "unsupported extension",
			builder: func(t *testing.T) *Builder {
				path := filepath.Join(t.TempDir(), "building.json")
				require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))
				return NewBuilder().
					AddPath(model.DatasetBuilding, path).
					AddReader(model.DatasetWindows, strings.NewReader(windowsCSV)).
					AddReader(model.DatasetRooms, strings.NewReader(roomsCSV))
			},
			wantErr: ErrUnsupportedFormat,
		},
		{
			name: "invalid filesystem path",
			builder: func(_ *testing.T) *Builder {
				return NewBuilder().
					AddReader(model.DatasetBuilding, strings.NewReader(buildingCSV)).
					AddFS(model.DatasetWindows, fstest.MapFS{}, "../windows.csv").
					AddReader(model.DatasetRooms, strings.NewReader(roomsCSV))
			},
			wantErr: ErrAggregateLoad,
			errMsg:  "invalid path in filesystem",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			explorer, err := tt.builder(t).Build(context.Background())
			require.Error(t, err)
			assert.Nil(t, explorer)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestBuilder_Build_AggregateFailure(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder().
		AddReader(model.DatasetBuilding, strings.NewReader(buildingCSV)).
		AddReader(model.DatasetWindows, strings.NewReader("building_id,window_id\n")).
		AddReader(model.DatasetRooms, strings.NewReader("   \n")).
		Build(context.Background())
	require.Error(t, err)

	var aggErr *AggregateLoadError
	require.True(t, errors.As(err, &aggErr), "error should be an *AggregateLoadError")
	assert.Len(t, aggErr.Failures, 2)
	assert.ErrorIs(t, err, ErrAggregateLoad)
	assert.ErrorIs(t, aggErr.Failures[model.DatasetWindows], ErrNoData)
	assert.ErrorIs(t, aggErr.Failures[model.DatasetRooms], ErrEmptyInput)
	assert.NotContains(t, aggErr.Failures, model.DatasetBuilding)
}

func TestBuilder_Build_MissingPaths(t *testing.T) {
	t.Parallel()

	_, err := Open(
		filepath.Join("testdata", "missing_building.csv"),
		filepath.Join("testdata", "windows.csv"),
		filepath.Join("testdata", "missing_rooms.csv"),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAggregateLoad)

	var aggErr *AggregateLoadError
	require.True(t, errors.As(err, &aggErr), "error should be an *AggregateLoadError")
	require.Len(t, aggErr.Failures, 2)
	assert.Contains(t, aggErr.Failures[model.DatasetBuilding].Error(), "path does not exist")
	assert.Contains(t, aggErr.Failures[model.DatasetRooms].Error(), "path does not exist")
	assert.NotContains(t, aggErr.Failures, model.DatasetWindows)
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("testdata", func(t *testing.T) {
		t.Parallel()

		explorer, err := Open(
			filepath.Join("testdata", "building.csv"),
			filepath.Join("testdata", "windows.csv"),
			filepath.Join("testdata", "rooms.csv"),
		)
		require.NoError(t, err)

		_, total := explorer.RowCount()
		assert.Equal(t, 4, total)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := OpenContext(ctx,
			filepath.Join("testdata", "building.csv"),
			filepath.Join("testdata", "windows.csv"),
			filepath.Join("testdata", "rooms.csv"),
		)
		assert.Error(t, err)
	})
}
