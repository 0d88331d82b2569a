package dsexplorer

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nao1215/dsexplorer/domain/model"
	"github.com/nao1215/dsexplorer/internal/testutil"
)

// newTestExplorer loads the three datasets under testdata.
func newTestExplorer(t *testing.T) *Explorer {
	t.Helper()

	explorer, err := NewBuilder().
		AddPath(model.DatasetBuilding, filepath.Join("testdata", "building.csv")).
		AddPath(model.DatasetWindows, filepath.Join("testdata", "windows.csv")).
		AddPath(model.DatasetRooms, filepath.Join("testdata", "rooms.csv")).
		WithLogger(testutil.NewTestLogger(t)).
		Build(context.Background())
	require.NoError(t, err)
	return explorer
}

// newTestStore returns the row store of a test explorer.
func newTestStore(t *testing.T) *RowStore {
	t.Helper()
	return newTestExplorer(t).Store()
}

// columnValues collects one column from rows in order.
func columnValues(rows []model.Row, column string) []string {
	values := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row[column]
	}
	return values
}
