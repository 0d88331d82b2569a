package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nao1215/dsexplorer/domain/model"
)

func TestDisplayLimit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 500, displayLimit(model.DatasetBuilding, 0))
	assert.Equal(t, 1000, displayLimit(model.DatasetRooms, 0))
	assert.Equal(t, 1000, displayLimit(model.DatasetWindows, -1))
	assert.Equal(t, 7, displayLimit(model.DatasetBuilding, 7))
}

func TestRenderRows(t *testing.T) {
	t.Parallel()

	columns := []string{"building id", "space name"}
	rows := make([]model.Row, 0, 3)
	for i := 1; i <= 3; i++ {
		rows = append(rows, model.Row{"building id": fmt.Sprint(i), "space name": fmt.Sprintf("room-%d", i)})
	}

	t.Run("all rows", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderRows(&buf, model.DatasetRooms, columns, rows, 0)
		out := buf.String()

		assert.Contains(t, out, "building id", "header keeps its original case")
		assert.Contains(t, out, "room-3")
		assert.Contains(t, out, "(3 rows)")
		assert.NotContains(t, out, "Showing first")
	})

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderRows(&buf, model.DatasetRooms, columns, rows, 2)
		out := buf.String()

		assert.Contains(t, out, "room-2")
		assert.NotContains(t, out, "room-3")
		assert.Contains(t, out, "Showing first 2 rows of 3 total rows")
	})

	t.Run("no rows", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderRows(&buf, model.DatasetRooms, columns, nil, 0)
		assert.Equal(t, "(0 rows)\n", buf.String())
	})
}

func TestDescribeDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2 .. 12.5", describeDomain(model.ColumnDomain{Kind: model.ColumnKindNumeric, Min: 2, Max: 12.5}))
	assert.Equal(t, "bath, kitchen", describeDomain(model.ColumnDomain{Values: []string{"bath", "kitchen"}}))
}
