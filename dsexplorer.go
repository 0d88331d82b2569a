package dsexplorer

import (
	"context"

	"github.com/nao1215/dsexplorer/domain/model"
)

// Open loads the building, windows and rooms CSV files and returns a ready Explorer.
//
// Each path may be plain .csv or compressed (.gz, .bz2, .xz, .zst). The three
// files are read concurrently; if any of them is missing, empty or malformed
// the whole call fails with an *AggregateLoadError and no Explorer is returned.
//
// Example:
//
//	explorer, err := dsexplorer.Open("building.csv", "windows.csv", "rooms.csv")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rows, err := explorer.ExecuteQuery("FROM rooms WHERE space_name = 'KITCHEN'")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%d buildings have a kitchen\n", len(rows))
func Open(building, windows, rooms string) (*Explorer, error) {
	return OpenContext(context.Background(), building, windows, rooms)
}

// OpenContext is Open with a context that cancels pending loads.
func OpenContext(ctx context.Context, building, windows, rooms string) (*Explorer, error) {
	return NewBuilder().
		AddPath(model.DatasetBuilding, building).
		AddPath(model.DatasetWindows, windows).
		AddPath(model.DatasetRooms, rooms).
		Build(ctx)
}
