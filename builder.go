package dsexplorer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/nao1215/dsexplorer/domain/model"
)

// Builder configures the three dataset sources of an Explorer.
// Use NewBuilder to create a new instance, then chain method calls to configure it.
//
// The typical usage pattern is:
//
//	explorer, err := dsexplorer.NewBuilder().
//		AddPath(model.DatasetBuilding, "building.csv").
//		AddPath(model.DatasetWindows, "windows.csv.gz").
//		AddPath(model.DatasetRooms, "rooms.csv").
//		Build(ctx)
type Builder struct {
	// sources holds one source per dataset; adding a dataset again replaces it
	sources map[model.DatasetKey]Source
	// errs collects configuration errors reported by Build
	errs   []error
	logger *slog.Logger
}

// NewBuilder creates a new builder with no sources.
func NewBuilder() *Builder {
	return &Builder{
		sources: make(map[model.DatasetKey]Source),
	}
}

// AddPath sets a CSV file path as the source of a dataset.
// Supported compression: .gz, .bz2, .xz, .zst
//
// Returns the builder for method chaining.
func (b *Builder) AddPath(key model.DatasetKey, path string) *Builder {
	b.sources[key] = Source{Dataset: key, Path: path}
	return b
}

// AddReader sets uncompressed CSV text from r as the source of a dataset.
// The reader is consumed during Build.
//
// Returns the builder for method chaining.
func (b *Builder) AddReader(key model.DatasetKey, r io.Reader) *Builder {
	if r == nil {
		b.errs = append(b.errs, fmt.Errorf("reader for %s cannot be nil", key))
		return b
	}
	b.sources[key] = Source{Dataset: key, Reader: r}
	return b
}

// AddFS sets a CSV file inside fsys as the source of a dataset.
// This is particularly useful for embedded filesystems using go:embed.
//
// Returns the builder for method chaining.
func (b *Builder) AddFS(key model.DatasetKey, fsys fs.FS, name string) *Builder {
	if fsys == nil {
		b.errs = append(b.errs, fmt.Errorf("FS for %s cannot be nil", key))
		return b
	}
	b.sources[key] = Source{Dataset: key, Path: name, FS: fsys}
	return b
}

// WithLogger sets the logger used by the store and explorer.
//
// Returns the builder for method chaining.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// Sources returns the configured sources in load order.
func (b *Builder) Sources() []Source {
	sources := make([]Source, 0, len(b.sources))
	for _, key := range model.DatasetKeys() {
		if src, ok := b.sources[key]; ok {
			sources = append(sources, src)
		}
	}
	return sources
}

// Build validates the sources, loads the three datasets concurrently and
// returns a ready Explorer. A load failure of any dataset fails the whole
// build with an *AggregateLoadError.
func (b *Builder) Build(ctx context.Context) (*Explorer, error) {
	store, err := b.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewExplorer(store)
}

// Load checks that every dataset has a source and loads them into a new
// RowStore. Path problems are reported per dataset in the *AggregateLoadError.
func (b *Builder) Load(ctx context.Context) (*RowStore, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	if err := newValidator().validateComplete(b.sources); err != nil {
		return nil, err
	}

	store := NewRowStore(b.logger)
	if err := store.LoadAll(ctx, b.Sources()...); err != nil {
		return nil, err
	}
	return store, nil
}
