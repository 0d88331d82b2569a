package dsexplorer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/nao1215/dsexplorer/domain/model"
	"golang.org/x/sync/errgroup"
)

// errNoSource is recorded for a required dataset that has no configured source.
var errNoSource = errors.New("no source configured")

// Source is where one dataset's CSV text comes from: a file path
// (optionally .gz, .bz2, .xz or .zst compressed), a file inside an fs.FS,
// or an io.Reader.
type Source struct {
	// Dataset is the dataset the source populates.
	Dataset model.DatasetKey
	// Path is a CSV file path, relative to FS when FS is set. Ignored when Reader is set.
	Path string
	// FS, when set, is the filesystem Path is opened from.
	FS fs.FS
	// Reader supplies uncompressed CSV text directly.
	Reader io.Reader
}

// read returns the full CSV text of the source.
func (s Source) read() (string, error) {
	if s.Reader != nil {
		data, err := io.ReadAll(s.Reader)
		if err != nil {
			return "", fmt.Errorf("failed to read source: %w", err)
		}
		return string(data), nil
	}

	open := openCompressedFile
	if s.FS != nil {
		open = func(path string) (io.Reader, func() error, error) {
			return openCompressedFS(s.FS, path)
		}
	}
	reader, closer, err := open(s.Path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = closer() // Ignore close error after a complete read
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// RowStore holds the three named tables for a session.
//
// Thread Safety: All methods are safe for concurrent use by multiple goroutines.
type RowStore struct {
	mu     sync.RWMutex
	tables map[model.DatasetKey]*model.Table
	logger *slog.Logger
}

// NewRowStore creates an empty store. A nil logger discards log output.
func NewRowStore(logger *slog.Logger) *RowStore {
	if logger == nil {
		logger = discardLogger()
	}
	return &RowStore{
		tables: make(map[model.DatasetKey]*model.Table),
		logger: logger,
	}
}

// Load ingests csvText and replaces the table for key.
func (s *RowStore) Load(key model.DatasetKey, csvText string) error {
	if !key.Valid() {
		return NewErrorContext("load").WithDataset(key).Error(ErrUnknownDataset)
	}

	table, err := ingestCSV(key, csvText, s.logger)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[key] = table
	return nil
}

// Get returns the table for key.
func (s *RowStore) Get(key model.DatasetKey) (*model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.tables[key]
	if !ok {
		return nil, NewErrorContext("get").WithDataset(key).Error(ErrUnknownDataset)
	}
	return table, nil
}

// Ready reports whether all three datasets are loaded and non-empty.
func (s *RowStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, key := range model.DatasetKeys() {
		table, ok := s.tables[key]
		if !ok || table.Len() == 0 {
			return false
		}
	}
	return true
}

// LoadAll reads and ingests every source concurrently and waits for all of
// them to finish. The store is only updated when all three datasets loaded
// successfully; otherwise it is left untouched and an *AggregateLoadError
// describing every failure is returned.
func (s *RowStore) LoadAll(ctx context.Context, sources ...Source) error {
	tables := make([]*model.Table, len(sources))
	errs := make([]error, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		g.Go(func() error {
			tables[i], errs[i] = s.loadSource(ctx, src)
			return nil
		})
	}
	_ = g.Wait() // per-source errors are collected in errs

	loaded := make(map[model.DatasetKey]*model.Table, len(sources))
	failures := make(map[model.DatasetKey]error)
	for i, src := range sources {
		if errs[i] != nil {
			failures[src.Dataset] = errs[i]
			continue
		}
		loaded[src.Dataset] = tables[i]
	}
	for _, key := range model.DatasetKeys() {
		if _, ok := loaded[key]; !ok {
			if _, failed := failures[key]; !failed {
				failures[key] = errNoSource
			}
		}
	}

	if len(failures) > 0 {
		for key, err := range failures {
			s.logger.Error("dataset failed to load", "dataset", key, "error", err)
		}
		return &AggregateLoadError{Failures: failures}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, table := range loaded {
		s.tables[key] = table
		s.logger.Info("dataset loaded", "dataset", key, "rows", table.Len(), "columns", len(table.Header()))
	}
	return nil
}

// loadSource validates, reads and ingests one source.
func (s *RowStore) loadSource(ctx context.Context, src Source) (*model.Table, error) {
	ectx := NewErrorContext("load").WithDataset(src.Dataset).WithFile(src.Path)
	if err := ctx.Err(); err != nil {
		return nil, ectx.Error(err)
	}
	if err := newValidator().validateSource(src); err != nil {
		return nil, ectx.Error(err)
	}

	text, err := src.read()
	if err != nil {
		return nil, ectx.Error(err)
	}
	return ingestCSV(src.Dataset, text, s.logger)
}

// discardLogger returns a logger that drops every record.
func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
