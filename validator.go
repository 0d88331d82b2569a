package dsexplorer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/nao1215/dsexplorer/domain/model"
)

// validator handles validation logic for Builder
type validator struct{}

// newValidator creates a new validator instance
func newValidator() *validator {
	return &validator{}
}

// validateSource validates one configured dataset source
func (v *validator) validateSource(src Source) error {
	if !src.Dataset.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDataset, src.Dataset)
	}
	if src.Reader != nil {
		return nil
	}
	if src.FS != nil {
		return v.validateFSPath(src.FS, src.Path)
	}
	return v.validatePath(src.Path)
}

// validatePath validates a single file path
func (v *validator) validatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("failed to load file: path does not exist: %s", path)
		}
		return fmt.Errorf("failed to stat path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory: %s", path)
	}
	if !isSupportedSource(path) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

// validateFSPath validates a file inside an fs.FS
func (v *validator) validateFSPath(fsys fs.FS, name string) error {
	if !fs.ValidPath(name) {
		return fmt.Errorf("invalid path in filesystem: %q", name)
	}
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory: %s", name)
	}
	if !isSupportedSource(name) {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	return nil
}

// validateComplete checks that every dataset has exactly one source and
// that no source names an unknown dataset
func (v *validator) validateComplete(sources map[model.DatasetKey]Source) error {
	for key := range sources {
		if !key.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownDataset, key)
		}
	}

	var missing []string
	for _, key := range model.DatasetKeys() {
		if _, ok := sources[key]; !ok {
			missing = append(missing, key.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: no source for %s", ErrNotReady, strings.Join(missing, ", "))
	}
	return nil
}
