package vectorindex

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// indexFile is the on-disk representation of a Flat index.
type indexFile struct {
	Dim     int
	Vectors [][]float32
}

// WriteFile persists the index to path, creating parent directories as needed.
func (f *Flat) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create index directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := gob.NewEncoder(file).Encode(indexFile{Dim: f.dim, Vectors: f.vectors}); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	return nil
}

// ReadFile loads an index previously written with WriteFile.
func ReadFile(path string) (*Flat, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var stored indexFile
	if err := gob.NewDecoder(file).Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to decode index: %w", err)
	}
	return &Flat{dim: stored.Dim, vectors: stored.Vectors}, nil
}
