package vectorindex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Entry is one chunk of a filing together with its source metadata. Entries
// are immutable once written; re-chunking replaces them wholesale.
type Entry struct {
	ChunkID string `json:"chunk_id"`
	Text    string `json:"text"`
	Meta    Meta   `json:"meta"`
}

// Meta carries the source document fields the retrieval engine filters and
// groups on.
type Meta struct {
	ID         string `json:"id"`
	Ticker     string `json:"ticker"`
	DocType    string `json:"doc_type"`
	FilingDate string `json:"filing_date"`
	URL        string `json:"url"`
	Source     string `json:"source"`
}

// LoadMeta reads the metadata store: a JSON array whose entry i corresponds to
// vector i in the index.
func LoadMeta(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode metadata file: %w", err)
	}
	return entries, nil
}

// SaveMeta writes the metadata store, creating parent directories as needed.
func SaveMeta(path string, entries []Entry) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metadata directory: %w", err)
		}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}
	return nil
}
