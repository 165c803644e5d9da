package indexer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"secbrief/internal/vectorindex"
)

// Scanner buffer large enough for a chunk plus its JSON envelope.
const maxChunkLine = 1 << 20

// LoadChunks reads a JSONL chunk file, one Entry per line.
func LoadChunks(path string) ([]vectorindex.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunks file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var entries []vectorindex.Entry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxChunkLine)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var entry vectorindex.Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("failed to decode chunk at line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chunks file: %w", err)
	}

	return entries, nil
}

// WriteChunksFile writes entries as JSONL, creating parent directories as
// needed. The file is replaced wholesale; incremental index updates diff
// against the metadata store, not this file.
func WriteChunksFile(path string, entries []vectorindex.Entry) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create chunks directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chunks file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	w := bufio.NewWriter(file)
	enc := json.NewEncoder(w)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("failed to encode chunk %s: %w", entry.ChunkID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush chunks file: %w", err)
	}
	return nil
}
