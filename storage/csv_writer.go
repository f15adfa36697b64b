package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/pipeline"
)

// ShardedCSVWriter writes report rows across a fixed number of
// `;`-delimited shard files named <prefix>-0000i-of-0000N.csv, each with
// its own header line. Rows are distributed round-robin, so a shard's row
// order carries no meaning. It is safe for concurrent use.
type ShardedCSVWriter struct {
	mu      sync.Mutex
	files   []*os.File
	writers []*csv.Writer
	next    int
}

// NewShardedCSVWriter creates (or truncates) the shard files under dir and
// writes the report header to each. Intermediate directories are created
// automatically.
func NewShardedCSVWriter(dir, prefix string, shards int) (*ShardedCSVWriter, error) {
	if shards < 1 {
		shards = 1
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	w := &ShardedCSVWriter{
		files:   make([]*os.File, 0, shards),
		writers: make([]*csv.Writer, 0, shards),
	}
	for i := 0; i < shards; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%s-%05d-of-%05d.csv", prefix, i, shards))
		file, err := os.Create(path)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("csv: create shard %q: %w", path, err)
		}

		writer := csv.NewWriter(file)
		writer.Comma = rune(pipeline.ReportDelimiter[0])
		if err := writer.Write(pipeline.ReportColumns); err != nil {
			w.Close()
			file.Close()
			return nil, fmt.Errorf("csv: write header: %w", err)
		}
		writer.Flush()

		w.files = append(w.files, file)
		w.writers = append(w.writers, writer)
	}
	return w, nil
}

// Write appends rows to the shards round-robin.
func (w *ShardedCSVWriter) Write(rows [][]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, row := range rows {
		writer := w.writers[w.next]
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
		w.next = (w.next + 1) % len(w.writers)
	}

	for _, writer := range w.writers {
		writer.Flush()
		if err := writer.Error(); err != nil {
			return fmt.Errorf("csv: flush shard: %w", err)
		}
	}
	return nil
}

// Close flushes and closes every shard file.
func (w *ShardedCSVWriter) Close() error {
	var first error
	for i, file := range w.files {
		w.writers[i].Flush()
		if err := w.writers[i].Error(); err != nil && first == nil {
			first = err
		}
		if err := file.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
