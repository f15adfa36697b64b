// Package ingest reads the raw dataset files. It only deals in whole lines;
// all parsing happens downstream in the pipeline.
package ingest

import (
	"bufio"
	"fmt"
	"os"
)

// ReadLines reads every data line of a dataset file, skipping the single
// header line. The datasets are raw delimiter-split text, not quoted CSV,
// so lines are passed through untouched.
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return lines, nil
}

// ChunkLines splits lines into batches of at most size lines, preserving
// order. Used by the dispatcher to bound chunk message payloads.
func ChunkLines(lines []string, size int) [][]string {
	if size <= 0 {
		size = len(lines)
	}
	if len(lines) == 0 {
		return nil
	}

	chunks := make([][]string, 0, (len(lines)+size-1)/size)
	for start := 0; start < len(lines); start += size {
		end := start + size
		if end > len(lines) {
			end = len(lines)
		}
		chunks = append(chunks, lines[start:end])
	}
	return chunks
}
