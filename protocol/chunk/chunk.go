// Package chunk defines the message the pipeline processes exchange over
// the work queues: a batch of dataset lines (or aggregated buckets) tagged
// with its run, dataset and position in the stream.
package chunk

import (
	"fmt"
	"strings"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/pipeline"
)

// Dataset identifiers.
const (
	DatasetDengue byte = 1
	DatasetRain   byte = 2
)

// Stage identifiers for the chunk payload.
const (
	StageRawLines   byte = 1
	StageAggregated byte = 2
)

// Chunk is one batch of pipeline data in flight.
type Chunk struct {
	RunID       string
	Dataset     byte
	Stage       byte
	ChunkNumber int
	IsLastChunk bool
	LineCount   int
	Data        string
}

// NewChunk builds a chunk from payload lines.
func NewChunk(runID string, dataset, stage byte, chunkNumber int, isLastChunk bool, lines []string) *Chunk {
	return &Chunk{
		RunID:       runID,
		Dataset:     dataset,
		Stage:       stage,
		ChunkNumber: chunkNumber,
		IsLastChunk: isLastChunk,
		LineCount:   len(lines),
		Data:        strings.Join(lines, "\n"),
	}
}

// Lines splits the payload back into its lines, dropping blanks.
func (c *Chunk) Lines() []string {
	if c.Data == "" {
		return nil
	}
	raw := strings.Split(c.Data, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// DatasetName returns the source name the dataset identifier stands for.
func (c *Chunk) DatasetName() (string, error) {
	switch c.Dataset {
	case DatasetDengue:
		return pipeline.DengueSource, nil
	case DatasetRain:
		return pipeline.RainSource, nil
	default:
		return "", fmt.Errorf("unknown dataset identifier %d", c.Dataset)
	}
}
