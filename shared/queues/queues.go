// Package queues centralizes the queue names used across the distributed
// pipeline so producers and consumers never drift apart.
package queues

import (
	"fmt"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/protocol/chunk"
)

const (
	// Raw dataset chunks, dispatcher -> aggregator workers.
	DengueChunksQueue = "dengue-chunks-queue"
	RainChunksQueue   = "rain-chunks-queue"

	// Aggregated buckets, aggregator workers -> joiner.
	JoinBucketsQueue = "join-buckets-queue"
)

// ForDataset returns the raw-chunk queue of a dataset identifier.
func ForDataset(dataset byte) (string, error) {
	switch dataset {
	case chunk.DatasetDengue:
		return DengueChunksQueue, nil
	case chunk.DatasetRain:
		return RainChunksQueue, nil
	default:
		return "", fmt.Errorf("unknown dataset identifier %d", dataset)
	}
}
