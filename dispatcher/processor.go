package main

import (
	"fmt"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/ingest"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/protocol/chunk"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware/workerqueue"
)

// dispatchDataset reads one dataset and publishes it as raw-line chunks.
// The final chunk carries the last-chunk flag the aggregation barrier
// waits on; an empty dataset still produces one empty final chunk so the
// barrier always resolves.
func (d *Dispatcher) dispatchDataset(producer *workerqueue.QueueProducer, dataset byte, path string) error {
	lines, err := ingest.ReadLines(path)
	if err != nil {
		return err
	}

	batches := ingest.ChunkLines(lines, d.chunkSize)
	if len(batches) == 0 {
		batches = [][]string{nil}
	}

	for number, batch := range batches {
		isLast := number == len(batches)-1
		message := chunk.NewChunk(d.runID, dataset, chunk.StageRawLines, number, isLast, batch)

		payload, err := chunk.Serialize(message)
		if err != nil {
			return fmt.Errorf("serialize chunk %d: %w", number, err)
		}
		if sendErr := producer.Send(payload); sendErr != middleware.MessageMiddlewareSuccess {
			return fmt.Errorf("send chunk %d to queue '%s': error code %d", number, producer.QueueName, sendErr)
		}

		middleware.LogDebug("Dispatcher", "Sent chunk %d/%d (%d lines) to queue '%s'",
			number+1, len(batches), len(batch), producer.QueueName)
	}

	middleware.LogInfo("Dispatcher", "Dispatched %d lines in %d chunks to queue '%s'",
		len(lines), len(batches), producer.QueueName)
	return nil
}
