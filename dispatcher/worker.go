package main

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/protocol/chunk"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware/workerqueue"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/queues"
)

// Dispatcher reads the raw datasets and publishes them as line chunks to
// the per-dataset queues. Every run gets a fresh run ID so the downstream
// workers can keep concurrent runs apart.
type Dispatcher struct {
	dengueProducer *workerqueue.QueueProducer
	rainProducer   *workerqueue.QueueProducer
	chunkSize      int
	runID          string
}

// NewDispatcher creates the two dataset producers and declares their
// queues.
func NewDispatcher(connection *middleware.ConnectionConfig, chunkSize int) (*Dispatcher, error) {
	dengueProducer := workerqueue.NewQueueProducer(queues.DengueChunksQueue, connection)
	if dengueProducer == nil {
		return nil, fmt.Errorf("failed to create dengue chunk producer")
	}
	rainProducer := workerqueue.NewQueueProducer(queues.RainChunksQueue, connection)
	if rainProducer == nil {
		dengueProducer.Close()
		return nil, fmt.Errorf("failed to create rain chunk producer")
	}

	for _, producer := range []*workerqueue.QueueProducer{dengueProducer, rainProducer} {
		if err := producer.DeclareQueue(true, false, false, false); err != middleware.MessageMiddlewareSuccess {
			dengueProducer.Close()
			rainProducer.Close()
			return nil, fmt.Errorf("failed to declare queue '%s': %v", producer.QueueName, err)
		}
	}

	return &Dispatcher{
		dengueProducer: dengueProducer,
		rainProducer:   rainProducer,
		chunkSize:      chunkSize,
		runID:          uuid.NewString(),
	}, nil
}

// Run dispatches both datasets.
func (d *Dispatcher) Run(denguePath, rainPath string) error {
	if err := d.dispatchDataset(d.dengueProducer, chunk.DatasetDengue, denguePath); err != nil {
		return fmt.Errorf("dispatch dengue dataset: %w", err)
	}
	if err := d.dispatchDataset(d.rainProducer, chunk.DatasetRain, rainPath); err != nil {
		return fmt.Errorf("dispatch rain dataset: %w", err)
	}
	return nil
}

// Close closes both producers.
func (d *Dispatcher) Close() {
	if d.dengueProducer != nil {
		d.dengueProducer.Close()
	}
	if d.rainProducer != nil {
		d.rainProducer.Close()
	}
}
