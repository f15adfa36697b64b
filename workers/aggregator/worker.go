package main

import (
	"fmt"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/pipeline"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/protocol/chunk"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware/workerqueue"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/queues"
)

// AggregatorWorker consumes one dataset's raw chunks, runs the per-source
// parse/key/sum stages, and publishes the summed buckets to the join queue
// once the last chunk of a run has been collected.
type AggregatorWorker struct {
	consumer     *workerqueue.QueueConsumer
	joinProducer *workerqueue.QueueProducer
	dataset      byte
	runs         map[string]*pipeline.Aggregation
}

// NewAggregatorWorker creates an aggregator for the given dataset.
func NewAggregatorWorker(connection *middleware.ConnectionConfig, dataset byte) (*AggregatorWorker, error) {
	queueName, err := queues.ForDataset(dataset)
	if err != nil {
		return nil, err
	}

	consumer := workerqueue.NewQueueConsumer(queueName, connection)
	if consumer == nil {
		return nil, fmt.Errorf("failed to create consumer for queue '%s'", queueName)
	}
	if declareErr := consumer.DeclareQueue(true, false, false, false); declareErr != middleware.MessageMiddlewareSuccess {
		consumer.Close()
		return nil, fmt.Errorf("failed to declare queue '%s': %v", queueName, declareErr)
	}

	joinProducer := workerqueue.NewQueueProducer(queues.JoinBucketsQueue, connection)
	if joinProducer == nil {
		consumer.Close()
		return nil, fmt.Errorf("failed to create join producer")
	}
	if declareErr := joinProducer.DeclareQueue(true, false, false, false); declareErr != middleware.MessageMiddlewareSuccess {
		consumer.Close()
		joinProducer.Close()
		return nil, fmt.Errorf("failed to declare join queue: %v", declareErr)
	}

	return &AggregatorWorker{
		consumer:     consumer,
		joinProducer: joinProducer,
		dataset:      dataset,
		runs:         make(map[string]*pipeline.Aggregation),
	}, nil
}

// Start starts consuming raw chunks.
func (aw *AggregatorWorker) Start() middleware.MessageMiddlewareError {
	middleware.LogInfo("Aggregator", "Listening on queue '%s'", aw.consumer.QueueName)
	return aw.consumer.StartConsuming(aw.createCallback())
}

// Close closes all connections.
func (aw *AggregatorWorker) Close() {
	if aw.consumer != nil {
		aw.consumer.Close()
	}
	if aw.joinProducer != nil {
		aw.joinProducer.Close()
	}
}

// createCallback creates the message processing loop. A processing failure
// is not requeued: the batch is deterministic, so redelivery would fail the
// same way and the run is aborted instead.
func (aw *AggregatorWorker) createCallback() middleware.OnMessageCallback {
	return func(consumeChannel middleware.ConsumeChannel, done chan error) {
		for delivery := range consumeChannel {
			if err := aw.processMessage(delivery); err != middleware.MessageMiddlewareSuccess {
				middleware.LogError("Aggregator", "Failed to process message: error code %d", err)
				delivery.Nack(false, false)
				continue
			}
			delivery.Ack(false)
		}
		done <- nil
	}
}

// aggregationForRun returns the run's aggregation, creating it on first
// sight. Rain sums are rounded after summation, dengue sums are not.
func (aw *AggregatorWorker) aggregationForRun(runID string) *pipeline.Aggregation {
	if aggregation, exists := aw.runs[runID]; exists {
		return aggregation
	}

	var aggregation *pipeline.Aggregation
	if aw.dataset == chunk.DatasetRain {
		aggregation = pipeline.NewRoundedAggregation(pipeline.RainPrecision)
	} else {
		aggregation = pipeline.NewAggregation()
	}
	aw.runs[runID] = aggregation
	return aggregation
}
