package main

import (
	"fmt"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/config"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/pipeline"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware/workerqueue"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/queues"
)

// runState co-groups the aggregated buckets of one run until every source
// has delivered its final chunk.
type runState struct {
	coGroup *pipeline.CoGroup
	done    map[string]bool
}

// JoinerWorker consumes aggregated buckets from both datasets, and once a
// run is complete on both sides, joins, filters, formats and persists the
// report.
type JoinerWorker struct {
	consumer *workerqueue.QueueConsumer
	cfg      *config.Config
	runs     map[string]*runState
}

// NewJoinerWorker creates the joiner and declares the join queue.
func NewJoinerWorker(connection *middleware.ConnectionConfig, cfg *config.Config) (*JoinerWorker, error) {
	consumer := workerqueue.NewQueueConsumer(queues.JoinBucketsQueue, connection)
	if consumer == nil {
		return nil, fmt.Errorf("failed to create join consumer")
	}
	if declareErr := consumer.DeclareQueue(true, false, false, false); declareErr != middleware.MessageMiddlewareSuccess {
		consumer.Close()
		return nil, fmt.Errorf("failed to declare join queue: %v", declareErr)
	}

	return &JoinerWorker{
		consumer: consumer,
		cfg:      cfg,
		runs:     make(map[string]*runState),
	}, nil
}

// Start starts consuming aggregated buckets.
func (jw *JoinerWorker) Start() middleware.MessageMiddlewareError {
	middleware.LogInfo("Joiner", "Listening on queue '%s'", jw.consumer.QueueName)
	return jw.consumer.StartConsuming(jw.createCallback())
}

// Close closes the consumer.
func (jw *JoinerWorker) Close() {
	if jw.consumer != nil {
		jw.consumer.Close()
	}
}

// createCallback creates the message processing loop.
func (jw *JoinerWorker) createCallback() middleware.OnMessageCallback {
	return func(consumeChannel middleware.ConsumeChannel, done chan error) {
		for delivery := range consumeChannel {
			if err := jw.processMessage(delivery); err != middleware.MessageMiddlewareSuccess {
				middleware.LogError("Joiner", "Failed to process message: error code %d", err)
				delivery.Nack(false, false)
				continue
			}
			delivery.Ack(false)
		}
		done <- nil
	}
}

// stateForRun returns the run's join state, creating it on first sight.
func (jw *JoinerWorker) stateForRun(runID string) *runState {
	if state, exists := jw.runs[runID]; exists {
		return state
	}

	state := &runState{
		coGroup: pipeline.NewCoGroup(pipeline.DengueSource, pipeline.RainSource),
		done:    make(map[string]bool),
	}
	jw.runs[runID] = state
	return state
}
