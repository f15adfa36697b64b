package main

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/pipeline"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/protocol/chunk"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware"
)

// processMessage collects one raw chunk into its run's aggregation and, on
// the last chunk of the run, emits the summed buckets to the join queue.
func (aw *AggregatorWorker) processMessage(delivery amqp.Delivery) middleware.MessageMiddlewareError {
	message, err := chunk.Deserialize(delivery.Body)
	if err != nil {
		middleware.LogError("Aggregator", "Failed to deserialize chunk: %v", err)
		return middleware.MessageMiddlewareMessageError
	}

	if message.Dataset != aw.dataset || message.Stage != chunk.StageRawLines {
		middleware.LogWarn("Aggregator", "Unexpected chunk (dataset %d, stage %d) on queue '%s'",
			message.Dataset, message.Stage, aw.consumer.QueueName)
		return middleware.MessageMiddlewareMessageError
	}

	aggregation := aw.aggregationForRun(message.RunID)
	if err := aw.collect(aggregation, message.Lines()); err != nil {
		// Strict-path parse failures abort the whole run, not one record.
		middleware.LogError("Aggregator", "Aborting run %s: %v", message.RunID, err)
		delete(aw.runs, message.RunID)
		return middleware.MessageMiddlewareMessageError
	}

	middleware.LogDebug("Aggregator", "Collected chunk %d (%d lines) for run %s",
		message.ChunkNumber, message.LineCount, message.RunID)

	if message.IsLastChunk {
		return aw.emitBuckets(message.RunID, aggregation)
	}
	return middleware.MessageMiddlewareSuccess
}

// collect feeds raw lines through the dataset's key derivation.
func (aw *AggregatorWorker) collect(aggregation *pipeline.Aggregation, lines []string) error {
	if aw.dataset == chunk.DatasetRain {
		return pipeline.CollectRain(aggregation, lines)
	}
	return pipeline.CollectDengue(aggregation, lines)
}

// emitBuckets publishes the run's summed buckets and drops the run state.
// This is the aggregation barrier: it only fires once every chunk of the
// run has been collected.
func (aw *AggregatorWorker) emitBuckets(runID string, aggregation *pipeline.Aggregation) middleware.MessageMiddlewareError {
	buckets := aggregation.Buckets()
	message := chunk.NewChunk(runID, aw.dataset, chunk.StageAggregated, 0, true, chunk.EncodeBuckets(buckets))

	payload, err := chunk.Serialize(message)
	if err != nil {
		middleware.LogError("Aggregator", "Failed to serialize buckets for run %s: %v", runID, err)
		return middleware.MessageMiddlewareMessageError
	}
	if sendErr := aw.joinProducer.Send(payload); sendErr != middleware.MessageMiddlewareSuccess {
		middleware.LogError("Aggregator", "Failed to send buckets for run %s: error code %d", runID, sendErr)
		return sendErr
	}

	delete(aw.runs, runID)
	middleware.LogInfo("Aggregator", "Emitted %d buckets for run %s", len(buckets), runID)
	return middleware.MessageMiddlewareSuccess
}
