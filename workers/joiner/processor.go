package main

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/pipeline"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/protocol/chunk"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/storage"
)

// processMessage adds one source's aggregated buckets to the run's
// co-group. When both sources have delivered their final chunk, the run is
// finalized.
func (jw *JoinerWorker) processMessage(delivery amqp.Delivery) middleware.MessageMiddlewareError {
	message, err := chunk.Deserialize(delivery.Body)
	if err != nil {
		middleware.LogError("Joiner", "Failed to deserialize chunk: %v", err)
		return middleware.MessageMiddlewareMessageError
	}
	if message.Stage != chunk.StageAggregated {
		middleware.LogWarn("Joiner", "Unexpected stage %d on join queue", message.Stage)
		return middleware.MessageMiddlewareMessageError
	}

	source, err := message.DatasetName()
	if err != nil {
		middleware.LogError("Joiner", "%v", err)
		return middleware.MessageMiddlewareMessageError
	}

	buckets, err := chunk.DecodeBuckets(message.Lines())
	if err != nil {
		middleware.LogError("Joiner", "Failed to decode buckets from %s: %v", source, err)
		return middleware.MessageMiddlewareMessageError
	}

	state := jw.stateForRun(message.RunID)
	for _, bucket := range buckets {
		state.coGroup.Add(source, bucket)
	}
	if message.IsLastChunk {
		state.done[source] = true
	}

	middleware.LogInfo("Joiner", "Received %d %s buckets for run %s (last: %t)",
		len(buckets), source, message.RunID, message.IsLastChunk)

	if state.done[pipeline.DengueSource] && state.done[pipeline.RainSource] {
		return jw.finalizeRun(message.RunID, state)
	}
	return middleware.MessageMiddlewareSuccess
}

// finalizeRun filters the co-grouped keys, formats the surviving rows and
// writes the report.
func (jw *JoinerWorker) finalizeRun(runID string, state *runState) middleware.MessageMiddlewareError {
	var rows [][]string
	for _, bucket := range state.coGroup.Buckets() {
		if !state.coGroup.Complete(bucket) {
			continue
		}
		row, err := pipeline.UnpackRow(bucket)
		if err != nil {
			middleware.LogError("Joiner", "Aborting run %s: %v", runID, err)
			delete(jw.runs, runID)
			return middleware.MessageMiddlewareMessageError
		}
		rows = append(rows, row)
	}

	if err := jw.writeReport(rows); err != nil {
		middleware.LogError("Joiner", "Failed to write report for run %s: %v", runID, err)
		delete(jw.runs, runID)
		return middleware.MessageMiddlewareMessageError
	}

	delete(jw.runs, runID)
	middleware.LogInfo("Joiner", "Run %s complete: %d report rows", runID, len(rows))
	return middleware.MessageMiddlewareSuccess
}

// writeReport persists the rows to the sharded CSV files and, when a DSN is
// configured, to PostgreSQL.
func (jw *JoinerWorker) writeReport(rows [][]string) error {
	csvWriter, err := storage.NewShardedCSVWriter(jw.cfg.OutputDir, jw.cfg.OutputPrefix, jw.cfg.OutputShards)
	if err != nil {
		return err
	}
	if err := csvWriter.Write(rows); err != nil {
		csvWriter.Close()
		return err
	}
	if err := csvWriter.Close(); err != nil {
		return err
	}

	if jw.cfg.PostgresDSN == "" {
		return nil
	}
	pgWriter, err := storage.NewPostgresWriter(jw.cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer pgWriter.Close()
	return pgWriter.Write(rows)
}
