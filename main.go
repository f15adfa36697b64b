// Local runner: executes the whole report pipeline in a single process,
// from the two raw datasets to the sharded report files.
package main

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/config"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/ingest"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/pipeline"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/storage"
)

func main() {
	cfg := config.Load()
	middleware.SetLogLevelFromString(cfg.LogLevel)

	if err := run(cfg); err != nil {
		middleware.LogError("Pipeline", "Run failed: %v", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	p := pipeline.New()
	dengue := pipeline.NewAggregation()
	rain := pipeline.NewRoundedAggregation(pipeline.RainPrecision)
	if err := p.Register(pipeline.DengueSource, dengue); err != nil {
		return err
	}
	if err := p.Register(pipeline.RainSource, rain); err != nil {
		return err
	}

	// The two source pipelines have no data dependency on each other
	// until the join barrier, so they run concurrently.
	var group errgroup.Group
	group.Go(func() error {
		lines, err := ingest.ReadLines(cfg.DengueDatasetPath)
		if err != nil {
			return fmt.Errorf("dengue dataset: %w", err)
		}
		middleware.LogInfo("Pipeline", "Read %d dengue records", len(lines))
		return pipeline.CollectDengue(dengue, lines)
	})
	group.Go(func() error {
		lines, err := ingest.ReadLines(cfg.RainDatasetPath)
		if err != nil {
			return fmt.Errorf("rain dataset: %w", err)
		}
		middleware.LogInfo("Pipeline", "Read %d rainfall records", len(lines))
		return pipeline.CollectRain(rain, lines)
	})
	if err := group.Wait(); err != nil {
		return err
	}

	middleware.LogInfo("Pipeline", "Aggregated %d dengue keys and %d rain keys", dengue.Len(), rain.Len())

	rows, err := p.Rows()
	if err != nil {
		return err
	}
	middleware.LogInfo("Pipeline", "%d keys survived the completeness filter", len(rows))

	return writeReport(cfg, rows)
}

func writeReport(cfg *config.Config, rows [][]string) error {
	csvWriter, err := storage.NewShardedCSVWriter(cfg.OutputDir, cfg.OutputPrefix, cfg.OutputShards)
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
	middleware.LogInfo("Pipeline", "Report written to %s/%s-*.csv", cfg.OutputDir, cfg.OutputPrefix)

	if cfg.PostgresDSN == "" {
		return nil
	}
	pgWriter, err := storage.NewPostgresWriter(cfg.PostgresDSN)
	if err != nil {
		return err
	}
	defer pgWriter.Close()
	if err := pgWriter.Write(rows); err != nil {
		return err
	}
	middleware.LogInfo("Pipeline", "Report stored in PostgreSQL")
	return nil
}
