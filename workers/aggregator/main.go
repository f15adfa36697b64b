package main

import (
	"fmt"
	"time"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/config"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware"
)

func main() {
	cfg := config.Load()
	middleware.SetLogLevelFromString(cfg.LogLevel)

	dataset, err := loadDataset()
	if err != nil {
		fmt.Printf("Aggregator: %v\n", err)
		return
	}

	connection := connectionConfig(cfg)
	if err := middleware.WaitForConnection(connection, 10, 2*time.Second); err != nil {
		fmt.Printf("Aggregator: RabbitMQ unavailable: %v\n", err)
		return
	}

	worker, err := NewAggregatorWorker(connection, dataset)
	if err != nil {
		fmt.Printf("Aggregator: Failed to create worker: %v\n", err)
		return
	}
	defer worker.Close()

	if startErr := worker.Start(); startErr != middleware.MessageMiddlewareSuccess {
		fmt.Printf("Aggregator: Failed to start consuming: error code %d\n", startErr)
		return
	}

	// Keep the worker running.
	select {}
}
