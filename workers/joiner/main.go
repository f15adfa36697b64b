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

	connection := &middleware.ConnectionConfig{
		Host:     cfg.RabbitHost,
		Port:     cfg.RabbitPort,
		Username: cfg.RabbitUser,
		Password: cfg.RabbitPass,
	}

	if err := middleware.WaitForConnection(connection, 10, 2*time.Second); err != nil {
		fmt.Printf("Joiner: RabbitMQ unavailable: %v\n", err)
		return
	}

	worker, err := NewJoinerWorker(connection, cfg)
	if err != nil {
		fmt.Printf("Joiner: Failed to create worker: %v\n", err)
		return
	}
	defer worker.Close()

	if startErr := worker.Start(); startErr != middleware.MessageMiddlewareSuccess {
		fmt.Printf("Joiner: Failed to start consuming: error code %d\n", startErr)
		return
	}

	// Keep the worker running.
	select {}
}
