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
		fmt.Printf("Dispatcher: RabbitMQ unavailable: %v\n", err)
		return
	}

	dispatcher, err := NewDispatcher(connection, cfg.ChunkSize)
	if err != nil {
		fmt.Printf("Dispatcher: Failed to create dispatcher: %v\n", err)
		return
	}
	defer dispatcher.Close()

	if err := dispatcher.Run(cfg.DengueDatasetPath, cfg.RainDatasetPath); err != nil {
		fmt.Printf("Dispatcher: Run failed: %v\n", err)
		return
	}

	middleware.LogInfo("Dispatcher", "Both datasets dispatched")
}
