package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/config"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/protocol/chunk"
	"github.com/NickolasCrema/Dengue-Cases-Rainfall-Index-Pipeline/shared/middleware"
)

// loadDataset resolves which dataset this worker instance aggregates. The
// same binary runs once per dataset, selected by the DATASET variable.
func loadDataset() (byte, error) {
	switch strings.ToLower(os.Getenv("DATASET")) {
	case "dengue":
		return chunk.DatasetDengue, nil
	case "rain":
		return chunk.DatasetRain, nil
	default:
		return 0, fmt.Errorf("DATASET must be 'dengue' or 'rain', got %q", os.Getenv("DATASET"))
	}
}

// connectionConfig builds the broker connection from the shared config.
func connectionConfig(cfg *config.Config) *middleware.ConnectionConfig {
	return &middleware.ConnectionConfig{
		Host:     cfg.RabbitHost,
		Port:     cfg.RabbitPort,
		Username: cfg.RabbitUser,
		Password: cfg.RabbitPass,
	}
}
