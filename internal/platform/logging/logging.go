package logging

import (
	"log"

	"go.uber.org/zap"
)

// New builds the process-wide zap logger.
func New() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Could not initialize logger: %v", err)
	}
	return logger
}
