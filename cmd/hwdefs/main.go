package main

import (
	"log"
	"os"

	"go.uber.org/zap"
)

// Version is set at build time.
var Version = "dev"

func main() {
	// Logger initialisieren
	logger, err := newLogger(defaultLogConfig())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	a := newApp(logger)
	err = a.rootCommand().Execute()
	_ = a.logger.Sync()

	if err != nil {
		a.logger.Error("hwdefs failed", zap.Error(err))
		os.Exit(1)
	}
}
