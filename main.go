package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/sapessi/nearly-divisionless-rand/src/rng"
	"github.com/sapessi/nearly-divisionless-rand/src/server"
)

func main() {
	zapLogger, _ := zap.NewProduction()
	defer zapLogger.Sync()
	log := zapLogger.Sugar()

	reader, health, err := rng.NewSerialRNGFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	// Single physical source shared by handlers and the health monitor.
	locked := rng.NewLockedReader(reader)

	port := os.Getenv("PORT")
	if port == "" {
		port = "777"
	}

	server.New(port, locked, health, log).RunOrDie()
}
