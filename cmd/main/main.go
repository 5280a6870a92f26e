package main

import (
	"os"

	"github.com/BartekS5/personbatch/internal/cli"
	"github.com/BartekS5/personbatch/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		logger.Warnf("No %s file found, using system environment variables", envFile)
	}

	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
