// Package config loads application settings from the environment and the
// optional JSON job definition file.
package config

import (
	"errors"

	"github.com/BartekS5/personbatch/pkg/models"
)

// Config holds all configuration for the application,
// typically loaded from environment variables.
type Config struct {
	SQLConnString   string
	MongoConnString string
	MongoDatabase   string

	JobName   string
	InputFile string
	Delimiter string
	ChunkSize int
	Table     string
	Processor string

	LogFile  string
	LogLevel string
}

// LoadConfig loads application settings from environment variables
// (which may be populated by the .env file in main.go).
func LoadConfig() (*Config, error) {
	chunkSize, err := getEnvInt("CHUNK_SIZE", 10)
	if err != nil {
		return nil, err
	}

	return &Config{
		SQLConnString:   getEnv("SQL_CONNECTION_STRING", ""),
		MongoConnString: getEnv("MONGO_CONNECTION_STRING", ""),
		MongoDatabase:   getEnv("MONGO_DATABASE", "batchdb"),
		JobName:         getEnv("JOB_NAME", "importUserJob"),
		InputFile:       getEnv("INPUT_FILE", "sample-data.csv"),
		Delimiter:       getEnv("INPUT_DELIMITER", ","),
		ChunkSize:       chunkSize,
		Table:           getEnv("PEOPLE_TABLE", "people"),
		Processor:       getEnv("PROCESSOR", "swap"),
		LogFile:         getEnv("LOG_FILE", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}, nil
}

// RequireSQL reports a missing destination connection.
func (c *Config) RequireSQL() error {
	if c.SQLConnString == "" {
		return errors.New("SQL_CONNECTION_STRING environment variable not set")
	}
	return nil
}

// JobDefinition returns the definition implied by the environment alone.
func (c *Config) JobDefinition() models.JobDefinition {
	return models.JobDefinition{
		Name: c.JobName,
		Input: models.InputConfig{
			Path:      c.InputFile,
			Delimiter: c.Delimiter,
			Names:     append([]string(nil), models.DefaultFieldNames...),
		},
		ChunkSize: c.ChunkSize,
		Table:     c.Table,
		Processor: c.Processor,
	}
}
