package config

import (
	"fmt"
	"os"

	"github.com/BartekS5/personbatch/pkg/models"
)

// LoadJobDefinition reads the JSON job file at filePath and lays it over
// base. Fields absent from the file keep their base values.
func LoadJobDefinition(filePath string, base models.JobDefinition) (*models.JobDefinition, error) {
	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file '%s': %w", filePath, err)
	}

	def, err := models.LoadJobDefinition(bytes, base)
	if err != nil {
		return nil, fmt.Errorf("failed to parse job file '%s': %w", filePath, err)
	}
	return def, nil
}
