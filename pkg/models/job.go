package models

import "encoding/json"

// JobDefinition represents the root of the JSON job file.
type JobDefinition struct {
	Name      string      `json:"name"`
	Input     InputConfig `json:"input"`
	ChunkSize int         `json:"chunkSize"`
	Table     string      `json:"table"`
	Processor string      `json:"processor"`
}

type InputConfig struct {
	Path      string   `json:"path"`
	Delimiter string   `json:"delimiter"`
	Names     []string `json:"names,omitempty"`
}

// LoadJobDefinition decodes data on top of base, so fields missing from
// the file keep the values already set in base.
func LoadJobDefinition(data []byte, base JobDefinition) (*JobDefinition, error) {
	def := base
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, err
	}
	return &def, nil
}
