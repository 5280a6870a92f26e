package etl

import (
	"testing"

	"github.com/BartekS5/personbatch/pkg/models"
	"github.com/stretchr/testify/assert"
)

func validDefinition() *models.JobDefinition {
	return &models.JobDefinition{
		Name: "importUserJob",
		Input: models.InputConfig{
			Path:      "sample-data.csv",
			Delimiter: ",",
			Names:     []string{"firstName", "lastName"},
		},
		ChunkSize: 10,
		Table:     "people",
		Processor: "swap",
	}
}

func TestValidateDefinition(t *testing.T) {
	assert.NoError(t, ValidateDefinition(validDefinition()))

	broken := []func(d *models.JobDefinition){
		func(d *models.JobDefinition) { d.Name = "" },
		func(d *models.JobDefinition) { d.Input.Path = "" },
		func(d *models.JobDefinition) { d.Input.Delimiter = "" },
		func(d *models.JobDefinition) { d.Input.Names = []string{"firstName"} },
		func(d *models.JobDefinition) { d.ChunkSize = 0 },
		func(d *models.JobDefinition) { d.Table = "people--" },
		func(d *models.JobDefinition) { d.Processor = "shuffle" },
	}
	for i, mutate := range broken {
		d := validDefinition()
		mutate(d)
		assert.Error(t, ValidateDefinition(d), "case %d", i)
	}
}

func TestValidateDefinition_ReportsAllProblems(t *testing.T) {
	d := validDefinition()
	d.ChunkSize = -1
	d.Table = ""

	err := ValidateDefinition(d)
	assert.ErrorContains(t, err, "chunk size")
	assert.ErrorContains(t, err, "invalid table name")
}
