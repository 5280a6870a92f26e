package etl

import (
	"context"

	"github.com/BartekS5/personbatch/pkg/models"
)

// ItemReader yields records one at a time and returns io.EOF once the
// input is exhausted.
type ItemReader interface {
	Open(ctx context.Context) error
	Read(ctx context.Context) (models.Person, error)
	Close() error
}

// ItemProcessor transforms a record before it is written. Implementations
// must be deterministic and free of side effects.
type ItemProcessor interface {
	Process(ctx context.Context, item models.Person) (models.Person, error)
}

// ItemWriter persists one chunk. Either the whole chunk is stored or none
// of it is.
type ItemWriter interface {
	Write(ctx context.Context, items []models.Person) error
}

// Tasklet is a single unit of work run by a TaskletStep.
type Tasklet interface {
	Execute(ctx context.Context, exec *models.StepExecution) error
}

// Step is one phase of a job.
type Step interface {
	Name() string
	Execute(ctx context.Context, exec *models.StepExecution) error
}

// JobListener observes the start and end of a job. It must not change
// control flow, so neither hook returns an error.
type JobListener interface {
	BeforeJob(ctx context.Context, exec *models.JobExecution)
	AfterJob(ctx context.Context, exec *models.JobExecution)
}

// JobRepository stores execution history and hands out run identifiers.
type JobRepository interface {
	NextRunID(ctx context.Context, jobName string) (int64, error)
	SaveJobExecution(ctx context.Context, exec *models.JobExecution) error
	FindJobExecutions(ctx context.Context, jobName string, limit int) ([]*models.JobExecution, error)
}
