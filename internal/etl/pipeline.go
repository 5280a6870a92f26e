package etl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BartekS5/personbatch/pkg/logger"
	"github.com/BartekS5/personbatch/pkg/models"
	"github.com/google/uuid"
)

// Step names of the import job.
const (
	ImportStepName  = "step1"
	CleanupStepName = "step2"
)

// Job runs its steps in order. The first failing step fails the job and
// the remaining steps are skipped.
type Job struct {
	Name       string
	Steps      []Step
	Listeners  []JobListener
	Repository JobRepository

	now func() time.Time
}

func NewJob(name string, repo JobRepository, steps ...Step) *Job {
	if repo == nil {
		repo = NewInMemoryJobRepository()
	}
	return &Job{
		Name:       name,
		Steps:      steps,
		Repository: repo,
		now:        time.Now,
	}
}

// NewImportJob wires the two-step import: the chunk-oriented load followed
// by a no-op step.
func NewImportJob(name string, load *ChunkStep, repo JobRepository, listeners ...JobListener) *Job {
	job := NewJob(name, repo, load, NewTaskletStep(CleanupStepName, TaskletFunc(NoopTasklet)))
	job.Listeners = listeners
	return job
}

func (j *Job) clock() time.Time {
	if j.now == nil {
		return time.Now()
	}
	return j.now()
}

// Run executes the job once. The returned execution is non-nil whenever a
// run identifier was obtained, and its Status is COMPLETED or FAILED.
// Listeners see BeforeJob and AfterJob exactly once each.
func (j *Job) Run(ctx context.Context) (*models.JobExecution, error) {
	if j.Repository == nil {
		j.Repository = NewInMemoryJobRepository()
	}

	runID, err := j.Repository.NextRunID(ctx, j.Name)
	if err != nil {
		return nil, fmt.Errorf("allocating run id for job %s: %w", j.Name, err)
	}

	exec := models.NewJobExecution(uuid.NewString(), j.Name, runID)
	exec.Start(j.clock())
	logger.Infow("Job started", "job", j.Name, "runId", runID, "executionId", exec.ID)

	var saveErrs []error
	j.save(ctx, exec, &saveErrs)

	for _, l := range j.Listeners {
		l.BeforeJob(ctx, exec)
	}

	runErr := j.runSteps(ctx, exec, &saveErrs)

	exec.Finish(runErr, j.clock())
	j.save(ctx, exec, &saveErrs)

	for _, l := range j.Listeners {
		l.AfterJob(ctx, exec)
	}

	logger.Infow("Job finished", "job", j.Name, "runId", runID, "status", exec.Status, "duration", exec.Duration())
	return exec, errors.Join(append([]error{runErr}, saveErrs...)...)
}

func (j *Job) runSteps(ctx context.Context, exec *models.JobExecution, saveErrs *[]error) error {
	for _, step := range j.Steps {
		se := exec.StartStep(step.Name(), j.clock())
		j.save(ctx, exec, saveErrs)
		logger.Infof("Executing step: [%s]", step.Name())

		err := step.Execute(ctx, se)
		se.Finish(err, j.clock())
		if err != nil {
			return fmt.Errorf("step %s: %w", step.Name(), err)
		}
		logger.Infow("Step completed", "step", se.StepName, "read", se.ReadCount, "written", se.WriteCount, "commits", se.CommitCount)
	}
	return nil
}

func (j *Job) save(ctx context.Context, exec *models.JobExecution, errs *[]error) {
	if err := j.Repository.SaveJobExecution(ctx, exec); err != nil {
		logger.Errorf("Saving execution %s of job %s failed: %v", exec.ID, j.Name, err)
		*errs = append(*errs, fmt.Errorf("saving job execution: %w", err))
	}
}
