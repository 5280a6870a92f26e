package etl

import (
	"context"
	"sort"
	"sync"

	"github.com/BartekS5/personbatch/pkg/models"
)

// InMemoryJobRepository keeps execution history for the lifetime of the
// process only. Run identifiers restart at 1 on every new repository.
type InMemoryJobRepository struct {
	mu         sync.RWMutex
	counters   map[string]int64
	executions map[string]*models.JobExecution
}

func NewInMemoryJobRepository() *InMemoryJobRepository {
	return &InMemoryJobRepository{
		counters:   make(map[string]int64),
		executions: make(map[string]*models.JobExecution),
	}
}

func (r *InMemoryJobRepository) NextRunID(_ context.Context, jobName string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[jobName]++
	return r.counters[jobName], nil
}

func (r *InMemoryJobRepository) SaveJobExecution(_ context.Context, exec *models.JobExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.executions[exec.ID] = cloneExecution(exec)
	return nil
}

// FindJobExecutions returns the newest executions of jobName first.
// A limit of zero or less returns all of them.
func (r *InMemoryJobRepository) FindJobExecutions(_ context.Context, jobName string, limit int) ([]*models.JobExecution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.JobExecution
	for _, e := range r.executions {
		if e.JobName == jobName {
			out = append(out, cloneExecution(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RunID > out[j].RunID })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func cloneExecution(e *models.JobExecution) *models.JobExecution {
	c := *e
	c.Steps = make([]*models.StepExecution, len(e.Steps))
	for i, s := range e.Steps {
		sc := *s
		c.Steps[i] = &sc
	}
	return &c
}
