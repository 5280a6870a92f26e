package etl

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/BartekS5/personbatch/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tableWriter stands in for the people table: every chunk is appended.
type tableWriter struct {
	chunks [][]models.Person
	rows   []models.Person
	failOn int // 1-based chunk number that fails; 0 never fails
}

func (w *tableWriter) Write(_ context.Context, items []models.Person) error {
	if w.failOn > 0 && len(w.chunks)+1 == w.failOn {
		return &PersistenceError{Op: "insert into people", Index: 0, Err: errors.New("connection lost")}
	}
	w.chunks = append(w.chunks, append([]models.Person(nil), items...))
	w.rows = append(w.rows, items...)
	return nil
}

func (w *tableWriter) CountRows(context.Context) (int64, error) {
	return int64(len(w.rows)), nil
}

type recordingListener struct {
	before, after []models.BatchStatus
}

func (l *recordingListener) BeforeJob(_ context.Context, e *models.JobExecution) {
	l.before = append(l.before, e.Status)
}

func (l *recordingListener) AfterJob(_ context.Context, e *models.JobExecution) {
	l.after = append(l.after, e.Status)
}

func names(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("first%d,last%d", i, i)
	}
	return lines
}

func newTestJob(path string, w ItemWriter, chunkSize int, repo JobRepository, listeners ...JobListener) *Job {
	step := NewChunkStep(ImportStepName, NewFlatFileReader(path, ","), SwapProcessor{}, w, chunkSize)
	return NewImportJob("importUserJob", step, repo, listeners...)
}

func TestImportJob_EndToEnd(t *testing.T) {
	path := writeInput(t, "Jane,Doe", "John,Smith")
	w := &tableWriter{}
	l := &recordingListener{}

	exec, err := newTestJob(path, w, 10, nil, l).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.StatusCompleted, exec.Status)
	assert.Equal(t, []models.Person{
		{FirstName: "Doe", LastName: "Jane"},
		{FirstName: "Smith", LastName: "John"},
	}, w.rows)
	assert.Len(t, w.chunks, 1)

	require.Len(t, exec.Steps, 2)
	assert.Equal(t, ImportStepName, exec.Steps[0].StepName)
	assert.Equal(t, models.StatusCompleted, exec.Steps[0].Status)
	assert.Equal(t, 2, exec.Steps[0].ReadCount)
	assert.Equal(t, 2, exec.Steps[0].WriteCount)
	assert.Equal(t, 1, exec.Steps[0].CommitCount)
	assert.Equal(t, CleanupStepName, exec.Steps[1].StepName)
	assert.Equal(t, models.StatusCompleted, exec.Steps[1].Status)

	assert.Equal(t, []models.BatchStatus{models.StatusRunning}, l.before)
	assert.Equal(t, []models.BatchStatus{models.StatusCompleted}, l.after)
}

func TestImportJob_ChunkSizes(t *testing.T) {
	cases := []struct{ n, c int }{
		{0, 10}, {1, 10}, {10, 10}, {11, 10}, {25, 10}, {30, 10}, {7, 1}, {7, 3},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("n=%d,c=%d", tc.n, tc.c), func(t *testing.T) {
			path := writeInput(t, names(tc.n)...)
			w := &tableWriter{}

			exec, err := newTestJob(path, w, tc.c, nil).Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, models.StatusCompleted, exec.Status)

			wantChunks := (tc.n + tc.c - 1) / tc.c
			require.Len(t, w.chunks, wantChunks)
			if wantChunks > 0 {
				last := tc.n % tc.c
				if last == 0 {
					last = tc.c
				}
				assert.Len(t, w.chunks[wantChunks-1], last)
			}

			require.Len(t, w.rows, tc.n)
			for i, p := range w.rows {
				assert.Equal(t, models.NewPerson(fmt.Sprintf("last%d", i), fmt.Sprintf("first%d", i)), p)
			}
		})
	}
}

func TestImportJob_MalformedLineFailsJob(t *testing.T) {
	lines := names(25)
	lines[14] = "broken"
	path := writeInput(t, lines...)
	w := &tableWriter{}
	l := &recordingListener{}

	exec, err := newTestJob(path, w, 10, nil, l).Run(context.Background())
	require.Error(t, err)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 15, fe.Line)

	assert.Equal(t, models.StatusFailed, exec.Status)
	assert.NotEmpty(t, exec.ExitMessage)
	assert.Len(t, w.chunks, 1)
	assert.Len(t, w.rows, 10)

	require.Len(t, exec.Steps, 1, "step2 must not run after a failure")
	assert.Equal(t, models.StatusFailed, exec.Steps[0].Status)
	assert.Equal(t, []models.BatchStatus{models.StatusFailed}, l.after)
}

func TestImportJob_BlankLineFailsJob(t *testing.T) {
	path := writeInput(t, "Jane,Doe", "", "John,Smith")
	w := &tableWriter{}

	exec, err := newTestJob(path, w, 10, nil).Run(context.Background())
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 2, fe.Line)
	assert.Equal(t, models.StatusFailed, exec.Status)
	assert.Empty(t, w.rows)
}

func TestImportJob_MissingInputFailsJob(t *testing.T) {
	w := &tableWriter{}
	step := NewChunkStep(ImportStepName, NewFlatFileReader(t.TempDir()+"/missing.csv", ","), SwapProcessor{}, w, 10)
	l := &recordingListener{}

	exec, err := NewImportJob("importUserJob", step, nil, l).Run(context.Background())
	var re *ResourceError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, models.StatusFailed, exec.Status)
	assert.Empty(t, w.chunks)
	assert.Len(t, l.after, 1)
}

func TestImportJob_WriterFailureStopsStep(t *testing.T) {
	path := writeInput(t, names(35)...)
	w := &tableWriter{failOn: 2}

	exec, err := newTestJob(path, w, 10, nil).Run(context.Background())
	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)

	assert.Equal(t, models.StatusFailed, exec.Status)
	assert.Len(t, w.chunks, 1)
	assert.Equal(t, 10, exec.Steps[0].WriteCount)
	assert.Equal(t, 1, exec.Steps[0].CommitCount)
}

func TestImportJob_RerunDuplicatesRowsAndIncrementsRunID(t *testing.T) {
	path := writeInput(t, "Jane,Doe", "John,Smith")
	repo := NewInMemoryJobRepository()
	w := &tableWriter{}

	first, err := newTestJob(path, w, 10, repo).Run(context.Background())
	require.NoError(t, err)
	second, err := newTestJob(path, w, 10, repo).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.RunID)
	assert.Equal(t, int64(2), second.RunID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, w.rows, 4)
	assert.Equal(t, w.rows[:2], w.rows[2:])

	history, err := repo.FindJobExecutions(context.Background(), "importUserJob", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(2), history[0].RunID)
	assert.Equal(t, models.StatusCompleted, history[0].Status)
}

type failingRepo struct {
	*InMemoryJobRepository
	runIDErr, saveErr error
}

func (r *failingRepo) NextRunID(ctx context.Context, job string) (int64, error) {
	if r.runIDErr != nil {
		return 0, r.runIDErr
	}
	return r.InMemoryJobRepository.NextRunID(ctx, job)
}

func (r *failingRepo) SaveJobExecution(ctx context.Context, e *models.JobExecution) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	return r.InMemoryJobRepository.SaveJobExecution(ctx, e)
}

func TestJob_RunIDFailureNeverStartsJob(t *testing.T) {
	repo := &failingRepo{InMemoryJobRepository: NewInMemoryJobRepository(), runIDErr: errors.New("mongo down")}
	l := &recordingListener{}
	ran := false
	job := NewJob("j", repo, NewTaskletStep("only", TaskletFunc(func(context.Context, *models.StepExecution) error {
		ran = true
		return nil
	})))
	job.Listeners = []JobListener{l}

	exec, err := job.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, exec)
	assert.False(t, ran)
	assert.Empty(t, l.before)
	assert.Empty(t, l.after)
}

func TestJob_SaveFailureIsReportedButStepsRun(t *testing.T) {
	saveErr := errors.New("write concern failed")
	repo := &failingRepo{InMemoryJobRepository: NewInMemoryJobRepository(), saveErr: saveErr}
	runs := 0
	job := NewJob("j", repo, NewTaskletStep("only", TaskletFunc(func(context.Context, *models.StepExecution) error {
		runs++
		return nil
	})))

	exec, err := job.Run(context.Background())
	require.ErrorIs(t, err, saveErr)
	assert.Equal(t, 1, runs)
	assert.Equal(t, models.StatusCompleted, exec.Status)
}

func TestTaskletStep_RunsOnce(t *testing.T) {
	calls := 0
	step := NewTaskletStep(CleanupStepName, TaskletFunc(func(_ context.Context, e *models.StepExecution) error {
		calls++
		return NoopTasklet(context.Background(), e)
	}))

	exec, err := NewJob("j", nil, step).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, models.StatusCompleted, exec.Status)
}

func TestChunkStep_RejectsNonPositiveChunkSize(t *testing.T) {
	path := writeInput(t, "Jane,Doe")
	step := NewChunkStep(ImportStepName, NewFlatFileReader(path, ","), nil, &tableWriter{}, 0)

	err := step.Execute(context.Background(), &models.StepExecution{})
	require.Error(t, err)
}
