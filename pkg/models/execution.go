package models

import "time"

// BatchStatus is the lifecycle state of a job or step execution.
type BatchStatus string

const (
	StatusNotStarted BatchStatus = "NOT_STARTED"
	StatusRunning    BatchStatus = "RUNNING"
	StatusCompleted  BatchStatus = "COMPLETED"
	StatusFailed     BatchStatus = "FAILED"
)

// IsTerminal reports whether no further transitions are possible.
func (s BatchStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// JobExecution is one run of a job definition as persisted in the
// job repository.
type JobExecution struct {
	ID          string           `json:"id" bson:"_id"`
	JobName     string           `json:"jobName" bson:"jobName"`
	RunID       int64            `json:"runId" bson:"runId"`
	Status      BatchStatus      `json:"status" bson:"status"`
	StartTime   time.Time        `json:"startTime" bson:"startTime"`
	EndTime     time.Time        `json:"endTime,omitempty" bson:"endTime,omitempty"`
	ExitMessage string           `json:"exitMessage,omitempty" bson:"exitMessage,omitempty"`
	Steps       []*StepExecution `json:"steps" bson:"steps"`
}

type StepExecution struct {
	StepName    string      `json:"stepName" bson:"stepName"`
	Status      BatchStatus `json:"status" bson:"status"`
	ReadCount   int         `json:"readCount" bson:"readCount"`
	WriteCount  int         `json:"writeCount" bson:"writeCount"`
	CommitCount int         `json:"commitCount" bson:"commitCount"`
	StartTime   time.Time   `json:"startTime" bson:"startTime"`
	EndTime     time.Time   `json:"endTime,omitempty" bson:"endTime,omitempty"`
	ExitMessage string      `json:"exitMessage,omitempty" bson:"exitMessage,omitempty"`
}

func NewJobExecution(id, jobName string, runID int64) *JobExecution {
	return &JobExecution{
		ID:      id,
		JobName: jobName,
		RunID:   runID,
		Status:  StatusNotStarted,
		Steps:   []*StepExecution{},
	}
}

// Start moves the execution into RUNNING.
func (e *JobExecution) Start(now time.Time) {
	e.Status = StatusRunning
	e.StartTime = now
}

// StartStep appends a running step execution and returns it.
func (e *JobExecution) StartStep(name string, now time.Time) *StepExecution {
	se := &StepExecution{StepName: name, Status: StatusRunning, StartTime: now}
	e.Steps = append(e.Steps, se)
	return se
}

// CurrentStep returns the most recently started step, or nil.
func (e *JobExecution) CurrentStep() *StepExecution {
	if len(e.Steps) == 0 {
		return nil
	}
	return e.Steps[len(e.Steps)-1]
}

// Finish records the terminal status. A nil err means COMPLETED.
func (e *JobExecution) Finish(err error, now time.Time) {
	e.EndTime = now
	if err != nil {
		e.Status = StatusFailed
		e.ExitMessage = err.Error()
		return
	}
	e.Status = StatusCompleted
}

func (s *StepExecution) Finish(err error, now time.Time) {
	s.EndTime = now
	if err != nil {
		s.Status = StatusFailed
		s.ExitMessage = err.Error()
		return
	}
	s.Status = StatusCompleted
}

// Duration is zero until the execution has ended.
func (e *JobExecution) Duration() time.Duration {
	if e.EndTime.IsZero() {
		return 0
	}
	return e.EndTime.Sub(e.StartTime)
}
