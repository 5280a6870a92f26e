package etl

import (
	"context"

	"github.com/BartekS5/personbatch/pkg/logger"
	"github.com/BartekS5/personbatch/pkg/models"
)

// RowCounter reports how many rows the destination holds.
type RowCounter interface {
	CountRows(ctx context.Context) (int64, error)
}

// LoggingJobListener reports the job outcome in the log. When Counter is
// set, a completed run also logs the destination row count.
type LoggingJobListener struct {
	Counter RowCounter
}

func (l *LoggingJobListener) BeforeJob(_ context.Context, exec *models.JobExecution) {
	logger.Infof("Job %s (run %d) is about to start", exec.JobName, exec.RunID)
}

func (l *LoggingJobListener) AfterJob(ctx context.Context, exec *models.JobExecution) {
	switch exec.Status {
	case models.StatusCompleted:
		logger.Infof("Job %s (run %d) finished with status %s. Time to verify the results.", exec.JobName, exec.RunID, exec.Status)
		if l.Counter == nil {
			return
		}
		n, err := l.Counter.CountRows(ctx)
		if err != nil {
			logger.Warnf("Could not verify results: %v", err)
			return
		}
		logger.Infof("Destination now holds %d rows", n)
	default:
		logger.Errorf("Job %s (run %d) finished with status %s: %s", exec.JobName, exec.RunID, exec.Status, exec.ExitMessage)
	}
}
