package etl

import (
	"context"

	"github.com/BartekS5/personbatch/pkg/logger"
	"github.com/BartekS5/personbatch/pkg/models"
)

// LoggingWriter is the dry-run writer: it reports each chunk and stores
// nothing.
type LoggingWriter struct {
	Written int
}

func (w *LoggingWriter) Write(_ context.Context, items []models.Person) error {
	logger.Infof("[DRY RUN] Would insert %d records", len(items))
	for _, p := range items {
		logger.Debugf("[DRY RUN] %s", p)
	}
	w.Written += len(items)
	return nil
}

// CountRows reports how many records would have been inserted.
func (w *LoggingWriter) CountRows(_ context.Context) (int64, error) {
	return int64(w.Written), nil
}
