package etl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/BartekS5/personbatch/pkg/logger"
	"github.com/BartekS5/personbatch/pkg/models"
)

// ChunkStep reads, processes and writes records in chunks of ChunkSize
// until the reader is exhausted.
type ChunkStep struct {
	StepName  string
	Reader    ItemReader
	Processor ItemProcessor
	Writer    ItemWriter
	ChunkSize int
}

func NewChunkStep(name string, reader ItemReader, processor ItemProcessor, writer ItemWriter, chunkSize int) *ChunkStep {
	return &ChunkStep{
		StepName:  name,
		Reader:    reader,
		Processor: processor,
		Writer:    writer,
		ChunkSize: chunkSize,
	}
}

func (s *ChunkStep) Name() string { return s.StepName }

func (s *ChunkStep) Execute(ctx context.Context, exec *models.StepExecution) (err error) {
	if s.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", s.ChunkSize)
	}
	processor := s.Processor
	if processor == nil {
		processor = IdentityProcessor{}
	}

	if err := s.Reader.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if cerr := s.Reader.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing reader: %w", cerr)
		}
	}()

	startTime := time.Now()
	for {
		chunk, exhausted, err := s.readChunk(ctx, processor, exec)
		if err != nil {
			logger.Errorf("Step %s: reading failed after %d records: %v", s.StepName, exec.ReadCount, err)
			return err
		}

		if len(chunk) > 0 {
			if err := s.Writer.Write(ctx, chunk); err != nil {
				logger.Errorf("Step %s: writing chunk %d failed: %v", s.StepName, exec.CommitCount+1, err)
				return err
			}
			exec.WriteCount += len(chunk)
			exec.CommitCount++

			rate := 0.0
			if d := time.Since(startTime); d.Seconds() > 0 {
				rate = float64(exec.WriteCount) / d.Seconds()
			}
			logger.Infof("Chunk done. Total: %d. Rate: %.2f records/sec.", exec.WriteCount, rate)
		}

		if exhausted {
			return nil
		}
	}
}

// readChunk collects up to ChunkSize processed records. exhausted is true
// once the reader has returned io.EOF.
func (s *ChunkStep) readChunk(ctx context.Context, processor ItemProcessor, exec *models.StepExecution) ([]models.Person, bool, error) {
	chunk := make([]models.Person, 0, s.ChunkSize)
	for len(chunk) < s.ChunkSize {
		item, err := s.Reader.Read(ctx)
		if errors.Is(err, io.EOF) {
			return chunk, true, nil
		}
		if err != nil {
			return nil, false, err
		}
		exec.ReadCount++

		out, err := processor.Process(ctx, item)
		if err != nil {
			return nil, false, fmt.Errorf("processing %s: %w", item, err)
		}
		chunk = append(chunk, out)
	}
	return chunk, false, nil
}

// TaskletStep runs its Tasklet exactly once.
type TaskletStep struct {
	StepName string
	Tasklet  Tasklet
}

func NewTaskletStep(name string, tasklet Tasklet) *TaskletStep {
	return &TaskletStep{StepName: name, Tasklet: tasklet}
}

func (s *TaskletStep) Name() string { return s.StepName }

func (s *TaskletStep) Execute(ctx context.Context, exec *models.StepExecution) error {
	return s.Tasklet.Execute(ctx, exec)
}

// TaskletFunc adapts a plain function to Tasklet.
type TaskletFunc func(ctx context.Context, exec *models.StepExecution) error

func (f TaskletFunc) Execute(ctx context.Context, exec *models.StepExecution) error {
	return f(ctx, exec)
}

// NoopTasklet does nothing and always succeeds.
func NoopTasklet(_ context.Context, exec *models.StepExecution) error {
	logger.Infof("Step %s: nothing to do", exec.StepName)
	return nil
}
