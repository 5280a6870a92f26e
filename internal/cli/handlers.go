package cli

import (
	"context"
	"fmt"

	"github.com/BartekS5/personbatch/internal/config"
	"github.com/BartekS5/personbatch/internal/etl"
	"github.com/BartekS5/personbatch/pkg/database"
	"github.com/BartekS5/personbatch/pkg/logger"
	"github.com/BartekS5/personbatch/pkg/models"
	"github.com/BartekS5/personbatch/pkg/utils"
	"github.com/spf13/cobra"
)

type countingWriter interface {
	etl.ItemWriter
	etl.RowCounter
}

func runJob(cmd *cobra.Command, opts *RunOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if err := logger.InitLogger(cfg.LogFile, logger.ParseLevel(cfg.LogLevel)); err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logger.Close()

	def, err := resolveDefinition(cmd, cfg, opts)
	if err != nil {
		return err
	}
	if err := etl.ValidateDefinition(def); err != nil {
		return fmt.Errorf("invalid job definition: %w", err)
	}

	delimiter, _ := utils.ParseDelimiter(def.Input.Delimiter)
	processor, _ := etl.ProcessorByName(def.Processor)
	reader := etl.NewFlatFileReader(def.Input.Path, delimiter, def.Input.Names...)

	ctx := cmd.Context()
	writer, closeWriter, err := openWriter(ctx, cfg, def, opts.DryRun)
	if err != nil {
		return err
	}
	defer closeWriter()

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	logger.Infof("Starting job %s. Input: %s, Chunk Size: %d, Table: %s, Processor: %s, DryRun: %v",
		def.Name, def.Input.Path, def.ChunkSize, def.Table, def.Processor, opts.DryRun)

	step := etl.NewChunkStep(etl.ImportStepName, reader, processor, writer, def.ChunkSize)
	job := etl.NewImportJob(def.Name, step, repo, &etl.LoggingJobListener{Counter: writer})

	exec, err := job.Run(ctx)
	if err != nil {
		return fmt.Errorf("job %s failed: %w", def.Name, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Job %s run %d %s\n", exec.JobName, exec.RunID, exec.Status)
	return nil
}

// resolveDefinition layers the job file and explicitly set flags over the
// environment defaults.
func resolveDefinition(cmd *cobra.Command, cfg *config.Config, opts *RunOptions) (*models.JobDefinition, error) {
	base := cfg.JobDefinition()
	def := &base
	if opts.JobFile != "" {
		loaded, err := config.LoadJobDefinition(opts.JobFile, base)
		if err != nil {
			return nil, err
		}
		def = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		def.Input.Path = opts.Input
	}
	if flags.Changed("delimiter") {
		def.Input.Delimiter = opts.Delimiter
	}
	if flags.Changed("chunk-size") {
		def.ChunkSize = opts.ChunkSize
	}
	if flags.Changed("table") {
		def.Table = opts.Table
	}
	if flags.Changed("processor") {
		def.Processor = opts.Processor
	}
	return def, nil
}

func openWriter(ctx context.Context, cfg *config.Config, def *models.JobDefinition, dryRun bool) (countingWriter, func(), error) {
	if dryRun {
		return &etl.LoggingWriter{}, func() {}, nil
	}
	if err := cfg.RequireSQL(); err != nil {
		return nil, nil, err
	}

	db, err := database.ConnectSQL(ctx, cfg.SQLConnString)
	if err != nil {
		return nil, nil, err
	}
	writer, err := etl.NewSQLWriter(db, def.Table)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return writer, func() { db.Close() }, nil
}

func openRepository(ctx context.Context, cfg *config.Config) (etl.JobRepository, func(), error) {
	if cfg.MongoConnString == "" {
		logger.Warn("MONGO_CONNECTION_STRING not set, execution history will not be persisted")
		return etl.NewInMemoryJobRepository(), func() {}, nil
	}

	client, err := database.ConnectMongo(ctx, cfg.MongoConnString)
	if err != nil {
		return nil, nil, err
	}
	repo := etl.NewMongoJobRepository(client, cfg.MongoDatabase)
	return repo, func() { database.DisconnectMongo(client) }, nil
}
