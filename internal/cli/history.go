package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/BartekS5/personbatch/internal/config"
	"github.com/BartekS5/personbatch/internal/etl"
	"github.com/BartekS5/personbatch/pkg/database"
	"github.com/spf13/cobra"
)

type HistoryOptions struct {
	JobName string
	Limit   int
}

func NewHistoryCmd() *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent executions from the job repository",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return showHistory(c, opts)
		},
	}

	cmd.Flags().StringVar(&opts.JobName, "job", "", "Job name (defaults to JOB_NAME)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "Maximum number of executions to list")

	return cmd
}

func showHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.MongoConnString == "" {
		return errors.New("MONGO_CONNECTION_STRING environment variable not set")
	}

	jobName := opts.JobName
	if jobName == "" {
		jobName = cfg.JobName
	}

	ctx := cmd.Context()
	client, err := database.ConnectMongo(ctx, cfg.MongoConnString)
	if err != nil {
		return err
	}
	defer database.DisconnectMongo(client)

	repo := etl.NewMongoJobRepository(client, cfg.MongoDatabase)
	return printHistory(cmd, repo, jobName, opts.Limit)
}

func printHistory(cmd *cobra.Command, repo etl.JobRepository, jobName string, limit int) error {
	execs, err := repo.FindJobExecutions(cmd.Context(), jobName, limit)
	if err != nil {
		return fmt.Errorf("listing executions of %s: %w", jobName, err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTATUS\tSTARTED\tDURATION\tREAD\tWRITTEN\tMESSAGE")
	for _, e := range execs {
		read, written := 0, 0
		for _, s := range e.Steps {
			read += s.ReadCount
			written += s.WriteCount
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			e.RunID, e.Status, e.StartTime.Format(time.RFC3339), e.Duration().Round(time.Millisecond),
			read, written, e.ExitMessage)
	}
	return w.Flush()
}
