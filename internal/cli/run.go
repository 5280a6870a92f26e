package cli

import (
	"github.com/spf13/cobra"
)

type RunOptions struct {
	JobFile   string
	Input     string
	Delimiter string
	ChunkSize int
	Table     string
	Processor string
	DryRun    bool
}

func NewRunCmd() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the import job once",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runJob(c, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.JobFile, "job-file", "j", "", "Path to a JSON job definition")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Input file (overrides INPUT_FILE)")
	cmd.Flags().StringVarP(&opts.Delimiter, "delimiter", "d", "", "Field delimiter, e.g. ',' or 'tab'")
	cmd.Flags().IntVarP(&opts.ChunkSize, "chunk-size", "c", 0, "Records per chunk")
	cmd.Flags().StringVarP(&opts.Table, "table", "t", "", "Destination table")
	cmd.Flags().StringVarP(&opts.Processor, "processor", "p", "", "Processor chain, e.g. 'swap' or 'identity,upper'")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Read and process, but only log what would be inserted")

	return cmd
}
