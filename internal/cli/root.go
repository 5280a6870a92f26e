// Package cli handles the command-line interface logic
// using the Cobra library.
package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "personbatch",
		Short: "personbatch - import name records from a flat file into SQL",
		Long: `personbatch reads delimited name records from a text file, transforms each
record and inserts the results into a relational table in fixed-size chunks.
Execution history is kept in MongoDB when MONGO_CONNECTION_STRING is set.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	rootCmd.AddCommand(NewRunCmd(), NewHistoryCmd())

	return rootCmd
}
