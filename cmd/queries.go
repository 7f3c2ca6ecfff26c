package cmd

import (
	"github.com/spf13/cobra"
)

var queriesCmd = &cobra.Command{
	Use:   "queries [table...]",
	Short: "Generate sqlc-style named CRUD queries",
	Long: `
Generate one annotated query file per table under <out_dir>/queries, using
the placeholder style of the configured dialect. The files can be compiled
into Go with the sqlc command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runGeneration(cmd, args, outputs{queries: true})
		return err
	},
}

func init() {
	rootCmd.AddCommand(queriesCmd)
	addKindsFlag(queriesCmd)
}
