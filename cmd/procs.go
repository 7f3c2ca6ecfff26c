package cmd

import (
	"github.com/spf13/cobra"
)

var procsCmd = &cobra.Command{
	Use:   "procs [table...]",
	Short: "Generate stored procedures",
	Long: `
Generate the CRUD stored procedures for each table in the metadata input,
or only for the tables named as arguments.

Each table gets Create, ReadAll, ReadById, Update, Delete and Deactivate
procedures, written one per file to <out_dir>/procedures. Use --kinds or
the "procedures" config key to pick a subset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runGeneration(cmd, args, outputs{procedures: true})
		return err
	},
}

func init() {
	rootCmd.AddCommand(procsCmd)
	addKindsFlag(procsCmd)
}
