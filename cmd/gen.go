package cmd

import (
	"github.com/spf13/cobra"
)

var genCmd = &cobra.Command{
	Use:   "gen [table...]",
	Short: "Generate procedures, classes and queries",
	Long: `
Generate every artifact for each table in one pass:

1. Stored procedures in <out_dir>/procedures
2. C# classes and helpers in <out_dir>/classes
3. Named queries in <out_dir>/queries

A table whose metadata cannot be classified is reported and skipped; the
other tables are still generated. Unchanged files are left alone unless
--force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runGeneration(cmd, args, outputs{procedures: true, classes: true, queries: true})
		return err
	},
}

func init() {
	rootCmd.AddCommand(genCmd)
	addKindsFlag(genCmd)
}
