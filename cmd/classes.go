package cmd

import (
	"github.com/spf13/cobra"
)

var classesCmd = &cobra.Command{
	Use:   "classes [table...]",
	Short: "Generate C# data-object and data-access classes",
	Long: `
Generate a data-object class and a data-access class per table, plus the
shared DataReaderExtensions and DataAccessLayer helpers, under
<out_dir>/classes. The data-access methods call the procedures that the
procs command generates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runGeneration(cmd, args, outputs{classes: true})
		return err
	},
}

func init() {
	rootCmd.AddCommand(classesCmd)
}
