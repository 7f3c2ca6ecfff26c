package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/crudgen/internal/schema"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [table...]",
	Short: "Show how each column is classified",
	Long: `
Read the metadata input and print every table with its columns, their
canonical and C# types, the primary key and identity flags, and the
owner columns that get a ReadBy procedure. Nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, tables, err := loadProject(args)
		if err != nil {
			return err
		}

		failed := 0
		for _, t := range tables {
			if !printTable(t) {
				failed++
			}
		}

		fmt.Println()
		if failed > 0 {
			return fmt.Errorf("%d of %d table(s) have columns that cannot be classified", failed, len(tables))
		}
		color.Green("✅ %d table(s) classified", len(tables))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func printTable(t *schema.Table) bool {
	ok := true
	fmt.Println()
	color.New(color.FgCyan, color.Bold).Printf("📋 %s\n", t.Name)

	width := 0
	for _, c := range t.Columns {
		width = max(width, len(c.Name))
	}

	for _, c := range t.Columns {
		var flags []string
		if c.IsPrimaryKey {
			flags = append(flags, "PK")
		}
		if c.IsIdentity {
			flags = append(flags, "IDENTITY")
		}

		canonical, err := c.CanonicalType()
		if err != nil {
			color.Red("   %-*s  %-20s  ❌ %v", width, c.Name, c.NativeType, err)
			ok = false
			continue
		}
		host, _ := c.HostType()
		fmt.Printf("   %-*s  %-20s  %-16s  %-8s  %s\n", width, c.Name, c.NativeType, canonical, host, strings.Join(flags, ","))
	}

	if key, err := t.EffectiveKeyColumn(); err == nil {
		fmt.Printf("   key: %s\n", key.Name)
	} else {
		color.Yellow("   ⚠️  %v", err)
	}
	if owners := t.OwnerColumns(); len(owners) > 0 {
		names := make([]string, len(owners))
		for i, o := range owners {
			names[i] = o.Name
		}
		fmt.Printf("   owners: %s\n", strings.Join(names, ", "))
	}
	return ok
}
