package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/crudgen/internal/config"
	"github.com/Rana718/crudgen/internal/querygen"
	"github.com/Rana718/crudgen/template"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new crudgen project",
	Long: `
Initialize a new crudgen project with a config file and sample metadata.

SQL Server projects start from a YAML column manifest (db/columns.yaml).
PostgreSQL, MySQL and SQLite projects start from a CREATE TABLE script
(db/schema.sql) so the sqlc command has a schema to compile against.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("dialect")
		dialect, err := querygen.ParseDialect(name)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		return initializeProject(dialect, force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("dialect", string(querygen.SQLServer), "Target database (sqlserver, postgresql, mysql, sqlite)")
}

func initializeProject(dialect querygen.Dialect, force bool) error {
	tmpl := template.NewProjectTemplate(dialect)

	for _, dir := range tmpl.GetDirectoryStructure() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	cfgContent, err := tmpl.GetConfig()
	if err != nil {
		return err
	}
	input, err := tmpl.GetInput()
	if err != nil {
		return err
	}

	files := []struct {
		path    string
		content string
	}{
		{config.FileName, cfgContent},
		{tmpl.InputPath(), input},
	}

	var created, skipped []string
	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil && !force {
			skipped = append(skipped, f.path)
			continue
		}
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", f.path, err)
		}
		created = append(created, f.path)
	}

	if err := handleEnvFile(tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	fmt.Printf("✅ Initialized crudgen project for %s\n", dialect)
	if len(created) > 0 {
		fmt.Println()
		fmt.Println("📝 Files created:")
		for _, p := range created {
			fmt.Printf("   %s\n", p)
		}
	}
	for _, p := range skipped {
		color.Yellow("ℹ️  Skipped %s (already exists, use --force to overwrite)", p)
	}

	fmt.Println()
	fmt.Printf("🚀 Next steps:\n")
	fmt.Printf("   crudgen inspect   # Check how columns are classified\n")
	fmt.Printf("   crudgen gen       # Generate procedures, classes and queries\n")
	if _, ok := dialect.SqlcEngine(); ok {
		fmt.Printf("   crudgen sqlc      # Compile the queries into Go with sqlc\n")
	}

	return nil
}

// handleEnvFile creates .env, or appends the template to an existing one that
// does not mention AUTHOR yet.
func handleEnvFile(defaultEnvContent string) error {
	envPath := ".env"

	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(defaultEnvContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, "AUTHOR") {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}
	existingStr += "\n# Added by crudgen\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
