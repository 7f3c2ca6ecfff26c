package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Rana718/crudgen/internal/classgen"
	"github.com/Rana718/crudgen/internal/config"
	"github.com/Rana718/crudgen/internal/gencommon"
	"github.com/Rana718/crudgen/internal/metadata"
	"github.com/Rana718/crudgen/internal/querygen"
	"github.com/Rana718/crudgen/internal/schema"
	"github.com/Rana718/crudgen/internal/sproc"
)

type outputs struct {
	procedures bool
	classes    bool
	queries    bool
}

// loadProject loads and validates the config, then reads the tables named in
// args (all tables when args is empty).
func loadProject(args []string) (*config.Config, []*schema.Table, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	tables, err := metadata.Load(cfg.Input, cfg.Format())
	if err != nil {
		return nil, nil, err
	}
	schema.Apply(tables, cfg.Author, cfg.SoftDeleteColumn)
	if cfg.GetDialect() == querygen.SQLServer {
		schema.UseSQLServerTypes(tables)
	}

	selected := schema.Select(tables, args)
	if missing := missingTables(selected, args); len(missing) > 0 {
		color.Yellow("⚠️  Tables not found in %s: %s", cfg.Input, strings.Join(missing, ", "))
	}
	if len(selected) == 0 {
		return nil, nil, fmt.Errorf("no tables found in %s", cfg.Input)
	}
	return cfg, selected, nil
}

func missingTables(selected []*schema.Table, names []string) []string {
	found := make(map[string]bool, len(selected))
	for _, t := range selected {
		found[t.Name] = true
	}
	var missing []string
	for _, n := range names {
		if !found[n] {
			missing = append(missing, n)
		}
	}
	return missing
}

// selectedKinds prefers the --kinds flag over the config file.
func selectedKinds(cmd *cobra.Command, cfg *config.Config) ([]sproc.Kind, error) {
	if f := cmd.Flags().Lookup("kinds"); f != nil && f.Changed {
		names, _ := cmd.Flags().GetStringSlice("kinds")
		return sproc.ParseKinds(names)
	}
	return cfg.Kinds(), nil
}

// runGeneration generates and writes the selected outputs and returns the
// tables it ran on.
func runGeneration(cmd *cobra.Command, args []string, out outputs) ([]*schema.Table, error) {
	cfg, tables, err := loadProject(args)
	if err != nil {
		return nil, err
	}
	kinds, err := selectedKinds(cmd, cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	var (
		procs   *sproc.Generator
		classes *classgen.Emitter
		queries *querygen.Generator
	)
	if out.procedures {
		procs = sproc.New(sproc.Options{DateFormat: cfg.DateFormat, DropIfExists: cfg.DropIfExists})
	}
	if out.classes {
		classes = classgen.New(classgen.Options{Namespace: cfg.Namespace, UserIDParam: cfg.UserIDParam})
	}
	if out.queries {
		if queries, err = querygen.New(cfg.GetDialect()); err != nil {
			return nil, err
		}
	}

	runner, err := gencommon.NewRunner(gencommon.Options{
		Procedures: out.procedures,
		Classes:    out.classes,
		Queries:    out.queries,
		Kinds:      kinds,
		Workers:    cfg.Workers,
		Settings:   cfg.Settings(kinds),
	}, procs, classes, queries)
	if err != nil {
		return nil, err
	}

	color.Cyan("🔧 Generating %d table(s) from %s", len(tables), cfg.Input)
	reports, err := runner.Run(cmd.Context(), tables)
	if err != nil {
		return nil, fmt.Errorf("generation cancelled: %w", err)
	}

	force, _ := cmd.Flags().GetBool("force")
	writer := gencommon.NewWriter(gencommon.WriterOptions{
		OutDir: cfg.OutDir,
		CRLF:   cfg.CRLF(),
		Force:  force,
		Cache:  cfg.Cache,
	})
	res, err := writer.Write(reports, runner.Helpers()...)
	if err != nil {
		return nil, err
	}

	fmt.Println()
	gencommon.PrintReports(os.Stdout, reports)
	fmt.Printf("📁 %d file(s) written, %d unchanged, in %s\n", len(res.Written), len(res.Skipped), cfg.OutDir)

	failed := 0
	for _, rep := range reports {
		if rep.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return tables, fmt.Errorf("%d of %d table(s) were not fully generated", failed, len(reports))
	}
	return tables, nil
}

func addKindsFlag(c *cobra.Command) {
	c.Flags().StringSlice("kinds", nil, "Procedure kinds to generate (Create, ReadAll, ReadById, Update, Delete, Deactivate, ReadByOwner)")
}
