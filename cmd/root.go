package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Rana718/crudgen/internal/config"
)

var (
	cfgFile string
	Version = "1.0.0"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════════════╗",
		"║    ██████╗██████╗ ██╗   ██╗██████╗                    ║",
		"║   ██╔════╝██╔══██╗██║   ██║██╔══██╗                   ║",
		"║   ██║     ██████╔╝██║   ██║██║  ██║  gen              ║",
		"║   ██║     ██╔══██╗██║   ██║██║  ██║                   ║",
		"║   ╚██████╗██║  ██║╚██████╔╝██████╔╝                   ║",
		"║    ╚═════╝╚═╝  ╚═╝ ╚═════╝ ╚═════╝                    ║",
		"║                                                      ║",
		"║     Stored procedures • Data classes • Queries       ║",
		"╚══════════════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("                  ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "crudgen",
	Short: "Generate CRUD stored procedures and data-access classes from table metadata",
	Long: `
crudgen reads column metadata for a set of tables and generates the
boilerplate that sits between a database and an application:

- Stored procedures: Create, ReadAll, ReadById, Update, Delete, Deactivate
- C# data-object and data-access classes that call those procedures
- sqlc-style named queries for PostgreSQL, MySQL and SQLite

Metadata can come from a YAML or JSON manifest, a CSV export of the
catalog, or CREATE TABLE scripts.`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("crudgen version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Regenerate unchanged files and overwrite existing ones")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("crudgen.config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			color.Yellow("⚠️  Could not read config file: %v", err)
		}
	}
}
