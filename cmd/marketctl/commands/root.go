package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dbURL      string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "marketctl",
	Short: "Operator tooling for the campaign marketplace",
	Long: `marketctl runs one-off maintenance tasks against the marketplace database.

Examples:
  marketctl migrate --db postgres://localhost/marketplace
  marketctl expire-campaigns --json`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		_ = godotenv.Load()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/default.yaml", "Service config file")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database URL (defaults to DB_URL/POSTGRES_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}
