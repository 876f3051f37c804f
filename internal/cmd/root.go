package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verbose bool
var noColor bool
var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "txngen",
	Short: "Synthetic transaction generator for personal finance datasets",
	Long: `Generate itemized spending transactions from monthly expense aggregates.

Each input row carries one user-month of category totals. The generator
splits every total into individual transactions with realistic amounts,
dates, merchants and payment methods, and the per-category sums match the
input totals exactly.

Runs are reproducible: the same seed and input always produce the same
output. Category behavior is configured in internal/category - edit and
recompile to tune.

Example usage:
  txngen generate --input data/users_monthly_expense_12m.csv --seed 42
  txngen import --db "user:pass@tcp(host:3306)/finbuddy"`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors and animations")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./txngen.yaml)")

	// Silence usage on error - we'll print our own messages
	rootCmd.SilenceUsage = true

	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// initConfig reads an optional config file and TXNGEN_* environment
// variables into viper. A missing config file is fine; a malformed one is
// not.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("txngen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/txngen")
	}

	viper.SetEnvPrefix("TXNGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
			os.Exit(1)
		}
	}
}

// Verbose returns whether verbose mode is enabled
func Verbose() bool {
	return verbose
}

// Exit with code
func Exit(code int) {
	os.Exit(code)
}
