package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vaku568/FinBuddy-AI/internal/ui"
)

//go:embed schemas/*.sql
var schemaFS embed.FS

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Output the transactions table schema",
	Long: `Output the SQL schema for the transactions table.

The schema is designed for MariaDB 11+ but should work with MySQL 8+.
The import command creates the table automatically; use this command to
inspect the DDL or set up the table by hand.

Examples:
  txngen schema                     # Output schema to stdout
  txngen schema -o schema.sql       # Save to file
  txngen schema | mysql -u root finbuddy`,
	Run: runSchema,
}

var schemaOutputFile string

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaOutputFile, "output", "o", "", "output file (default: stdout)")
}

func runSchema(cmd *cobra.Command, args []string) {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}

	content, err := schemaFS.ReadFile("schemas/transactions.sql")
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(fmt.Sprintf("Reading schema: %v", err)))
		os.Exit(1)
	}

	if schemaOutputFile != "" {
		dir := filepath.Dir(schemaOutputFile)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				fmt.Fprintln(os.Stderr, u.Error(fmt.Sprintf("Creating directory: %v", err)))
				os.Exit(1)
			}
		}

		if err := os.WriteFile(schemaOutputFile, content, 0644); err != nil {
			fmt.Fprintln(os.Stderr, u.Error(fmt.Sprintf("Writing file: %v", err)))
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, u.Success("Schema written to: "+schemaOutputFile))
	} else {
		fmt.Print(string(content))
	}
}
