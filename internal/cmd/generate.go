package cmd

import (
	"fmt"
	"os"

	"github.com/vaku568/FinBuddy-AI/internal/config"
	"github.com/vaku568/FinBuddy-AI/internal/data"
	"github.com/vaku568/FinBuddy-AI/internal/generator"
	"github.com/vaku568/FinBuddy-AI/internal/ui"

	"github.com/spf13/cobra"
)

var (
	inputFile string
	outputDir string
	seed      int64
	compress  bool
	xzPreset  int
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate itemized transactions from monthly expense aggregates",
	Long: `Generate a transactions CSV from a monthly expense aggregate CSV.

The input must have one row per user-month with a column per expense
category. Every positive category total is split into transactions whose
amounts sum back to the total exactly; dates, merchants and payment
methods follow the per-category model in internal/category.

The output is streamed, so input size is bounded only by disk. With the
same seed and input the output is byte-identical across runs.

Example:
  txngen generate --input data/users_monthly_expense_12m.csv
  txngen generate --input data.csv --seed 42 --compress`,
	Run: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	defaults := config.DefaultConfig()
	generateCmd.Flags().StringVar(&inputFile, "input", defaults.Generate.InputFile, "monthly expense aggregate CSV")
	generateCmd.Flags().StringVar(&outputDir, "output", defaults.Generate.OutputDir, "output directory for the transactions file")
	generateCmd.Flags().Int64Var(&seed, "seed", defaults.Generate.Seed, "random seed for reproducibility (0 = random)")
	generateCmd.Flags().BoolVar(&compress, "compress", false, "compress output with xz (creates .csv.xz)")
	generateCmd.Flags().IntVar(&xzPreset, "xz-preset", defaults.Generate.XZPreset, "xz compression preset 0-9")
}

func runGenerate(cmd *cobra.Command, args []string) {
	u := ui.New()
	if noColor {
		u.SetNoColor(true)
	}

	// Config file and environment fill in anything the flags left at
	// their defaults.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}
	if !cmd.Flags().Changed("input") {
		inputFile = cfg.Generate.InputFile
	}
	if !cmd.Flags().Changed("output") {
		outputDir = cfg.Generate.OutputDir
	}
	if !cmd.Flags().Changed("seed") {
		seed = cfg.Generate.Seed
	}
	if !cmd.Flags().Changed("compress") {
		compress = cfg.Generate.Compress
	}
	if !cmd.Flags().Changed("xz-preset") {
		xzPreset = cfg.Generate.XZPreset
	}

	if compress {
		if err := generator.CheckXZAvailable(); err != nil {
			fmt.Fprintln(os.Stderr, u.Error("xz compression requested but xz is not available"))
			fmt.Fprintln(os.Stderr, "Install with: apt install xz-utils (Linux) or brew install xz (macOS)")
			os.Exit(1)
		}
	}

	totalRows, err := data.CountRows(inputFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	fmt.Println(u.Header("FinBuddy Transaction Generator"))
	fmt.Println()
	fmt.Println(u.KeyValue("Input", inputFile))
	fmt.Println(u.KeyValue("Rows", fmt.Sprintf("%d", totalRows)))
	fmt.Println(u.KeyValue("Output", outputDir))
	if seed != 0 {
		fmt.Println(u.KeyValue("Seed", fmt.Sprintf("%d", seed)))
	}
	if compress {
		fmt.Println(u.KeyValue("Compression", fmt.Sprintf("xz -%d (.csv.xz)", xzPreset)))
	}
	fmt.Println()

	bar := u.NewProgressBar("Generating", totalRows)

	driver, err := generator.NewDriver(generator.DriverConfig{
		InputFile:      inputFile,
		OutputDir:      outputDir,
		Seed:           seed,
		FlushBatchRows: cfg.Generate.FlushBatchRows,
		Compress:       compress,
		XZPreset:       xzPreset,
		Progress:       bar.Update,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, u.Error(err.Error()))
		os.Exit(1)
	}

	stats, err := driver.Run()
	if err != nil {
		bar.Fail(err)
		os.Exit(1)
	}
	bar.Complete()

	printGenerateSummary(u, stats)
	fmt.Println()
	fmt.Println(u.Success("Output written to: " + stats.OutputPath))
}

// printGenerateSummary prints a styled generation summary
func printGenerateSummary(u *ui.UI, stats *generator.RunStats) {
	items := []ui.KV{
		{Key: "Rows processed", Value: fmt.Sprintf("%d", stats.RowsProcessed)},
		{Key: "Transactions", Value: fmt.Sprintf("%d", stats.Transactions)},
		{Key: "Flexible units", Value: fmt.Sprintf("%d", stats.FlexibleUnits)},
		{Key: "Strict units", Value: fmt.Sprintf("%d", stats.StrictUnits)},
		{Key: "Seed", Value: fmt.Sprintf("%d", stats.Seed)},
		{Key: "Duration", Value: stats.Duration.Round(1e6).String()},
		{Key: "Status", Value: "Success"},
	}

	fmt.Println(u.SummaryBox("Generation Complete", items))
}
