package generator

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/vaku568/FinBuddy-AI/internal/category"
	"github.com/vaku568/FinBuddy-AI/internal/models"
)

// writeMonthlyCSV writes a minimal monthly aggregate input. Each entry in
// rows maps a category column name to its total; unlisted categories are
// zero.
func writeMonthlyCSV(t *testing.T, dir string, rows []map[string]string) string {
	t.Helper()

	names, err := category.Names()
	if err != nil {
		t.Fatalf("category.Names failed: %v", err)
	}

	header := append([]string{"user_id", "month_index", "month_start_date", "user_archetype"}, names...)

	path := filepath.Join(dir, "monthly.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create input: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("Failed to write header: %v", err)
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, col := range header {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			t.Fatalf("Failed to write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	return path
}

func readOutput(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	return records
}

func TestDriver_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := writeMonthlyCSV(t, dir, []map[string]string{
		{
			"user_id": "u001", "month_index": "1", "month_start_date": "2024-05-01",
			"user_archetype":    "balanced_planner",
			"food_expense":      "4500.00",
			"groceries_expense": "1200",
			"rent_expense":      "15000",
		},
		{
			"user_id": "u001", "month_index": "2", "month_start_date": "2024-06-01",
			"subscriptions_expense": "150",
			"shopping_expense":      "2750.40",
			"fuel_expense":          "80",
		},
		{
			// All-zero row: counted, no transactions.
			"user_id": "u002", "month_index": "1", "month_start_date": "2024-05-01",
		},
	})

	outDir := filepath.Join(dir, "out")
	driver, err := NewDriver(DriverConfig{
		InputFile: input,
		OutputDir: outDir,
		Seed:      42,
	})
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}

	stats, err := driver.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.RowsProcessed != 3 {
		t.Errorf("RowsProcessed = %d, want 3", stats.RowsProcessed)
	}
	if stats.Transactions == 0 {
		t.Fatal("No transactions generated")
	}
	if stats.Seed != 42 {
		t.Errorf("Seed = %d, want 42", stats.Seed)
	}

	records := readOutput(t, stats.OutputPath)
	header := records[0]
	wantHeader := models.TransactionHeaders()
	if strings.Join(header, ",") != strings.Join(wantHeader, ",") {
		t.Errorf("Header %v, want %v", header, wantHeader)
	}
	body := records[1:]
	if int64(len(body)) != stats.Transactions {
		t.Errorf("Output has %d rows, stats say %d", len(body), stats.Transactions)
	}

	// IDs are a gapless global sequence in file order.
	for i, rec := range body {
		want := models.FormatTransactionID(int64(i + 1))
		if rec[0] != want {
			t.Fatalf("Row %d has ID %s, want %s", i, rec[0], want)
		}
	}

	// Per-unit sums reproduce the input totals exactly.
	sums := make(map[string]int64)
	for _, rec := range body {
		key := rec[1] + "|" + rec[3] + "|" + rec[4]
		amount, err := strconv.ParseInt(rec[6], 10, 64)
		if err != nil {
			t.Fatalf("Bad amount %q: %v", rec[6], err)
		}
		if amount < 1 {
			t.Fatalf("Non-positive amount %d", amount)
		}
		sums[key] += amount
	}

	wantSums := map[string]int64{
		"u001|1|food":          4500,
		"u001|1|groceries":     1200,
		"u001|1|rent":          15000,
		"u001|2|subscriptions": 150,
		"u001|2|shopping":      2750,
		"u001|2|fuel":          80,
	}
	for key, want := range wantSums {
		if got := sums[key]; got != want {
			t.Errorf("Sum for %s = %d, want %d", key, got, want)
		}
	}
	for key := range sums {
		if _, ok := wantSums[key]; !ok {
			t.Errorf("Unexpected unit in output: %s", key)
		}
	}

	// No output may belong to the all-zero user.
	for _, rec := range body {
		if rec[1] == "u002" {
			t.Errorf("All-zero row produced transaction %s", rec[0])
		}
	}

	// Dates fall inside each row's calendar month.
	for _, rec := range body {
		date := rec[2]
		switch rec[3] {
		case "1":
			if !strings.HasPrefix(date, "2024-05-") {
				t.Errorf("Month 1 transaction dated %s", date)
			}
		case "2":
			if !strings.HasPrefix(date, "2024-06-") {
				t.Errorf("Month 2 transaction dated %s", date)
			}
		}
	}

	if stats.FlexibleUnits == 0 || stats.StrictUnits == 0 {
		t.Errorf("Expected both modes exercised, got flexible=%d strict=%d",
			stats.FlexibleUnits, stats.StrictUnits)
	}
}

func TestDriver_Deterministic(t *testing.T) {
	dir := t.TempDir()

	var rows []map[string]string
	for u := 1; u <= 20; u++ {
		for m := 1; m <= 3; m++ {
			rows = append(rows, map[string]string{
				"user_id":                fmt.Sprintf("u%03d", u),
				"month_index":            strconv.Itoa(m),
				"month_start_date":       fmt.Sprintf("2024-%02d-01", 4+m),
				"food_expense":           strconv.Itoa(1000 + u*37 + m*11),
				"transportation_expense": strconv.Itoa(800 + u*13),
				"miscellaneous_expense":  strconv.Itoa(400 + m*97),
			})
		}
	}
	input := writeMonthlyCSV(t, dir, rows)

	run := func(outDir string) []byte {
		driver, err := NewDriver(DriverConfig{
			InputFile: input,
			OutputDir: outDir,
			Seed:      1234,
		})
		if err != nil {
			t.Fatalf("NewDriver failed: %v", err)
		}
		stats, err := driver.Run()
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		out, err := os.ReadFile(stats.OutputPath)
		if err != nil {
			t.Fatalf("Failed to read output: %v", err)
		}
		return out
	}

	a := run(filepath.Join(dir, "a"))
	b := run(filepath.Join(dir, "b"))
	if string(a) != string(b) {
		t.Error("Same seed and input produced different output bytes")
	}

	c := run2Seed(t, input, filepath.Join(dir, "c"), 9999)
	if string(a) == string(c) {
		t.Error("Different seeds produced identical output")
	}
}

func run2Seed(t *testing.T, input, outDir string, seed int64) []byte {
	t.Helper()

	driver, err := NewDriver(DriverConfig{InputFile: input, OutputDir: outDir, Seed: seed})
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}
	stats, err := driver.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	out, err := os.ReadFile(stats.OutputPath)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	return out
}

func TestDriver_MonthIndexFallback(t *testing.T) {
	dir := t.TempDir()
	input := writeMonthlyCSV(t, dir, []map[string]string{
		{
			// Unparseable date; month_index 3 maps to July 2024 in the
			// May-2024 window.
			"user_id": "u001", "month_index": "3", "month_start_date": "not-a-date",
			"groceries_expense": "2500",
		},
	})

	driver, err := NewDriver(DriverConfig{InputFile: input, OutputDir: filepath.Join(dir, "out"), Seed: 1})
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}
	stats, err := driver.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	records := readOutput(t, stats.OutputPath)
	for _, rec := range records[1:] {
		if !strings.HasPrefix(rec[2], "2024-07-") {
			t.Errorf("Fallback month transaction dated %s, want 2024-07", rec[2])
		}
	}
}

func TestDriver_UnresolvableMonthFails(t *testing.T) {
	dir := t.TempDir()
	input := writeMonthlyCSV(t, dir, []map[string]string{
		{
			"user_id": "u001", "month_index": "15", "month_start_date": "garbage",
			"groceries_expense": "2500",
		},
	})

	driver, err := NewDriver(DriverConfig{InputFile: input, OutputDir: filepath.Join(dir, "out"), Seed: 1})
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}
	if _, err := driver.Run(); err == nil {
		t.Error("Expected error for unresolvable month, got nil")
	}
}

func TestDriver_MissingColumnFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	content := "user_id,month_index\nu001,1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write input: %v", err)
	}

	driver, err := NewDriver(DriverConfig{InputFile: path, OutputDir: filepath.Join(dir, "out"), Seed: 1})
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}
	if _, err := driver.Run(); err == nil {
		t.Error("Expected error for missing columns, got nil")
	}
}

func TestDriver_ManyTransactionsUniqueIDs(t *testing.T) {
	dir := t.TempDir()

	var rows []map[string]string
	for u := 1; u <= 300; u++ {
		rows = append(rows, map[string]string{
			"user_id":                fmt.Sprintf("u%03d", u),
			"month_index":            "1",
			"month_start_date":       "2024-05-01",
			"food_expense":           "9000",
			"transportation_expense": "3000",
			"miscellaneous_expense":  "5000",
		})
	}
	input := writeMonthlyCSV(t, dir, rows)

	driver, err := NewDriver(DriverConfig{InputFile: input, OutputDir: filepath.Join(dir, "out"), Seed: 5})
	if err != nil {
		t.Fatalf("NewDriver failed: %v", err)
	}
	stats, err := driver.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// food strict gives 15-50 txns per row, transportation 15-30,
	// misc 5-20, so 300 rows clears 10000 even at the minimums.
	if stats.Transactions < 10000 {
		t.Errorf("Expected at least 10000 transactions, got %d", stats.Transactions)
	}

	records := readOutput(t, stats.OutputPath)
	seen := make(map[string]bool, len(records))
	for i, rec := range records[1:] {
		if seen[rec[0]] {
			t.Fatalf("Duplicate transaction ID %s", rec[0])
		}
		seen[rec[0]] = true
		if want := models.FormatTransactionID(int64(i + 1)); rec[0] != want {
			t.Fatalf("ID %s out of sequence, want %s", rec[0], want)
		}
	}
}
