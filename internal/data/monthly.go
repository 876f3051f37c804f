// Package data reads the monthly-aggregate expense dataset that drives
// transaction synthesis: one row per user-month, one column per expense
// category.
package data

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/vaku568/FinBuddy-AI/internal/models"
)

// MonthlyRow is one user-month of aggregated spending. The category totals
// are the ground truth that generated transactions must reproduce exactly.
type MonthlyRow struct {
	UserID     string
	MonthIndex int

	// MonthStartRaw is the unparsed month_start_date cell. Month
	// resolution (including the fallback for unparseable values) is the
	// driver's concern.
	MonthStartRaw string

	// Totals maps category column name to the monthly total. Missing or
	// unparseable cells are zero.
	Totals map[string]float64

	Profile models.UserProfile
}

// Reader streams MonthlyRows from a CSV file. The header is validated on
// open so a structurally invalid input fails before any output is written.
type Reader struct {
	file    *os.File
	csv     *csv.Reader
	columns map[string]int
	cats    []string
	rows    int
}

// requiredColumns are the non-category columns every input must carry.
var requiredColumns = []string{"user_id", "month_index", "month_start_date"}

// OpenMonthly opens the monthly expense CSV and validates that all
// required columns, including every configured category column, are
// present.
func OpenMonthly(path string, categories []string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	cr := csv.NewReader(f)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read input header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	for _, name := range categories {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		f.Close()
		return nil, fmt.Errorf("missing required columns in monthly CSV: %s", strings.Join(missing, ", "))
	}

	return &Reader{
		file:    f,
		csv:     cr,
		columns: columns,
		cats:    categories,
	}, nil
}

// Next returns the next row, or io.EOF when the input is exhausted.
func (r *Reader) Next() (*MonthlyRow, error) {
	record, err := r.csv.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input row %d: %w", r.rows+2, err)
	}
	r.rows++

	monthIndex, err := strconv.Atoi(strings.TrimSpace(r.cell(record, "month_index")))
	if err != nil {
		return nil, fmt.Errorf("row %d: invalid month_index %q", r.rows+1, r.cell(record, "month_index"))
	}

	row := &MonthlyRow{
		UserID:        strings.TrimSpace(r.cell(record, "user_id")),
		MonthIndex:    monthIndex,
		MonthStartRaw: strings.TrimSpace(r.cell(record, "month_start_date")),
		Totals:        make(map[string]float64, len(r.cats)),
		Profile: models.UserProfile{
			Archetype:     strings.TrimSpace(r.cell(record, "user_archetype")),
			RiskTolerance: strings.TrimSpace(r.cell(record, "risk_tolerance")),
			IsMetro:       strings.TrimSpace(r.cell(record, "is_metro")),
		},
	}

	for _, cat := range r.cats {
		row.Totals[cat] = parseTotal(r.cell(record, cat))
	}

	return row, nil
}

// RowsRead returns the number of data rows consumed so far.
func (r *Reader) RowsRead() int {
	return r.rows
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// cell returns the named column's value, or empty for optional columns the
// input does not carry.
func (r *Reader) cell(record []string, column string) string {
	idx, ok := r.columns[column]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// CountRows scans the file once and returns the number of data rows,
// excluding the header. Used to size the progress display before a run.
func CountRows(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	var count int64
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) > 0 {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan input file: %w", err)
	}
	if count > 0 {
		count-- // header
	}
	return count, nil
}

// parseTotal converts a category cell to a non-negative-friendly float.
// Blank and unparseable cells (including NaN) read as zero, which the
// synthesizer treats as a no-op.
func parseTotal(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
