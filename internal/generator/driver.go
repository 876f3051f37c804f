package generator

import (
	"fmt"
	"io"
	"time"

	"github.com/vaku568/FinBuddy-AI/internal/config"
	"github.com/vaku568/FinBuddy-AI/internal/data"
	"github.com/vaku568/FinBuddy-AI/internal/models"
	"github.com/vaku568/FinBuddy-AI/internal/utils"
)

// DriverConfig configures a generation run.
type DriverConfig struct {
	InputFile string
	OutputDir string
	// OutputName is the output filename without extension.
	OutputName string
	// Seed for the run (0 = random).
	Seed int64
	// FlushBatchRows is input rows per output flush.
	FlushBatchRows int
	Compress       bool
	XZPreset       int

	// Progress, if set, is called every LogEvery input rows and once at
	// the end of the run.
	Progress func(rowsProcessed, transactions int64)
}

// RunStats summarizes a completed generation run.
type RunStats struct {
	RowsProcessed int64
	Transactions  int64
	FlexibleUnits int64
	StrictUnits   int64
	OutputPath    string
	Duration      time.Duration
	Seed          uint64
}

// Driver streams the monthly aggregate input through the synthesizer and
// writes transactions as it goes. Input rows are never held beyond the
// current flush batch.
type Driver struct {
	cfg   DriverConfig
	synth *Synthesizer
}

// NewDriver validates the run configuration and loads the category table.
func NewDriver(cfg DriverConfig) (*Driver, error) {
	if cfg.InputFile == "" {
		return nil, fmt.Errorf("input file is required")
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if cfg.OutputName == "" {
		cfg.OutputName = config.OutputName
	}
	if cfg.FlushBatchRows < 1 {
		cfg.FlushBatchRows = config.FlushBatchRows
	}

	synth, err := NewSynthesizer()
	if err != nil {
		return nil, err
	}
	return &Driver{cfg: cfg, synth: synth}, nil
}

// Run executes the full generation pass. Transaction IDs are assigned from
// a single global sequence in input order; all other randomness is drawn
// from per-unit streams, so the ID sequence is the only order-dependent
// output.
func (d *Driver) Run() (*RunStats, error) {
	start := time.Now()

	categories := d.synth.Categories()
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}

	reader, err := data.OpenMonthly(d.cfg.InputFile, names)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	writer, err := NewCSVWriter(CSVWriterConfig{
		OutputDir: d.cfg.OutputDir,
		Filename:  d.cfg.OutputName,
		Headers:   models.TransactionHeaders(),
		Compress:  d.cfg.Compress,
		XZPreset:  d.cfg.XZPreset,
	})
	if err != nil {
		return nil, err
	}

	root := utils.NewRandom(d.cfg.Seed)
	stats := &RunStats{Seed: root.Seed()}

	var seq int64
	batch := make([][]string, 0, d.cfg.FlushBatchRows*4)

	for {
		row, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			writer.Close()
			return nil, err
		}

		year, month, err := resolveMonth(row)
		if err != nil {
			writer.Close()
			return nil, err
		}

		for _, cfg := range categories {
			total := row.Totals[cfg.Name]
			if total <= 0 {
				continue
			}

			unitRNG := root.SubSource(fmt.Sprintf("%s|%d|%s", row.UserID, row.MonthIndex, cfg.Name))
			txs := d.synth.Synthesize(unitRNG, row.UserID, year, month, cfg.Name, total, row.Profile)
			if len(txs) == 0 {
				continue
			}

			if ModeFor(total, cfg.FlexThreshold) == ModeFlexible {
				stats.FlexibleUnits++
			} else {
				stats.StrictUnits++
			}

			for i := range txs {
				seq++
				txs[i].ID = models.FormatTransactionID(seq)
				txs[i].MonthIndex = row.MonthIndex
				batch = append(batch, txs[i].CSVRow())
			}
			stats.Transactions += int64(len(txs))
		}

		stats.RowsProcessed++
		if stats.RowsProcessed%int64(d.cfg.FlushBatchRows) == 0 {
			if err := flushBatch(writer, &batch); err != nil {
				writer.Close()
				return nil, err
			}
		}
		if d.cfg.Progress != nil && stats.RowsProcessed%config.LogEvery == 0 {
			d.cfg.Progress(stats.RowsProcessed, stats.Transactions)
		}
	}

	if err := flushBatch(writer, &batch); err != nil {
		writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	if d.cfg.Progress != nil {
		d.cfg.Progress(stats.RowsProcessed, stats.Transactions)
	}

	stats.OutputPath = writer.Path()
	stats.Duration = time.Since(start)
	return stats, nil
}

func flushBatch(writer *CSVWriter, batch *[][]string) error {
	if len(*batch) > 0 {
		if err := writer.WriteRows(*batch); err != nil {
			return err
		}
		*batch = (*batch)[:0]
	}
	return writer.Flush()
}

// resolveMonth determines the calendar month for a row. The
// month_start_date column is authoritative; if it does not parse, the
// month_index falls back to the dataset window. A row that resolves
// neither way is a fatal input error.
func resolveMonth(row *data.MonthlyRow) (int, time.Month, error) {
	if t, err := time.Parse("2006-01-02", row.MonthStartRaw); err == nil {
		return t.Year(), t.Month(), nil
	}
	if row.MonthIndex >= 1 && row.MonthIndex <= config.WindowMonths {
		offset := config.WindowStartMonth - 1 + row.MonthIndex - 1
		year := config.WindowStartYear + offset/12
		month := time.Month(offset%12 + 1)
		return year, month, nil
	}
	return 0, 0, fmt.Errorf("user %s: month_index %d outside 1-%d and month_start_date %q unparseable",
		row.UserID, row.MonthIndex, config.WindowMonths, row.MonthStartRaw)
}
