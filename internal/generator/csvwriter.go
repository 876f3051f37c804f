package generator

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// CSVWriter streams rows to a .csv file (or .csv.xz when compression is
// on) through a buffered writer, so a multi-million-row run never holds
// more than one flush batch in memory.
type CSVWriter struct {
	file       *os.File
	xz         *XZWriter
	buffer     *bufio.Writer
	writer     *csv.Writer
	mu         sync.Mutex
	rowCount   int64
	closed     bool
	compressed bool
}

// CSVWriterConfig configures an output stream.
type CSVWriterConfig struct {
	OutputDir string
	// Filename without extension, e.g. "transactions".
	Filename string
	Headers  []string
	// BufferSize in bytes; defaults to 64KB.
	BufferSize int
	// Compress pipes output through the external xz command.
	Compress bool
	// XZPreset 0-9, default 6.
	XZPreset int
}

// NewCSVWriter creates the output file, sets up compression if requested,
// and writes the header row.
func NewCSVWriter(cfg CSVWriterConfig) (*CSVWriter, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	bufSize := cfg.BufferSize
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}

	var underlying io.Writer
	var file *os.File
	var xz *XZWriter

	if cfg.Compress {
		var err error
		xz, err = NewXZWriter(XZWriterConfig{
			OutputDir: cfg.OutputDir,
			Filename:  cfg.Filename,
			Preset:    cfg.XZPreset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		underlying = xz
	} else {
		path := filepath.Join(cfg.OutputDir, cfg.Filename+".csv")
		var err error
		file, err = os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create file %s: %w", path, err)
		}
		underlying = file
	}

	buffer := bufio.NewWriterSize(underlying, bufSize)
	w := &CSVWriter{
		file:       file,
		xz:         xz,
		buffer:     buffer,
		writer:     csv.NewWriter(buffer),
		compressed: cfg.Compress,
	}

	if len(cfg.Headers) > 0 {
		if err := w.writer.Write(cfg.Headers); err != nil {
			w.closeUnderlying()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return w, nil
}

// WriteRow appends a single data row.
func (w *CSVWriter) WriteRow(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("writer is closed")
	}
	if err := w.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	w.rowCount++
	return nil
}

// WriteRows appends a batch of rows.
func (w *CSVWriter) WriteRows(rows [][]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("writer is closed")
	}
	for _, row := range rows {
		if err := w.writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
		w.rowCount++
	}
	return nil
}

// Flush pushes buffered data down to the file or compressor. The driver
// calls this at every batch boundary.
func (w *CSVWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return fmt.Errorf("csv flush error: %w", err)
	}
	return w.buffer.Flush()
}

// Close flushes remaining data and closes the underlying file or
// compressor.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.closeUnderlying()
		return fmt.Errorf("csv flush error: %w", err)
	}
	if err := w.buffer.Flush(); err != nil {
		w.closeUnderlying()
		return fmt.Errorf("buffer flush error: %w", err)
	}
	return w.closeUnderlying()
}

func (w *CSVWriter) closeUnderlying() error {
	if w.compressed {
		return w.xz.Close()
	}
	return w.file.Close()
}

// RowCount returns the number of data rows written, excluding the header.
func (w *CSVWriter) RowCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rowCount
}

// Path returns the full path of the output file.
func (w *CSVWriter) Path() string {
	if w.compressed {
		return w.xz.Path()
	}
	return w.file.Name()
}
