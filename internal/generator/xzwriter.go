package generator

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
)

// XZWriter compresses a stream by piping it through an external xz
// process. The output file gets a .csv.xz extension.
type XZWriter struct {
	file    *os.File
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	path    string
	mu      sync.Mutex
	closed  bool
	waitErr error
	waitCh  chan struct{}
}

// XZWriterConfig configures the compressor.
type XZWriterConfig struct {
	OutputDir string
	// Filename without extension.
	Filename string
	// Preset 0-9, default 6.
	Preset int
}

// NewXZWriter starts an xz subprocess writing to OutputDir/Filename.csv.xz.
func NewXZWriter(cfg XZWriterConfig) (*XZWriter, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(cfg.OutputDir, cfg.Filename+".csv.xz")
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}

	preset := cfg.Preset
	if preset < 0 || preset > 9 {
		preset = 6
	}

	cmd := exec.Command("xz", "-c", fmt.Sprintf("-%d", preset))
	cmd.Stdout = file
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to start xz: %w", err)
	}

	w := &XZWriter{
		file:   file,
		cmd:    cmd,
		stdin:  stdin,
		path:   path,
		waitCh: make(chan struct{}),
	}

	go func() {
		w.waitErr = cmd.Wait()
		close(w.waitCh)
	}()

	return w, nil
}

// Write streams data to the compressor.
func (w *XZWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, fmt.Errorf("writer is closed")
	}
	return w.stdin.Write(p)
}

// Close signals EOF to xz, waits for it to drain, and closes the output
// file.
func (w *XZWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.stdin.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to close xz stdin: %w", err)
	}

	<-w.waitCh

	fileErr := w.file.Close()
	if w.waitErr != nil {
		return fmt.Errorf("xz process failed: %w", w.waitErr)
	}
	if fileErr != nil {
		return fmt.Errorf("failed to close output file: %w", fileErr)
	}
	return nil
}

// Path returns the full path of the .xz file.
func (w *XZWriter) Path() string {
	return w.path
}

// CheckXZAvailable verifies the xz binary is on PATH before a compressed
// run starts.
func CheckXZAvailable() error {
	cmd := exec.Command("xz", "--version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("xz not found: %w\nInstall with: apt install xz-utils (Linux) or brew install xz (macOS)", err)
	}
	return nil
}
