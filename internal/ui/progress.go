package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar tracks a generation run: a determinate bar over input rows
// with a running transaction count alongside.
type ProgressBar struct {
	ui        *UI
	bar       progress.Model
	label     string
	totalRows int64
	rows      int64
	txns      int64
	start     time.Time
	mu        sync.Mutex
	announced bool
}

// NewProgressBar creates a progress bar over a known number of input rows.
func (u *UI) NewProgressBar(label string, totalRows int64) *ProgressBar {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	return &ProgressBar{
		ui:        u,
		bar:       bar,
		label:     label,
		totalRows: totalRows,
		start:     time.Now(),
	}
}

// Update sets the rows processed and transactions written so far.
func (p *ProgressBar) Update(rows, txns int64) {
	p.mu.Lock()
	p.rows = rows
	p.txns = txns
	p.mu.Unlock()

	p.render()
}

func (p *ProgressBar) render() {
	p.mu.Lock()
	rows, txns, total := p.rows, p.txns, p.totalRows
	p.mu.Unlock()

	if !p.ui.shouldStyle() {
		// Non-TTY: one line per update so logs stay readable.
		if !p.announced {
			fmt.Printf("%s:\n", p.label)
			p.announced = true
		}
		fmt.Printf("  %d/%d rows, %d transactions\n", rows, total, txns)
		return
	}

	pct := 0.0
	if total > 0 {
		pct = float64(rows) / float64(total)
	}
	if pct > 1 {
		pct = 1
	}

	labelStyle := lipgloss.NewStyle().Width(18)
	countStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	fmt.Fprintf(os.Stdout, "\r\033[K  %s %s %s",
		labelStyle.Render(p.label),
		p.bar.ViewAs(pct),
		countStyle.Render(fmt.Sprintf("%d/%d rows · %d txns", rows, total, txns)),
	)
}

// Complete finishes the bar with a success indicator.
func (p *ProgressBar) Complete() {
	p.mu.Lock()
	rows, txns := p.rows, p.txns
	p.mu.Unlock()

	if !p.ui.shouldStyle() {
		fmt.Printf("  %d rows done, %d transactions\n", rows, txns)
		return
	}

	labelStyle := lipgloss.NewStyle().Width(18)

	fmt.Fprintf(os.Stdout, "\r\033[K  %s %s %s\n",
		StyleSuccess.Render(SymbolSuccess),
		labelStyle.Render(p.label),
		StyleSuccess.Render(fmt.Sprintf("%d rows, %d transactions in %s", rows, txns, time.Since(p.start).Round(time.Second))),
	)
}

// Fail finishes the bar with an error indicator.
func (p *ProgressBar) Fail(err error) {
	if !p.ui.shouldStyle() {
		fmt.Printf("FAILED: %v\n", err)
		return
	}

	labelStyle := lipgloss.NewStyle().Width(18)

	fmt.Fprintf(os.Stdout, "\r\033[K  %s %s %s\n",
		StyleError.Render(SymbolError),
		labelStyle.Render(p.label),
		StyleError.Render(err.Error()),
	)
}
