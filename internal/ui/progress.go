package ui

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-isatty"
)

// Progress draws a single-line progress bar. It stays silent unless its
// writer is a terminal.
type Progress struct {
	w         io.Writer
	enabled   bool
	total     int
	current   int
	lastWidth int
	bar       progress.Model
}

// NewProgress returns a bar over total steps writing to w.
func NewProgress(w io.Writer, total int) *Progress {
	if total <= 0 {
		total = 1
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 32
	if cols, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS"))); err == nil && cols > 0 {
		bar.Width = min(max(cols-40, 16), 64)
	}
	return &Progress{w: w, enabled: IsTerminal(w), total: total, bar: bar}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Advance moves one step forward and shows label next to the bar.
func (p *Progress) Advance(label string) {
	if !p.enabled {
		return
	}
	p.current = min(p.current+1, p.total)
	p.render(label)
}

// Done ends the bar line.
func (p *Progress) Done() {
	if !p.enabled || p.lastWidth == 0 {
		return
	}
	fmt.Fprint(p.w, "\n")
	p.lastWidth = 0
}

func (p *Progress) render(label string) {
	pct := float64(p.current) / float64(p.total)
	line := fmt.Sprintf("%s %d/%d %s", p.bar.ViewAs(pct), p.current, p.total, label)
	pad := ""
	if p.lastWidth > len(line) {
		pad = strings.Repeat(" ", p.lastWidth-len(line))
	}
	fmt.Fprintf(p.w, "\r%s%s", line, pad)
	p.lastWidth = len(line)
}
