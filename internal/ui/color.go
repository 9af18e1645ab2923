package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

// Renderer is the lipgloss renderer bound to stdout.
// lipgloss v1.x auto-detects TrueColor but doesn't apply it without
// an explicit SetColorProfile call on some terminals.
var Renderer = newRenderer()

func newRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(os.Stdout)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

// Predefined styles for consistent CLI output.
var (
	Green  = Renderer.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	Cyan   = Renderer.NewStyle().Foreground(lipgloss.Color("14"))
	Red    = Renderer.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	Yellow = Renderer.NewStyle().Foreground(lipgloss.Color("11"))
	White  = Renderer.NewStyle().Foreground(lipgloss.Color("15"))
	Dim    = Renderer.NewStyle().Foreground(lipgloss.Color("245"))
)

// Field renders an aligned "label value" line.
func Field(label, value string) string {
	return Dim.Render(label) + White.Render(value)
}

// Success renders a check mark followed by msg.
func Success(msg string) string {
	return Green.Render("✓") + " " + msg
}

// Failure renders a cross followed by msg.
func Failure(msg string) string {
	return Red.Render("✗") + " " + msg
}

// FileSize renders the size of the file at path, or "" when it cannot be read.
func FileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return humanize.Bytes(uint64(info.Size()))
}
