// Package ui holds the Lip Gloss styles shared by the menu, the CLI and the
// TUI.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are bound to one output. Colours are dropped automatically when
// that output is not a terminal.
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Pending  lipgloss.Style
	Error    lipgloss.Style
	Done     lipgloss.Style
	Selected lipgloss.Style
	Help     lipgloss.Style
	Box      lipgloss.Style
}

// New builds styles for w using the named theme.
func New(w io.Writer, theme string) *Styles {
	r := lipgloss.NewRenderer(w)
	t := ThemeByName(theme)
	return &Styles{
		Theme:    t,
		Title:    r.NewStyle().Bold(true).Foreground(t.Title),
		Muted:    r.NewStyle().Faint(true).Foreground(t.Muted),
		Accent:   r.NewStyle().Foreground(t.Accent),
		Success:  r.NewStyle().Foreground(t.Success),
		Pending:  r.NewStyle().Foreground(t.Pending),
		Error:    r.NewStyle().Bold(true).Foreground(t.Error),
		Done:     r.NewStyle().Faint(true).Strikethrough(true),
		Selected: r.NewStyle().Bold(true).Reverse(true),
		Help:     r.NewStyle().Faint(true),
		Box: r.NewStyle().
			Border(t.Border).
			BorderForeground(t.Muted).
			Padding(0, 1),
	}
}

// OK prints a success line.
func (s *Styles) OK(w io.Writer, msg string) {
	fmt.Fprintln(w, s.Success.Render(s.Theme.SymDone+" "+msg))
}

// Fail prints an error line.
func (s *Styles) Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, s.Error.Render("✖ "+msg))
}

// Panel frames lines in a bordered box.
func (s *Styles) Panel(lines []string) string {
	return s.Box.Render(strings.Join(lines, "\n"))
}

// ProgressBar renders a bar with a done/total counter.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf("] %d/%d", done, total)
}
