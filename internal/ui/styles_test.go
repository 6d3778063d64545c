package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name               string
		done, total, width int
		want               string
	}{
		{"empty list", 0, 0, 10, "[░░░░░░░░░░] 0/1"},
		{"half", 1, 2, 10, "[█████░░░░░] 1/2"},
		{"all done", 3, 3, 6, "[██████] 3/3"},
		{"narrow width clamps", 1, 1, 2, "[█████] 1/1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
				t.Errorf("ProgressBar() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlainOutputOnNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf, "classic")
	s.OK(&buf, "added")
	s.Fail(&buf, "boom")

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("escape codes written to a non-terminal: %q", out)
	}
	if !strings.Contains(out, "✔ added") || !strings.Contains(out, "✖ boom") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestThemeByName(t *testing.T) {
	if got := ThemeByName("mono").BoxChecked; got != "[x]" {
		t.Errorf("mono BoxChecked = %q", got)
	}
	if got := ThemeByName("NEON").BoxChecked; got != "◼" {
		t.Errorf("neon BoxChecked = %q", got)
	}
	if got := ThemeByName("unknown").BoxChecked; got != "☑" {
		t.Errorf("fallback BoxChecked = %q", got)
	}
}

func TestPanelContainsLines(t *testing.T) {
	s := New(&bytes.Buffer{}, "mono")
	out := s.Panel([]string{"0. a - Pendiente", "1. b - Completada"})
	for _, want := range []string{"0. a - Pendiente", "1. b - Completada", "+"} {
		if !strings.Contains(out, want) {
			t.Errorf("panel missing %q:\n%s", want, out)
		}
	}
}
