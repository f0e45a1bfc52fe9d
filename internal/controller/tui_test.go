package controller

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	m "github.com/mouse-blink/turretlint/internal/model"
)

var ansiSequence = regexp.MustCompile("\x1b\\[[0-9;]*[A-Za-z]")

func stripANSI(s string) string {
	return ansiSequence.ReplaceAllString(s, "")
}

func TestTUI_DisplayReports_PrintsSummaryWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	ui := NewTUI(&buf)

	// view mode falls back to printing when the output is not a file
	if err := ui.Start(WithViewMode()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := ui.DisplayReports(sampleReports(), false); err != nil {
		t.Fatalf("DisplayReports() error = %v", err)
	}

	output := stripANSI(buf.String())

	for _, want := range []string{
		"programs/O0001.nc",
		"Line 7: Invalid or unsupported G-code: G999",
		"2 programs",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}

	if strings.Contains(output, "Upper turret selected") {
		t.Fatalf("info printed without verbose\noutput:\n%s", output)
	}
}

func TestTUI_DisplayReports_Verbose(t *testing.T) {
	var buf bytes.Buffer
	ui := NewTUI(&buf)

	if err := ui.DisplayReports(sampleReports(), true); err != nil {
		t.Fatalf("DisplayReports() error = %v", err)
	}

	output := stripANSI(buf.String())
	for _, want := range []string{
		"Line 3: Upper turret selected (G109 L1)",
		"Upper turret: spindle HD1, milling on, cross machining off",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestTUI_DisplayProgressAndSplit(t *testing.T) {
	var buf bytes.Buffer
	ui := NewTUI(&buf)

	ui.DisplayProgress(sampleReports()[0])

	err := ui.DisplaySplit("O0001.nc", []m.StreamFile{
		{Stream: "upper", Path: "out/O0001.upper.nc", Lines: 20},
	})
	if err != nil {
		t.Fatalf("DisplaySplit() error = %v", err)
	}

	output := stripANSI(buf.String())
	for _, want := range []string{
		"programs/O0001.nc (1 errors, 1 warnings)",
		"split O0001.nc",
		"out/O0001.upper.nc (20 lines)",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestHighlightLine_KeepsText(t *testing.T) {
	tests := []string{
		"N1000 G109 L1;",
		"G01 X-12.5 Z.5 F0.2 S900 M03",
		"(ROUGHING - OD)",
		"",
		"M950;",
	}

	for _, line := range tests {
		if got := stripANSI(highlightLine(line)); got != line {
			t.Fatalf("highlightLine(%q) text = %q", line, got)
		}
	}
}

func TestAnimateScroll_Edges(t *testing.T) {
	if got := animateScroll("hello", 0, 0); got != "" {
		t.Fatalf("animateScroll width 0 = %q, want empty", got)
	}

	if got := animateScroll("hi", 5, 0); got != "hi" {
		t.Fatalf("animateScroll short text = %q, want hi", got)
	}

	if got := animateScroll("abcdef", 3, 0); got != "ab…" {
		t.Fatalf("animateScroll pause = %q, want ab…", got)
	}

	got := animateScroll("abcdef", 3, 10)
	if got == "ab…" || len([]rune(got)) != 3 {
		t.Fatalf("animateScroll scrolled = %q, want len 3 and not truncated", got)
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("hello", 0); got != "" {
		t.Fatalf("truncateToWidth width 0 = %q, want empty", got)
	}

	if got := truncateToWidth("hello", 10); got != "hello" {
		t.Fatalf("truncateToWidth no truncation = %q", got)
	}

	if got := truncateToWidth("hello", 1); got != "…" {
		t.Fatalf("truncateToWidth width 1 = %q, want ellipsis", got)
	}

	if got := truncateToWidth("hello", 2); got != "h…" {
		t.Fatalf("truncateToWidth width 2 = %q, want h…", got)
	}
}

func TestMergeDiagnostics(t *testing.T) {
	a := m.Analysis{
		Errors:   []m.Diagnostic{{Severity: m.SeverityError, Line: 5}},
		Warnings: []m.Diagnostic{{Severity: m.SeverityWarning, Line: 5}, {Severity: m.SeverityWarning, Line: 2}},
		Info:     []m.Diagnostic{{Severity: m.SeverityInfo, Line: 1}, {Severity: m.SeverityInfo, Line: 5}},
	}

	got := mergeDiagnostics(a, true)
	want := []m.Diagnostic{
		{Severity: m.SeverityInfo, Line: 1},
		{Severity: m.SeverityWarning, Line: 2},
		{Severity: m.SeverityError, Line: 5},
		{Severity: m.SeverityWarning, Line: 5},
		{Severity: m.SeverityInfo, Line: 5},
	}

	if len(got) != len(want) {
		t.Fatalf("mergeDiagnostics() len = %d, want %d", len(got), len(want))
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("mergeDiagnostics()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if got := mergeDiagnostics(a, false); len(got) != 3 {
		t.Fatalf("mergeDiagnostics(withInfo=false) len = %d, want 3", len(got))
	}
}
