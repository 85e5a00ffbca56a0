package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter(&bytes.Buffer{}, "Exporting").(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	var buf bytes.Buffer
	r := NewReporter(&buf, "Exporting")
	if _, ok := r.(*TerminalReporter); !ok {
		t.Fatal("expected TerminalReporter")
	}
	r.Start(3)
	r.Update(1, "nodes")
	r.Update(3, "links")
	r.Finish()
}

func TestCIReporterSteps(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{w: &buf, description: "Exporting"}
	r.Start(100)
	for i := 1; i <= 100; i++ {
		r.Update(i, "row")
	}
	r.Finish()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Header, ten steps, footer.
	if len(lines) != 12 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "Exporting: 100 rows" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "[10/100] row" || lines[10] != "[100/100] row" {
		t.Errorf("steps = %q .. %q", lines[1], lines[10])
	}
}

func TestCIReporterEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{w: &buf, description: "Exporting"}
	r.Start(0)
	r.Update(0, "row")
	r.Finish()
	if strings.Contains(buf.String(), "[") {
		t.Errorf("no step lines expected:\n%s", buf.String())
	}
}
