package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestLineProgress(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(4)
	progress.Done("catalogs/a-very-long-catalog-name.yaml")
	progress.Done("catalogs/pay.yaml")
	progress.Finish()

	output := buf.String()
	tests := []struct {
		name string
		want string
	}{
		{"empty bar", "Linting [--------------------] 0/4"},
		{"first file", "Linting [#####---------------] 1/4 a-very-long-catalog-name.yaml"},
		{"second file", "Linting [##########----------] 2/4 pay.yaml"},
		{"summary", "Linted 2/4 files in "},
	}
	for _, tt := range tests {
		if !strings.Contains(output, tt.want) {
			t.Errorf("%s: output %q does not contain %q", tt.name, output, tt.want)
		}
	}
	if !strings.HasSuffix(output, "\n") {
		t.Error("Finish() should end the progress line")
	}
}

func TestLineProgress_ClearsLongerLine(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(2)
	progress.Done("long-catalog-name.yaml")
	progress.Done("b.yaml")

	lines := strings.Split(buf.String(), "\r")
	prev, last := lines[len(lines)-2], lines[len(lines)-1]
	if len(last) != len(prev) {
		t.Errorf("redraw %q is shorter than %q; leftover characters stay visible", last, prev)
	}
	if strings.TrimRight(last, " ") != "Linting [####################] 2/2 b.yaml" {
		t.Errorf("last line = %q", last)
	}
}

func TestLineProgress_DoneNeverExceedsTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(1)
	progress.Done("a.yaml")
	progress.Done("b.yaml")

	if strings.Contains(buf.String(), "2/1") {
		t.Errorf("count overran the total: %q", buf.String())
	}
}

func TestLineProgress_ZeroTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(0)
	progress.Done("a.yaml")
	progress.Finish()

	if buf.Len() != 0 {
		t.Errorf("zero total should render nothing, got %q", buf.String())
	}
}

func TestLineProgress_Error(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(3)
	progress.Error(fmt.Errorf("catalog is empty"))

	if !strings.Contains(buf.String(), "\n✗ Error: catalog is empty\n") {
		t.Errorf("error output = %q", buf.String())
	}
}

func TestNewProgressReporter_DefaultsWriter(t *testing.T) {
	progress := NewProgressReporter(nil).(*LineProgress)
	if progress.writer == nil {
		t.Error("NewProgressReporter(nil) should default the writer")
	}
}
