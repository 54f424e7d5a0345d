package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReporter_Warn(t *testing.T) {
	SetNoColor(true)
	t.Cleanup(func() { SetNoColor(false) })

	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Warn("Skipping `Broken.podspec` because the podspec contains errors.")
	r.Warn("second")

	got := buf.String()
	if !strings.Contains(got, "[!] Skipping `Broken.podspec` because the podspec contains errors.") {
		t.Errorf("unexpected output: %q", got)
	}
	if strings.Count(got, "\n") != 2 {
		t.Errorf("expected 2 lines, got %q", got)
	}
}

func TestCollector(t *testing.T) {
	var c Collector
	c.Warn("a")
	c.Warn("b")

	if diff := cmp.Diff([]string{"a", "b"}, c.Messages()); diff != "" {
		t.Errorf("Messages mismatch (-want +got):\n%s", diff)
	}
}

func TestNoColorFromEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !NoColorFromEnv() {
		t.Error("expected NO_COLOR to be detected")
	}
}
