package config

import (
	"os"
	"path/filepath"
	"testing"
)

/* ------------------------------------------------------------------------- */
/* HELPERS                                                                   */
/* ------------------------------------------------------------------------- */

// runInTempDir runs a function in the directory of tmpPath, then restores the
// previous working directory.
func runInTempDir(t *testing.T, tmpPath string, fn func()) {
	t.Helper()

	// The CWD might have been deleted by a previous test's cleanup.
	origDir, err := os.Getwd()
	if err != nil {
		origDir = os.TempDir()
		if chErr := os.Chdir(origDir); chErr != nil {
			t.Fatalf("failed to chdir to temp dir: %v", chErr)
		}
	}

	targetDir := filepath.Dir(tmpPath)
	if err := os.Chdir(targetDir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", targetDir, err)
	}
	defer func() { _ = os.Chdir(origDir) }()
	fn()
}

func checkError(t *testing.T, err error, wantErr bool) {
	t.Helper()
	if (err != nil) != wantErr {
		t.Fatalf("expected err=%v, got err=%v", wantErr, err)
	}
}

func checkConfigNil(t *testing.T, cfg *Config, wantNil bool) {
	t.Helper()
	if wantNil && cfg != nil {
		t.Errorf("expected nil config, got %+v", cfg)
	}
	if !wantNil && cfg == nil {
		t.Fatal("expected non-nil config, got nil")
	}
}

func checkSingleSource(t *testing.T, cfg *Config, wantName, wantPath string) {
	t.Helper()
	if len(cfg.Sources) != 1 {
		t.Fatalf("expected 1 source, got %d: %+v", len(cfg.Sources), cfg.Sources)
	}
	if got := cfg.Sources[0]; got.Name != wantName || got.Path != wantPath {
		t.Errorf("expected source {%s %s}, got %+v", wantName, wantPath, got)
	}
}
