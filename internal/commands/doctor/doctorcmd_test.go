package doctor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/podsrc/internal/config"
	"github.com/indaco/podsrc/internal/printer"
	"github.com/indaco/podsrc/internal/testutils"
	"github.com/urfave/cli/v3"
)

func TestMain(m *testing.M) {
	printer.SetNoColor(true)
	os.Setenv("CI", "true")
	os.Exit(m.Run())
}

// buildConfigCLI returns a root command whose --path flag has no default,
// so doctor checks every configured source.
func buildConfigCLI(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name: "podsrc",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source"},
			&cli.StringFlag{Name: "path"},
		},
		Commands: []*cli.Command{Run(cfg)},
	}
}

func TestCLI_DoctorCommand_Valid(t *testing.T) {
	root := testutils.NewSpecsRepo(t)
	appCli := testutils.BuildCLIForTests(root, []*cli.Command{Run(config.Default())})

	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, appCli, []string{"podsrc", "doctor"}, root)
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}

	want := []string{
		"✓ YAML Syntax: No .podsrc.yaml file found, using defaults",
		"✓ Scan 'local': 3 specification(s) for 2 pod(s) in " + root,
		"! Scan 'local': Skipping `Broken/1.0/Broken.podspec.json` because the podspec contains errors.",
		"0 error(s), 1 warning(s)",
	}
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, output)
		}
	}
}

func TestCLI_DoctorCommand_MissingRoot(t *testing.T) {
	root := testutils.NewSpecsRepo(t)
	missing := filepath.Join(root, "missing")
	appCli := testutils.BuildCLIForTests(missing, []*cli.Command{Run(config.Default())})

	var runErr error
	output, err := testutils.CaptureStdout(func() {
		runErr = testutils.RunCLITestAllowError(t, appCli, []string{"podsrc", "doctor"}, root)
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}
	if runErr == nil || runErr.Error() != "doctor found 1 error(s)" {
		t.Fatalf("expected one error, got %v", runErr)
	}
	if !strings.Contains(output, "✗ Scan 'local': Unable to find a source named: `local`") {
		t.Errorf("expected scan failure in output, got:\n%s", output)
	}
}

func TestCLI_DoctorCommand_ConfiguredSources(t *testing.T) {
	root := testutils.NewSpecsRepo(t)
	work := t.TempDir()
	content := "sources:\n  - name: team\n    path: " + root + "\n  - name: vendor\n    path: ./nope\ntheme: neon\n"
	if err := os.WriteFile(filepath.Join(work, config.FileName), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Parse([]byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var runErr error
	output, err := testutils.CaptureStdout(func() {
		runErr = testutils.RunCLITestAllowError(t, buildConfigCLI(cfg), []string{"podsrc", "doctor"}, work)
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}

	want := []string{
		"✓ YAML Syntax: Configuration file is valid YAML",
		"✓ Sources: Source 'team': path '" + root + "' is valid",
		"✗ Sources: Source 'vendor': path './nope' does not exist",
		"! Theme: Unknown theme 'neon'",
		"✓ Scan 'team': 3 specification(s) for 2 pod(s)",
		"✗ Scan 'vendor':",
	}
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("expected output to contain %q, got:\n%s", w, output)
		}
	}
	if runErr == nil || runErr.Error() != "doctor found 2 error(s)" {
		t.Errorf("expected two errors, got %v", runErr)
	}
}

func TestCLI_DoctorCommand_SelectSource(t *testing.T) {
	root := testutils.NewSpecsRepo(t)
	cfg := &config.Config{Sources: []config.SourceConfig{
		{Name: "team", Path: root},
		{Name: "vendor", Path: root},
	}}

	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, buildConfigCLI(cfg), []string{"podsrc", "--source", "vendor", "doctor"}, root)
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}
	if strings.Contains(output, "Scan 'team'") || !strings.Contains(output, "Scan 'vendor'") {
		t.Errorf("expected only the vendor source to be scanned, got:\n%s", output)
	}

	err = testutils.RunCLITestAllowError(t, buildConfigCLI(cfg), []string{"podsrc", "--source", "nope", "doctor"}, root)
	if err == nil || !strings.Contains(err.Error(), `unknown source "nope"`) {
		t.Errorf("expected unknown source error, got %v", err)
	}
}
