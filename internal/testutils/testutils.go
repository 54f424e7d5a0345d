package testutils

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"
)

// CaptureStdout runs f and returns everything it wrote to os.Stdout.
func CaptureStdout(f func()) (string, error) {
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	var copyErr error
	go func() {
		_, copyErr = io.Copy(&buf, r)
		close(done)
	}()

	defer func() { os.Stdout = orig }()
	f()

	_ = w.Close()
	<-done
	_ = r.Close()
	return buf.String(), copyErr
}

// BuildCLIForTests wraps commands in a root command carrying the global
// flags, with --path defaulting to root.
func BuildCLIForTests(root string, commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name: "podsrc",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}},
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Value: root},
			&cli.BoolFlag{Name: "no-color"},
		},
		Commands: commands,
	}
}

// RunCLITest runs app with args inside workDir and fails the test on error.
func RunCLITest(t *testing.T, app *cli.Command, args []string, workDir string) {
	t.Helper()
	if err := RunCLITestAllowError(t, app, args, workDir); err != nil {
		t.Fatalf("app.Run failed: %v", err)
	}
}

// RunCLITestAllowError runs app with args inside workDir and returns its error.
func RunCLITestAllowError(t *testing.T, app *cli.Command, args []string, workDir string) error {
	t.Helper()

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("failed to change to %s: %v", workDir, err)
	}
	defer func() { _ = os.Chdir(origDir) }()

	return app.Run(context.Background(), args)
}

// WriteTempConfig writes content as .podsrc.yaml in a new temp directory and
// returns the file path.
func WriteTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".podsrc.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// WritePodspec writes content to rel under dir, creating parent directories,
// and returns the absolute path.
func WritePodspec(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// JSONPodspec returns a minimal JSON podspec document.
func JSONPodspec(name, version string) string {
	return `{"name": "` + name + `", "version": "` + version + `", "summary": "` + name + ` for tests"}`
}

// RubyPodspec returns a minimal Ruby DSL podspec.
func RubyPodspec(name, version string) string {
	return "Pod::Spec.new do |s|\n  s.name    = '" + name + "'\n  s.version = '" + version + "'\n  s.summary = '" + name + " for tests'\nend\n"
}

// NewSpecsRepo creates a temp specs directory with:
//
//	Alamofire 5.8.1 (Ruby) and 5.7.0 (JSON)
//	Moya 15.0.0 (JSON, depends on Alamofire ~> 5.0)
//	Broken.podspec.json, which fails to parse
func NewSpecsRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	WritePodspec(t, dir, "Alamofire/5.8.1/Alamofire.podspec", `Pod::Spec.new do |s|
  s.name     = 'Alamofire'
  s.version  = '5.8.1'
  s.license  = { :type => 'MIT', :file => 'LICENSE' }
  s.summary  = 'Elegant HTTP Networking in Swift'
  s.homepage = 'https://github.com/Alamofire/Alamofire'
  s.authors  = { 'Alamofire Software Foundation' => 'info@alamofire.org' }
  s.source   = { :git => 'https://github.com/Alamofire/Alamofire.git', :tag => s.version }
end
`)
	WritePodspec(t, dir, "Alamofire/5.7.0/Alamofire.podspec.json", JSONPodspec("Alamofire", "5.7.0"))
	WritePodspec(t, dir, "Moya/15.0.0/Moya.podspec.json", `{
  "name": "Moya",
  "version": "15.0.0",
  "summary": "Network abstraction layer written in Swift",
  "dependencies": {"Alamofire": ["~> 5.0"]}
}`)
	WritePodspec(t, dir, "Broken/1.0/Broken.podspec.json", `{"name": "Broken",`)
	return dir
}
