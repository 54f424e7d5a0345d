package podspec

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/indaco/podsrc/internal/core"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"Specs/Alamofire/5.8.1/Alamofire.podspec", FormatRuby, false},
		{"Specs/Alamofire.podspec.json", FormatJSON, false},
		{"Specs/Alamofire.PODSPEC.JSON", FormatJSON, false},
		{"Alamofire.podspec.yaml", FormatYAML, false},
		{"Alamofire.podspec.yml", FormatYAML, false},
		{"Alamofire.json", "", true},
		{"README.md", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DetectFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestFormat_IsValid(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatRuby, true},
		{FormatJSON, true},
		{FormatYAML, true},
		{Format("toml"), false},
		{Format(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.IsValid(); got != tt.want {
				t.Errorf("Format(%q).IsValid() = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestReader_Parse_JSON(t *testing.T) {
	content := `{
  "name": "Alamofire",
  "version": "5.8.1",
  "summary": "Elegant HTTP Networking in Swift",
  "homepage": "https://github.com/Alamofire/Alamofire",
  "license": {"type": "MIT", "file": "LICENSE"},
  "authors": {"Alamofire Software Foundation": "info@alamofire.org"},
  "source": {"git": "https://github.com/Alamofire/Alamofire.git", "tag": "5.8.1"},
  "dependencies": {"Zeta": [], "Beta/Core": ["~> 1.0", "< 2"]},
  "subspecs": [{"name": "Core"}, {"name": "Extensions"}]
}`
	fs := core.NewMockFileSystem()
	fs.SetFile("/specs/Alamofire.podspec.json", []byte(content))

	spec, err := NewReader(fs).Parse(context.Background(), "/specs/Alamofire.podspec.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if spec.Name != "Alamofire" {
		t.Errorf("Name = %q, want %q", spec.Name, "Alamofire")
	}
	if spec.Version.String() != "5.8.1" {
		t.Errorf("Version = %q, want %q", spec.Version, "5.8.1")
	}
	if spec.DefinedInFile != "/specs/Alamofire.podspec.json" {
		t.Errorf("DefinedInFile = %q", spec.DefinedInFile)
	}
	if spec.Format != FormatJSON {
		t.Errorf("Format = %q, want %q", spec.Format, FormatJSON)
	}
	if spec.License != "MIT" {
		t.Errorf("License = %q, want %q", spec.License, "MIT")
	}
	if diff := cmp.Diff([]string{"Alamofire Software Foundation"}, spec.Authors); diff != "" {
		t.Errorf("Authors mismatch (-want +got):\n%s", diff)
	}
	if spec.Source["tag"] != "5.8.1" {
		t.Errorf("Source[tag] = %q, want %q", spec.Source["tag"], "5.8.1")
	}
	wantDeps := []Dependency{
		{Name: "Beta/Core", Requirements: []string{"~> 1.0", "< 2"}},
		{Name: "Zeta"},
	}
	if diff := cmp.Diff(wantDeps, spec.Dependencies); diff != "" {
		t.Errorf("Dependencies mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Core", "Extensions"}, spec.Subspecs); diff != "" {
		t.Errorf("Subspecs mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_Parse_YAML(t *testing.T) {
	content := `name: Yams
version: 5.0.6
summary: A sweet and swifty YAML parser.
license: MIT
authors:
  - JP Simard
`
	fs := core.NewMockFileSystem()
	fs.SetFile("/specs/Yams.podspec.yaml", []byte(content))

	spec, err := NewReader(fs).Parse(context.Background(), "/specs/Yams.podspec.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Name != "Yams" || spec.Version.String() != "5.0.6" {
		t.Errorf("got %s, want Yams (5.0.6)", spec)
	}
	if spec.Format != FormatYAML {
		t.Errorf("Format = %q, want %q", spec.Format, FormatYAML)
	}
	if diff := cmp.Diff([]string{"JP Simard"}, spec.Authors); diff != "" {
		t.Errorf("Authors mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_Parse_YAMLNumericVersion(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/Legacy.podspec.yml", []byte("name: Legacy\nversion: 2.5\n"))

	spec, err := NewReader(fs).Parse(context.Background(), "/Legacy.podspec.yml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Version.String() != "2.5" {
		t.Errorf("Version = %q, want %q", spec.Version, "2.5")
	}
}

func TestReader_Parse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		errMsg  string
	}{
		{"invalid json", "/A.podspec.json", `{"name": "A",`, "failed to parse JSON"},
		{"json array", "/A.podspec.json", `["A"]`, "must be an object"},
		{"missing name", "/A.podspec.json", `{"version": "1.0"}`, `"name"`},
		{"numeric name", "/A.podspec.json", `{"name": 1, "version": "1.0"}`, `"name"`},
		{"missing version", "/A.podspec.json", `{"name": "A"}`, `"version"`},
		{"invalid version", "/A.podspec.json", `{"name": "A", "version": "one"}`, "invalid version"},
		{"invalid yaml", "/A.podspec.yaml", "name: [A\n", "failed to parse YAML"},
		{"unsupported extension", "/A.txt", "anything", "unsupported specification file"},
		{"ruby without block", "/A.podspec", "puts 'hi'", "no Pod::Spec.new block"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile(tt.path, []byte(tt.content))

			_, err := NewReader(fs).Parse(context.Background(), tt.path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q does not contain %q", err, tt.errMsg)
			}
		})
	}
}

func TestReader_Parse_MissingFile(t *testing.T) {
	fs := core.NewMockFileSystem()
	_, err := NewReader(fs).Parse(context.Background(), "/missing.podspec")
	if err == nil || !strings.Contains(err.Error(), "failed to read file") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestReader_Parse_EmptyPath(t *testing.T) {
	_, err := NewReader(core.NewMockFileSystem()).Parse(context.Background(), "")
	if err == nil {
		t.Fatal("expected error for empty path")
	}
}
