package clix

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/indaco/podsrc/internal/config"
	"github.com/indaco/podsrc/internal/printer"
	"github.com/indaco/podsrc/internal/source"
	"github.com/indaco/podsrc/internal/testutils"
	"github.com/urfave/cli/v3"
)

func TestMain(m *testing.M) {
	printer.SetNoColor(true)
	os.Setenv("CI", "true")
	os.Exit(m.Run())
}

// runWithFlags runs action inside a root command carrying the global flags.
func runWithFlags(t *testing.T, args []string, action func(cmd *cli.Command) error) error {
	t.Helper()
	app := &cli.Command{
		Name: "podsrc",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source"},
			&cli.StringFlag{Name: "path"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error { return action(cmd) },
	}
	return app.Run(context.Background(), append([]string{"podsrc"}, args...))
}

func TestResolveSource(t *testing.T) {
	cfg := &config.Config{Sources: []config.SourceConfig{
		{Name: "team", Path: "./Specs"},
		{Name: "vendor", Path: "/opt/specs"},
	}}

	tests := []struct {
		name    string
		cfg     *config.Config
		args    []string
		want    config.SourceConfig
		wantErr string
	}{
		{"first source by default", cfg, nil, config.SourceConfig{Name: "team", Path: "./Specs"}, ""},
		{"named source", cfg, []string{"--source", "vendor"}, config.SourceConfig{Name: "vendor", Path: "/opt/specs"}, ""},
		{"path overrides root", cfg, []string{"--source", "vendor", "--path", "/tmp/x"}, config.SourceConfig{Name: "vendor", Path: "/tmp/x"}, ""},
		{"unknown source with path", cfg, []string{"--source", "adhoc", "--path", "/tmp/x"}, config.SourceConfig{Name: "adhoc", Path: "/tmp/x"}, ""},
		{"unknown source", cfg, []string{"--source", "nope"}, config.SourceConfig{}, `unknown source "nope" (configured: team, vendor)`},
		{"nil config", nil, nil, config.SourceConfig{Name: "local", Path: "."}, ""},
		{"empty config with path", &config.Config{}, []string{"--path", "/tmp/x"}, config.SourceConfig{Name: "local", Path: "/tmp/x"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got config.SourceConfig
			err := runWithFlags(t, tt.args, func(cmd *cli.Command) error {
				var err error
				got, err = ResolveSource(cmd, tt.cfg)
				return err
			})
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveSource() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolveSource() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewSource_AppliesDiscovery(t *testing.T) {
	root := testutils.NewSpecsRepo(t)
	cfg := &config.Config{Discovery: &config.DiscoveryConfig{Patterns: []string{"**/*.podspec"}}}

	src := NewSource(cfg, config.SourceConfig{Name: "ruby-only", Path: root})
	if src.Name() != "ruby-only" || src.SpecsDir() != root {
		t.Errorf("unexpected source %q at %q", src.Name(), src.SpecsDir())
	}

	specs, err := src.AllSpecs(context.Background())
	if err != nil {
		t.Fatalf("AllSpecs() error = %v", err)
	}
	if len(specs) != 1 || specs[0].String() != "Alamofire (5.8.1)" {
		t.Errorf("expected only the Ruby podspec, got %v", specs)
	}
}

func TestOpen(t *testing.T) {
	root := testutils.NewSpecsRepo(t)

	var sess *Session
	err := runWithFlags(t, []string{"--path", root}, func(cmd *cli.Command) error {
		var err error
		sess, err = Open(context.Background(), cmd, config.Default())
		return err
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	names, err := sess.Source.PodNames(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(names, ",") != "Alamofire,Moya" {
		t.Errorf("PodNames() = %v", names)
	}

	err = runWithFlags(t, []string{"--path", root + "/missing"}, func(cmd *cli.Command) error {
		_, err := Open(context.Background(), cmd, config.Default())
		return err
	})
	if !errors.Is(err, source.ErrSourceNotFound) {
		t.Errorf("expected ErrSourceNotFound, got %v", err)
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{" JSON ", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"toml", FormatTOML, false},
		{"table", FormatTable, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

type sampleDoc struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Items []string `json:"items" yaml:"items" toml:"items"`
}

func (d *sampleDoc) Text() string { return "sample " + d.Name + "\n" }

func (d *sampleDoc) Table() ([]string, [][]string) {
	rows := make([][]string, len(d.Items))
	for i, item := range d.Items {
		rows[i] = []string{d.Name, item}
	}
	return []string{"NAME", "ITEM"}, rows
}

func TestRender(t *testing.T) {
	doc := &sampleDoc{Name: "Moya", Items: []string{"a", "b"}}

	tests := []struct {
		format OutputFormat
		want   []string
	}{
		{FormatText, []string{"sample Moya\n"}},
		{FormatJSON, []string{"{\n  \"name\": \"Moya\",", `"items": [`}},
		{FormatYAML, []string{"name: Moya", "- a"}},
		{FormatTOML, []string{"name = 'Moya'", "items = ['a', 'b']"}},
		{FormatTable, []string{"NAME", "ITEM", "Moya"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(&buf, tt.format, doc); err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("expected output to contain %q, got:\n%s", w, buf.String())
				}
			}
		})
	}
}
