package search

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
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

func runSearch(t *testing.T, root string, args ...string) string {
	t.Helper()
	appCli := testutils.BuildCLIForTests(root, []*cli.Command{Run(config.Default())})
	output, err := testutils.CaptureStdout(func() {
		testutils.RunCLITest(t, appCli, append([]string{"podsrc", "search"}, args...), root)
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}
	return output
}

func TestCLI_SearchCommand_Text(t *testing.T) {
	root := testutils.NewSpecsRepo(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name:    "exact name",
			args:    []string{"Moya"},
			want:    []string{"-> Moya (15.0.0)", "Versions: 15.0.0"},
			notWant: []string{"Alamofire"},
		},
		{
			name: "subspec dependency resolves to root pod",
			args: []string{"Alamofire/Core (~> 5.0)"},
			want: []string{"-> Alamofire (5.8.1)", "Versions: 5.8.1, 5.7.0"},
		},
		{
			name:    "regex is case-insensitive",
			args:    []string{"--regex", "^moy"},
			want:    []string{"-> Moya"},
			notWant: []string{"Alamofire"},
		},
		{
			name: "full text matches summaries",
			args: []string{"--full-text", "network"},
			want: []string{"-> Alamofire", "-> Moya"},
		},
		{
			name: "no match",
			args: []string{"Nope"},
			want: []string{`No pods found matching "Nope" in the local source`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := runSearch(t, root, tt.args...)
			for _, w := range tt.want {
				if !strings.Contains(output, w) {
					t.Errorf("expected output to contain %q, got %q", w, output)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(output, nw) {
					t.Errorf("expected output not to contain %q, got %q", nw, output)
				}
			}
		})
	}
}

func TestCLI_SearchCommand_JSON(t *testing.T) {
	root := testutils.NewSpecsRepo(t)
	output := runSearch(t, root, "--format", "json", "--regex", "alamo")

	var got Results
	if err := json.Unmarshal([]byte(output), &got); err != nil {
		t.Fatalf("invalid JSON output %q: %v", output, err)
	}
	if got.Query != "alamo" || got.Source != "local" {
		t.Errorf("unexpected header: %+v", got)
	}
	if len(got.Pods) != 1 || got.Pods[0].Name != "Alamofire" {
		t.Fatalf("unexpected pods: %+v", got.Pods)
	}
	if diff := cmp.Diff([]string{"5.8.1", "5.7.0"}, got.Pods[0].Versions); diff != "" {
		t.Errorf("versions mismatch (-want +got):\n%s", diff)
	}
}

func TestCLI_SearchCommand_Errors(t *testing.T) {
	root := testutils.NewSpecsRepo(t)
	appCli := testutils.BuildCLIForTests(root, []*cli.Command{Run(config.Default())})

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing query", nil, "missing search query"},
		{"invalid regex", []string{"--regex", "("}, "invalid search pattern"},
		{"invalid dependency", []string{"Moya (~> 1"}, "invalid dependency"},
		{"bad format", []string{"-f", "xml", "Moya"}, "unsupported format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := testutils.RunCLITestAllowError(t, appCli, append([]string{"podsrc", "search"}, tt.args...), root)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestFind(t *testing.T) {
	root := testutils.NewSpecsRepo(t)
	src := source.NewLocalSource("local", root)
	ctx := context.Background()

	names := func(sets []*source.Set) []string {
		out := make([]string, len(sets))
		for i, s := range sets {
			out[i] = s.Name
		}
		return out
	}

	tests := []struct {
		name     string
		query    string
		regex    bool
		fullText bool
		want     []string
	}{
		{"exact", "Alamofire", false, false, []string{"Alamofire"}},
		{"exact is case-sensitive", "alamofire", false, false, []string{}},
		{"regex", "fire$", true, false, []string{"Alamofire"}},
		{"full text", "swift", true, true, []string{"Alamofire", "Moya"}},
		{"regex ignores summaries", "swift", true, false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sets, err := Find(ctx, src, tt.query, tt.regex, tt.fullText)
			if err != nil {
				t.Fatalf("Find() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, names(sets)); diff != "" {
				t.Errorf("Find() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResults_Table(t *testing.T) {
	r := &Results{Pods: nil}
	headers, rows := r.Table()
	if diff := cmp.Diff([]string{"NAME", "LATEST", "VERSIONS"}, headers); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	if len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}
