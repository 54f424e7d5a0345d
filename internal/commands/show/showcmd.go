package show

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/indaco/podsrc/internal/clix"
	"github.com/indaco/podsrc/internal/config"
	"github.com/indaco/podsrc/internal/core"
	"github.com/indaco/podsrc/internal/podspec"
	"github.com/indaco/podsrc/internal/printer"
	"github.com/indaco/podsrc/internal/source"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/urfave/cli/v3"
)

// Run returns the "show" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the specification of a pod version",
		UsageText: "podsrc show NAME [VERSION] [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the specification as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShowCmd(ctx, cmd, cfg)
		},
	}
}

func runShowCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	name := cmd.Args().Get(0)
	if name == "" {
		return fmt.Errorf("missing pod name")
	}

	sess, err := clix.Open(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	spec, err := resolve(ctx, sess.Source, name, cmd.Args().Get(1))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		out, err := BuildJSON(ctx, core.NewOSFileSystem(), spec)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	fmt.Print(FormatText(spec))
	return nil
}

// resolve returns the requested version of name, or the highest one when
// version is empty.
func resolve(ctx context.Context, src source.Source, name, version string) (*podspec.Spec, error) {
	if version == "" {
		set := &source.Set{Name: name, Source: src}
		highest, err := set.HighestVersion(ctx)
		if err != nil {
			return nil, err
		}
		version = highest.String()
	}
	return src.Specification(ctx, name, version)
}

const keyWidth = 13

// FormatText renders a specification as aligned key/value lines.
func FormatText(spec *podspec.Spec) string {
	var sb strings.Builder
	line := func(key, value string) {
		if value != "" {
			sb.WriteString(printer.KeyValue(key, value, keyWidth) + "\n")
		}
	}

	sb.WriteString(printer.Bold(spec.String()) + "\n")
	sb.WriteString(printer.Rule(50) + "\n")
	line("Summary", spec.Summary)
	line("Description", spec.Description)
	line("Homepage", spec.Homepage)
	line("License", spec.License)
	line("Authors", strings.Join(spec.Authors, ", "))
	line("Source", formatSource(spec.Source))

	deps := make([]string, len(spec.Dependencies))
	for i, d := range spec.Dependencies {
		deps[i] = d.String()
	}
	line("Dependencies", strings.Join(deps, ", "))
	line("Subspecs", strings.Join(spec.Subspecs, ", "))
	line("Format", string(spec.Format))
	line("Defined in", absPath(spec.DefinedInFile))
	return sb.String()
}

func formatSource(src map[string]string) string {
	if len(src) == 0 {
		return ""
	}
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + src[k]
	}
	return strings.Join(parts, " ")
}

// BuildJSON returns an indented JSON document for spec. JSON specifications
// are emitted as written, other formats are rebuilt from the parsed fields.
// Both carry a defined_in_file field with the absolute path.
func BuildJSON(ctx context.Context, fs core.FileSystem, spec *podspec.Spec) (string, error) {
	var (
		doc []byte
		err error
	)
	if spec.Format == podspec.FormatJSON {
		doc, err = fs.ReadFile(ctx, spec.DefinedInFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %q: %w", spec.DefinedInFile, err)
		}
	} else {
		doc, err = fromFields(spec)
		if err != nil {
			return "", err
		}
	}

	doc, err = sjson.SetBytes(doc, "defined_in_file", absPath(spec.DefinedInFile))
	if err != nil {
		return "", fmt.Errorf("failed to set defined_in_file: %w", err)
	}
	return strings.TrimSpace(gjson.GetBytes(doc, "@pretty").Raw), nil
}

// fromFields builds a podspec JSON document using the attribute names of
// the JSON podspec format.
func fromFields(spec *podspec.Spec) ([]byte, error) {
	doc := []byte(`{}`)
	set := func(path string, value any) error {
		var err error
		doc, err = sjson.SetBytes(doc, path, value)
		if err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
		return nil
	}

	fields := []struct {
		path  string
		value any
		skip  bool
	}{
		{"name", spec.Name, false},
		{"version", spec.Version.String(), false},
		{"summary", spec.Summary, spec.Summary == ""},
		{"description", spec.Description, spec.Description == ""},
		{"homepage", spec.Homepage, spec.Homepage == ""},
		{"license", spec.License, spec.License == ""},
		{"authors", spec.Authors, len(spec.Authors) == 0},
		{"source", spec.Source, len(spec.Source) == 0},
	}
	for _, f := range fields {
		if f.skip {
			continue
		}
		if err := set(f.path, f.value); err != nil {
			return nil, err
		}
	}

	for _, dep := range spec.Dependencies {
		reqs := dep.Requirements
		if reqs == nil {
			reqs = []string{}
		}
		if err := set("dependencies."+escapePath(dep.Name), reqs); err != nil {
			return nil, err
		}
	}
	if len(spec.Subspecs) > 0 {
		subspecs := make([]map[string]string, len(spec.Subspecs))
		for i, sub := range spec.Subspecs {
			subspecs[i] = map[string]string{"name": sub}
		}
		if err := set("subspecs", subspecs); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// escapePath escapes the characters sjson treats as path syntax.
func escapePath(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%', ':':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
