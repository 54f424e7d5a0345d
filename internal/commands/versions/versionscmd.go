package versions

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/indaco/podsrc/internal/clix"
	"github.com/indaco/podsrc/internal/config"
	"github.com/urfave/cli/v3"
)

// Run returns the "versions" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "versions",
		Usage:     "List the versions of a pod, highest first",
		UsageText: "podsrc versions NAME [--format text|json|yaml|toml|table]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   clix.FormatFlagUsage,
				Value:   string(clix.FormatText),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runVersionsCmd(ctx, cmd, cfg)
		},
	}
}

func runVersionsCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("missing pod name")
	}

	format, err := clix.ParseOutputFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	sess, err := clix.Open(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	versions, found, err := sess.Source.Versions(ctx, name)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("pod %q not found in the %s source", name, sess.Source.Name())
	}

	doc := &Result{Name: name, Source: sess.Source.Name(), Versions: make([]string, len(versions))}
	for i, v := range versions {
		doc.Versions[i] = v.String()
	}
	return clix.Render(os.Stdout, format, doc)
}

// Result is the output of the versions command.
type Result struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Source   string   `json:"source" yaml:"source" toml:"source"`
	Versions []string `json:"versions" yaml:"versions" toml:"versions"`
}

// Text renders one version per line.
func (r *Result) Text() string {
	return strings.Join(r.Versions, "\n") + "\n"
}

// Table renders a single VERSION column.
func (r *Result) Table() ([]string, [][]string) {
	rows := make([][]string, len(r.Versions))
	for i, v := range r.Versions {
		rows[i] = []string{v}
	}
	return []string{"VERSION"}, rows
}
