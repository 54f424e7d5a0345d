package search

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/indaco/podsrc/internal/clix"
	"github.com/indaco/podsrc/internal/commands/list"
	"github.com/indaco/podsrc/internal/config"
	"github.com/indaco/podsrc/internal/podspec"
	"github.com/indaco/podsrc/internal/printer"
	"github.com/indaco/podsrc/internal/source"
	"github.com/urfave/cli/v3"
)

// Run returns the "search" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Find pods by name, dependency or pattern",
		UsageText: `podsrc search QUERY [--regex] [--full-text]

QUERY is a pod name or a dependency such as "Firebase/Core (~> 10.0)";
subspecs resolve to their root pod. With --regex, QUERY is a
case-insensitive regular expression matched against pod names, and with
--full-text against summaries and descriptions as well.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "regex",
				Aliases: []string{"r"},
				Usage:   "Treat QUERY as a regular expression",
			},
			&cli.BoolFlag{
				Name:  "full-text",
				Usage: "Also match summaries and descriptions (implies --regex)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   clix.FormatFlagUsage,
				Value:   string(clix.FormatText),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSearchCmd(ctx, cmd, cfg)
		},
	}
}

func runSearchCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	query := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("missing search query")
	}

	format, err := clix.ParseOutputFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	sess, err := clix.Open(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	fullText := cmd.Bool("full-text")
	sets, err := Find(ctx, sess.Source, query, cmd.Bool("regex") || fullText, fullText)
	if err != nil {
		return err
	}

	doc := &Results{Query: query, Source: sess.Source.Name(), Pods: make([]list.Entry, 0, len(sets))}
	for _, set := range sets {
		entry, err := list.NewEntry(ctx, set.Source, set.Name)
		if err != nil {
			return err
		}
		doc.Pods = append(doc.Pods, entry)
	}
	return clix.Render(os.Stdout, format, doc)
}

// Find runs an exact or pattern search against src.
func Find(ctx context.Context, src source.Source, query string, regex, fullText bool) ([]*source.Set, error) {
	if regex {
		return src.SearchByName(ctx, query, fullText)
	}

	dep, err := podspec.ParseDependency(query)
	if err != nil {
		return nil, err
	}
	set, err := src.Search(ctx, source.ByDependency(dep))
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, nil
	}
	return []*source.Set{set}, nil
}

// Results is the output of the search command.
type Results struct {
	Query  string       `json:"query" yaml:"query" toml:"query"`
	Source string       `json:"source" yaml:"source" toml:"source"`
	Pods   []list.Entry `json:"pods" yaml:"pods" toml:"pods"`
}

// Text renders one match per line.
func (r *Results) Text() string {
	if len(r.Pods) == 0 {
		return printer.Warning(fmt.Sprintf("No pods found matching %q in the %s source", r.Query, r.Source)) + "\n"
	}

	var sb strings.Builder
	for _, p := range r.Pods {
		fmt.Fprintf(&sb, "%s %s %s\n", printer.Success("->"), printer.Bold(p.Name), printer.Faint("("+p.Latest+")"))
		fmt.Fprintf(&sb, "   %s\n", printer.Faint("Versions: "+strings.Join(p.Versions, ", ")))
	}
	return sb.String()
}

// Table renders NAME / LATEST / VERSIONS rows.
func (r *Results) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(r.Pods))
	for _, p := range r.Pods {
		rows = append(rows, []string{p.Name, p.Latest, strings.Join(p.Versions, ", ")})
	}
	return []string{"NAME", "LATEST", "VERSIONS"}, rows
}
