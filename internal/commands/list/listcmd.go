package list

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/indaco/podsrc/internal/clix"
	"github.com/indaco/podsrc/internal/config"
	"github.com/indaco/podsrc/internal/printer"
	"github.com/indaco/podsrc/internal/source"
	"github.com/urfave/cli/v3"
)

// Run returns the "list" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "List the pods provided by a source",
		UsageText: "podsrc list [--format text|json|yaml|toml|table]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   clix.FormatFlagUsage,
				Value:   string(clix.FormatText),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runListCmd(ctx, cmd, cfg)
		},
	}
}

func runListCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	format, err := clix.ParseOutputFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	sess, err := clix.Open(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	doc, err := BuildListing(ctx, sess.Source)
	if err != nil {
		return err
	}
	return clix.Render(os.Stdout, format, doc)
}

// Entry describes one pod of a listing.
type Entry struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Latest   string   `json:"latest" yaml:"latest" toml:"latest"`
	Versions []string `json:"versions" yaml:"versions" toml:"versions"`
}

// Listing is the result of the list command.
type Listing struct {
	Source string  `json:"source" yaml:"source" toml:"source"`
	Pods   []Entry `json:"pods" yaml:"pods" toml:"pods"`
}

// BuildListing collects every pod of src with its versions, highest first.
func BuildListing(ctx context.Context, src source.Source) (*Listing, error) {
	names, err := src.PodNames(ctx)
	if err != nil {
		return nil, err
	}

	listing := &Listing{Source: src.Name(), Pods: make([]Entry, 0, len(names))}
	for _, name := range names {
		entry, err := NewEntry(ctx, src, name)
		if err != nil {
			return nil, err
		}
		listing.Pods = append(listing.Pods, entry)
	}
	return listing, nil
}

// NewEntry builds the listing entry for one pod.
func NewEntry(ctx context.Context, src source.Source, name string) (Entry, error) {
	versions, _, err := src.Versions(ctx, name)
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{Name: name, Versions: make([]string, len(versions))}
	for i, v := range versions {
		entry.Versions[i] = v.String()
	}
	if len(entry.Versions) > 0 {
		entry.Latest = entry.Versions[0]
	}
	return entry, nil
}

// Text renders one pod per line with its latest version.
func (l *Listing) Text() string {
	if len(l.Pods) == 0 {
		return printer.Faint(fmt.Sprintf("No pods found in the %s source", l.Source)) + "\n"
	}

	var sb strings.Builder
	for _, p := range l.Pods {
		fmt.Fprintf(&sb, "%s %s\n", p.Name, printer.Faint(p.Latest))
	}
	fmt.Fprintf(&sb, "\n%s\n", printer.Faint(fmt.Sprintf("%d pod(s) in the %s source", len(l.Pods), l.Source)))
	return sb.String()
}

// Table renders a NAME / LATEST / VERSIONS table.
func (l *Listing) Table() ([]string, [][]string) {
	rows := make([][]string, 0, len(l.Pods))
	for _, p := range l.Pods {
		rows = append(rows, []string{p.Name, p.Latest, strconv.Itoa(len(p.Versions))})
	}
	return []string{"NAME", "LATEST", "VERSIONS"}, rows
}
