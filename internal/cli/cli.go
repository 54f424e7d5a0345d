package cli

import (
	"context"
	"fmt"

	"github.com/indaco/podsrc/internal/commands/doctor"
	"github.com/indaco/podsrc/internal/commands/initialize"
	"github.com/indaco/podsrc/internal/commands/list"
	"github.com/indaco/podsrc/internal/commands/search"
	"github.com/indaco/podsrc/internal/commands/show"
	"github.com/indaco/podsrc/internal/commands/specpath"
	"github.com/indaco/podsrc/internal/commands/versions"
	"github.com/indaco/podsrc/internal/config"
	"github.com/indaco/podsrc/internal/console"
	"github.com/indaco/podsrc/internal/printer"
	"github.com/indaco/podsrc/internal/tui"
	"github.com/indaco/podsrc/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the podsrc cli.
func New(cfg *config.Config) *urfavecli.Command {
	if cfg == nil {
		cfg = config.Default()
	}

	var noColor bool
	return &urfavecli.Command{
		Name:                  "podsrc",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Query pod specifications stored in local directories",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        "source",
				Aliases:     []string{"s"},
				Usage:       "Name of the configured source to query",
				DefaultText: "first configured source",
			},
			&urfavecli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Root directory of the source, overriding the configuration",
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColor,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			disabled := noColor || console.NoColorFromEnv()
			console.SetNoColor(disabled)
			printer.SetNoColor(disabled)
			tui.SetTheme(cfg.GetTheme())
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			initialize.Run(),
			list.Run(cfg),
			versions.Run(cfg),
			specpath.Run(cfg),
			search.Run(cfg),
			show.Run(cfg),
			doctor.Run(cfg),
		},
	}
}
