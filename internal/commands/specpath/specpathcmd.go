package specpath

import (
	"context"
	"fmt"

	"github.com/indaco/podsrc/internal/clix"
	"github.com/indaco/podsrc/internal/config"
	"github.com/indaco/podsrc/internal/source"
	"github.com/indaco/podsrc/internal/tui"
	"github.com/urfave/cli/v3"
)

// Overridable in tests.
var (
	isInteractiveFn = tui.IsInteractive
	selectFn        = tui.Select
)

// Run returns the "path" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "Print the file that defines a pod version",
		UsageText: `podsrc path NAME [VERSION]

Without VERSION the highest version is used, or picked interactively when
running in a terminal and several versions exist.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runPathCmd(ctx, cmd, cfg)
		},
	}
}

func runPathCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	name := cmd.Args().Get(0)
	if name == "" {
		return fmt.Errorf("missing pod name")
	}

	sess, err := clix.Open(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	version := cmd.Args().Get(1)
	if version == "" {
		version, err = chooseVersion(ctx, sess.Source, name)
		if err != nil {
			return err
		}
	}

	path, err := sess.Source.SpecificationPath(ctx, name, version)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// chooseVersion returns the version to resolve when none was given.
func chooseVersion(ctx context.Context, src source.Source, name string) (string, error) {
	set, err := src.Search(ctx, source.ByName(name))
	if err != nil {
		return "", err
	}
	if set == nil {
		return "", fmt.Errorf("pod %q not found in the %s source", name, src.Name())
	}

	versions, err := set.Versions(ctx)
	if err != nil {
		return "", err
	}
	if len(versions) > 1 && isInteractiveFn() {
		choices := make([]string, len(versions))
		for i, v := range versions {
			choices[i] = v.String()
		}
		return selectFn(fmt.Sprintf("Select a version of %s", name), choices)
	}

	highest, err := set.HighestVersion(ctx)
	if err != nil {
		return "", err
	}
	return highest.String(), nil
}
