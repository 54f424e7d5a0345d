package initialize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/indaco/podsrc/internal/config"
	"github.com/indaco/podsrc/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "init" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create a " + config.FileName + " file",
		UsageText: "podsrc init [DIR] [--template specs|json|all] [--force]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "Discovery template: specs, json, all",
				Value:   "specs",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing " + config.FileName,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInitCmd(cmd)
		},
	}
}

func runInitCmd(cmd *cli.Command) error {
	tpl, err := GetTemplate(cmd.String("template"))
	if err != nil {
		return err
	}

	sourcePath := cmd.Args().First()
	if sourcePath == "" {
		sourcePath = "."
	}
	if info, err := os.Stat(sourcePath); err != nil || !info.IsDir() {
		printer.PrintWarning(fmt.Sprintf("%s is not a directory yet; create it before running other commands", sourcePath))
	}

	if _, err := os.Stat(config.FileName); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
	}

	saver := config.NewConfigSaver(commentedMarshaler{}, nil, nil)
	if err := saver.SaveTo(NewConfig(filepath.ToSlash(sourcePath), tpl), config.FileName); err != nil {
		return err
	}

	printer.PrintSuccess(fmt.Sprintf("Created %s with the %q template", config.FileName, tpl.Name))
	return nil
}
