package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/indaco/podsrc/internal/clix"
	"github.com/indaco/podsrc/internal/config"
	"github.com/indaco/podsrc/internal/console"
	"github.com/indaco/podsrc/internal/core"
	"github.com/indaco/podsrc/internal/printer"
	"github.com/indaco/podsrc/internal/source"
	"github.com/urfave/cli/v3"
)

// Run returns the "doctor" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "doctor",
		Usage:     "Validate the configuration and report unparsable specifications",
		UsageText: "podsrc doctor",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctorCmd(ctx, cmd, cfg)
		},
	}
}

func runDoctorCmd(ctx context.Context, cmd *cli.Command, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}

	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := ""
	if _, err := os.Stat(config.FileName); err == nil {
		configPath = filepath.Join(rootDir, config.FileName)
	}

	fs := core.NewOSFileSystem()
	results, err := config.NewValidator(fs, cfg, configPath, rootDir).Validate(ctx)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sources := cfg.Sources
	if cmd.String("source") != "" || cmd.String("path") != "" {
		sc, err := clix.ResolveSource(cmd, cfg)
		if err != nil {
			return err
		}
		sources = []config.SourceConfig{sc}
	}
	for _, sc := range sources {
		results = append(results, checkSource(ctx, cfg, sc)...)
	}

	printResults(results)

	if n := config.ErrorCount(results); n > 0 {
		return fmt.Errorf("doctor found %d error(s)", n)
	}
	return nil
}

// checkSource scans one source and reports its size and skipped files.
func checkSource(ctx context.Context, cfg *config.Config, sc config.SourceConfig) []config.ValidationResult {
	category := fmt.Sprintf("Scan '%s'", sc.Name)
	src := clix.NewSource(cfg, sc, source.WithReporter(&console.Collector{}))

	specs, err := src.AllSpecs(ctx)
	if err != nil {
		return []config.ValidationResult{{Category: category, Message: err.Error()}}
	}
	names, err := src.PodNames(ctx)
	if err != nil {
		return []config.ValidationResult{{Category: category, Message: err.Error()}}
	}

	results := []config.ValidationResult{{
		Category: category,
		Passed:   true,
		Message:  fmt.Sprintf("%d specification(s) for %d pod(s) in %s", len(specs), len(names), sc.Path),
	}}

	skipped, err := src.Skipped(ctx)
	if err != nil {
		return append(results, config.ValidationResult{Category: category, Message: err.Error()})
	}
	for _, w := range skipped {
		results = append(results, config.ValidationResult{
			Category: category,
			Passed:   true,
			Warning:  true,
			Message:  fmt.Sprintf("%s (%v)", w.String(), w.Err),
		})
	}
	return results
}

func printResults(results []config.ValidationResult) {
	for _, r := range results {
		var status string
		switch {
		case r.Warning:
			status = printer.Warning("!")
		case r.Passed:
			status = printer.Success("✓")
		default:
			status = printer.Error("✗")
		}
		fmt.Printf("%s %s %s\n", status, printer.Bold(r.Category+":"), r.Message)
	}

	errors := config.ErrorCount(results)
	warnings := config.WarningCount(results)
	fmt.Println(printer.Rule(50))
	summary := fmt.Sprintf("%d check(s), %d error(s), %d warning(s)", len(results), errors, warnings)
	switch {
	case errors > 0:
		printer.PrintError(summary)
	case warnings > 0:
		printer.PrintWarning(summary)
	default:
		printer.PrintSuccess(summary)
	}
}
