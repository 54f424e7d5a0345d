package clix

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/indaco/podsrc/internal/config"
	"github.com/indaco/podsrc/internal/console"
	"github.com/indaco/podsrc/internal/source"
	"github.com/indaco/podsrc/internal/tui"
	"github.com/urfave/cli/v3"
)

// Session is a scanned source ready to answer queries.
type Session struct {
	Source *source.LocalSource
}

// ResolveSource picks the source selected by the global --source and --path
// flags. --path overrides the configured root of the selected source.
func ResolveSource(cmd *cli.Command, cfg *config.Config) (config.SourceConfig, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	name := cmd.String("source")
	path := cmd.String("path")

	sc, ok := cfg.FindSource(name)
	if !ok {
		if path == "" {
			return config.SourceConfig{}, fmt.Errorf("unknown source %q (configured: %s)",
				name, strings.Join(cfg.SourceNames(), ", "))
		}
		sc = config.SourceConfig{Name: name}
		if sc.Name == "" {
			sc.Name = config.DefaultSourceName
		}
	}
	if path != "" {
		sc.Path = path
	}
	return sc, nil
}

// NewSource builds a LocalSource for sc using the discovery settings in cfg.
func NewSource(cfg *config.Config, sc config.SourceConfig, opts ...source.Option) *source.LocalSource {
	if cfg == nil {
		cfg = config.Default()
	}
	base := []source.Option{
		source.WithPatterns(cfg.Patterns()),
		source.WithExcludes(cfg.Excludes()),
	}
	return source.NewLocalSource(sc.Name, sc.Path, append(base, opts...)...)
}

// Open resolves the selected source and scans it, showing a spinner on
// interactive terminals. Skipped-file warnings are printed to stderr once
// the scan has finished.
func Open(ctx context.Context, cmd *cli.Command, cfg *config.Config) (*Session, error) {
	sc, err := ResolveSource(cmd, cfg)
	if err != nil {
		return nil, err
	}

	warnings := &console.Collector{}
	src := NewSource(cfg, sc, source.WithReporter(warnings))

	err = tui.RunWithSpinner(ctx, fmt.Sprintf("Scanning %s source...", sc.Name), func(ctx context.Context) error {
		_, err := src.PodNames(ctx)
		return err
	})

	reporter := console.NewReporter(os.Stderr)
	for _, msg := range warnings.Messages() {
		reporter.Warn(msg)
	}
	if err != nil {
		return nil, err
	}
	return &Session{Source: src}, nil
}
