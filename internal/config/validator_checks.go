package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/indaco/podsrc/internal/tui"
)

// validateYAMLSyntax re-reads the config file and decodes it strictly.
func (v *Validator) validateYAMLSyntax(ctx context.Context) {
	if v.configPath == "" {
		v.addValidation("YAML Syntax", true, "No "+FileName+" file found, using defaults", false)
		return
	}

	data, err := v.fs.ReadFile(ctx, v.configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			v.addValidation("YAML Syntax", true, "No "+FileName+" file found, using defaults", false)
		} else {
			v.addValidation("YAML Syntax", false, fmt.Sprintf("Failed to access config file: %v", err), false)
		}
		return
	}

	if _, err := Parse(data); err != nil {
		v.addValidation("YAML Syntax", false, fmt.Sprintf("Invalid configuration: %v", err), false)
		return
	}
	v.addValidation("YAML Syntax", true, "Configuration file is valid YAML", false)
}

// validateSources checks names are present and unique and that every source
// root is an existing directory.
func (v *Validator) validateSources(ctx context.Context) {
	if v.cfg == nil || len(v.cfg.Sources) == 0 {
		v.addValidation("Sources", true, "No sources configured, using the working directory", false)
		return
	}

	seen := make(map[string]bool)
	for i, src := range v.cfg.Sources {
		label := fmt.Sprintf("Source %d", i+1)
		if src.Name != "" {
			label = fmt.Sprintf("Source '%s'", src.Name)
		}

		switch {
		case strings.TrimSpace(src.Name) == "":
			v.addValidation("Sources", false, label+": name is required", false)
			continue
		case seen[src.Name]:
			v.addValidation("Sources", false, label+": duplicate name", false)
			continue
		}
		seen[src.Name] = true

		if src.Path == "" {
			v.addValidation("Sources", false, label+": path is required", false)
			continue
		}

		root := src.Path
		if !filepath.IsAbs(root) {
			root = filepath.Join(v.rootDir, root)
		}
		info, err := v.fs.Stat(ctx, root)
		switch {
		case err != nil:
			v.addValidation("Sources", false, fmt.Sprintf("%s: path '%s' does not exist", label, src.Path), false)
		case !info.IsDir():
			v.addValidation("Sources", false, fmt.Sprintf("%s: path '%s' is not a directory", label, src.Path), false)
		default:
			v.addValidation("Sources", true, fmt.Sprintf("%s: path '%s' is valid", label, src.Path), false)
		}
	}
}

// validateDiscovery checks every glob compiles.
func (v *Validator) validateDiscovery() {
	if v.cfg == nil || v.cfg.Discovery == nil {
		return
	}

	valid := true
	for i, pattern := range v.cfg.Discovery.Patterns {
		if !doublestar.ValidatePattern(pattern) {
			valid = false
			v.addValidation("Discovery", false,
				fmt.Sprintf("Pattern %d: '%s' is not a valid glob", i+1, pattern), false)
		}
	}
	for i, pattern := range v.cfg.Discovery.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			valid = false
			v.addValidation("Discovery", false,
				fmt.Sprintf("Exclude pattern %d: '%s' is not a valid glob", i+1, pattern), false)
			continue
		}
		if strings.Contains(pattern, "**/**/**") {
			v.addValidation("Discovery", true,
				fmt.Sprintf("Exclude pattern %d: '%s' may be overly broad", i+1, pattern), true)
		}
	}

	if valid {
		v.addValidation("Discovery", true,
			fmt.Sprintf("Discovery configured with %d pattern(s) and %d exclude pattern(s)",
				len(v.cfg.Discovery.Patterns), len(v.cfg.Discovery.Exclude)), false)
	}
}

// validateTheme warns about unknown theme names; they fall back to the default.
func (v *Validator) validateTheme() {
	if v.cfg == nil || v.cfg.Theme == "" {
		return
	}
	if !tui.IsValidTheme(v.cfg.Theme) {
		v.addValidation("Theme", true,
			fmt.Sprintf("Unknown theme '%s', falling back to '%s' (valid: %s)",
				v.cfg.Theme, tui.DefaultTheme, strings.Join(tui.ValidThemes, ", ")), true)
		return
	}
	v.addValidation("Theme", true, fmt.Sprintf("Theme '%s' is valid", v.cfg.Theme), false)
}
