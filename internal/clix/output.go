package clix

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/podsrc/internal/printer"
	"github.com/pelletier/go-toml/v2"
)

// OutputFormat controls how command results are displayed.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatTOML  OutputFormat = "toml"
	FormatTable OutputFormat = "table"
)

// OutputFormats lists the accepted --format values.
var OutputFormats = []OutputFormat{FormatText, FormatJSON, FormatYAML, FormatTOML, FormatTable}

// ParseOutputFormat converts a string to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatTOML, FormatTable:
		return f, nil
	default:
		names := make([]string, len(OutputFormats))
		for i, f := range OutputFormats {
			names[i] = string(f)
		}
		return "", fmt.Errorf("unsupported format %q (use one of: %s)", s, strings.Join(names, ", "))
	}
}

// Document is a command result that can be rendered in every OutputFormat.
// Structured formats encode the value itself, so implementations carry json,
// yaml and toml struct tags.
type Document interface {
	Text() string
	Table() (headers []string, rows [][]string)
}

// Render writes doc to w in the given format.
func Render(w io.Writer, format OutputFormat, doc Document) error {
	var out string
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		out = string(data) + "\n"
	case FormatYAML:
		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		out = string(data)
	case FormatTOML:
		data, err := toml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
		out = string(data)
	case FormatTable:
		headers, rows := doc.Table()
		out = printer.Table(headers, rows) + "\n"
	default:
		out = doc.Text()
	}

	_, err := io.WriteString(w, out)
	return err
}

// FormatFlagUsage is the usage string shared by --format flags.
const FormatFlagUsage = "Output format: text, json, yaml, toml, table"
