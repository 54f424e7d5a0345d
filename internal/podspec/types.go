package podspec

import (
	"fmt"
	"strings"

	"github.com/indaco/podsrc/internal/semver"
)

// Format identifies the encoding of a specification file.
type Format string

const (
	// FormatRuby is the plain DSL encoding (Foo.podspec).
	FormatRuby Format = "ruby"

	// FormatJSON is the serialized JSON encoding (Foo.podspec.json).
	FormatJSON Format = "json"

	// FormatYAML is the serialized YAML encoding (Foo.podspec.yaml).
	FormatYAML Format = "yaml"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatRuby, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// DetectFormat selects the encoding of a specification file from its name.
func DetectFormat(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".podspec"):
		return FormatRuby, nil
	case strings.HasSuffix(lower, ".podspec.json"):
		return FormatJSON, nil
	case strings.HasSuffix(lower, ".podspec.yaml"), strings.HasSuffix(lower, ".podspec.yml"):
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported specification file %q", path)
	}
}

// Spec is the parsed descriptor of one specification file.
type Spec struct {
	// Name is the pod name.
	Name string

	// Version is the pod version declared by the file.
	Version semver.Version

	// DefinedInFile is the path of the file the spec was read from.
	DefinedInFile string

	// Format is the encoding the file was parsed with.
	Format Format

	Summary     string
	Description string
	Homepage    string
	License     string

	// Authors holds author names, sorted.
	Authors []string

	// Source holds the literal download attributes (git, tag, http, ...).
	Source map[string]string

	// Dependencies lists the root-level dependencies.
	Dependencies []Dependency

	// Subspecs lists the names of declared subspecs.
	Subspecs []string
}

// RootName returns the pod name without any subspec path.
func (s *Spec) RootName() string {
	return rootName(s.Name)
}

// String returns "Name (Version)".
func (s *Spec) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.Version)
}

func rootName(name string) string {
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return name[:i]
	}
	return name
}
