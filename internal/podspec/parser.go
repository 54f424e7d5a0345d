package podspec

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/podsrc/internal/core"
	"github.com/indaco/podsrc/internal/semver"
	"github.com/tidwall/gjson"
)

// Reader parses specification files from a filesystem.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Parse reads the file at path and returns its descriptor. The encoding is
// chosen from the file extension.
func (r *Reader) Parse(ctx context.Context, path string) (*Spec, error) {
	if path == "" {
		return nil, fmt.Errorf("file path is required")
	}

	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	spec, err := ParseBytes(data, format)
	if err != nil {
		return nil, fmt.Errorf("in file %q: %w", path, err)
	}
	spec.DefinedInFile = path
	return spec, nil
}

// ParseBytes parses an in-memory specification in the given format.
func ParseBytes(data []byte, format Format) (*Spec, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	case FormatRuby:
		return parseRuby(data)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// parseYAML converts YAML to JSON and reuses the JSON extraction.
func parseYAML(data []byte) (*Spec, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	spec, err := parseJSON(jsonData)
	if err != nil {
		return nil, err
	}
	spec.Format = FormatYAML
	return spec, nil
}

func parseJSON(data []byte) (*Spec, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("failed to parse JSON: invalid document")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("specification must be an object")
	}

	name := doc.Get("name")
	if name.Type != gjson.String || name.String() == "" {
		return nil, fmt.Errorf("field %q is required and must be a string", "name")
	}

	version, err := parseJSONVersion(doc.Get("version"))
	if err != nil {
		return nil, err
	}

	spec := &Spec{
		Name:        name.String(),
		Version:     version,
		Format:      FormatJSON,
		Summary:     doc.Get("summary").String(),
		Description: doc.Get("description").String(),
		Homepage:    doc.Get("homepage").String(),
		License:     jsonLicense(doc.Get("license")),
		Authors:     jsonAuthors(doc.Get("authors"), doc.Get("author")),
		Source:      jsonSource(doc.Get("source")),
	}

	doc.Get("dependencies").ForEach(func(key, value gjson.Result) bool {
		dep := Dependency{Name: key.String()}
		for _, req := range value.Array() {
			dep.Requirements = append(dep.Requirements, req.String())
		}
		spec.Dependencies = append(spec.Dependencies, dep)
		return true
	})
	slices.SortFunc(spec.Dependencies, func(a, b Dependency) int {
		return strings.Compare(a.Name, b.Name)
	})

	for _, sub := range doc.Get("subspecs").Array() {
		if n := sub.Get("name").String(); n != "" {
			spec.Subspecs = append(spec.Subspecs, n)
		}
	}

	return spec, nil
}

// parseJSONVersion accepts string versions and bare numbers, which YAML
// documents produce for values like `version: 1.0`.
func parseJSONVersion(value gjson.Result) (semver.Version, error) {
	var raw string
	switch value.Type {
	case gjson.String:
		raw = value.String()
	case gjson.Number:
		raw = value.Raw
	default:
		return semver.Version{}, fmt.Errorf("field %q is required and must be a string", "version")
	}

	v, err := semver.ParseVersion(raw)
	if err != nil {
		return semver.Version{}, fmt.Errorf("field %q: %w", "version", err)
	}
	return v, nil
}

func jsonLicense(value gjson.Result) string {
	if value.IsObject() {
		return value.Get("type").String()
	}
	return value.String()
}

func jsonAuthors(values ...gjson.Result) []string {
	var authors []string
	for _, value := range values {
		switch {
		case value.IsObject():
			value.ForEach(func(key, _ gjson.Result) bool {
				authors = append(authors, key.String())
				return true
			})
		case value.IsArray():
			for _, a := range value.Array() {
				authors = append(authors, a.String())
			}
		case value.Type == gjson.String:
			authors = append(authors, value.String())
		}
	}
	slices.Sort(authors)
	return slices.Compact(authors)
}

func jsonSource(value gjson.Result) map[string]string {
	if !value.IsObject() {
		return nil
	}
	source := make(map[string]string)
	value.ForEach(func(key, v gjson.Result) bool {
		if v.Type == gjson.String || v.Type == gjson.Number {
			source[key.String()] = v.String()
		}
		return true
	})
	return source
}
