package podspec

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/indaco/podsrc/internal/semver"
)

var (
	// specBlockRegex finds the block variable of `Pod::Spec.new do |s|`.
	specBlockRegex = regexp.MustCompile(`Pod::Spec(?:ification)?\.new\s*(?:\([^)]*\)\s*)?(?:do|\{)\s*\|\s*(\w+)\s*\|`)

	quotedRegex    = regexp.MustCompile(`'([^']*)'|"([^"]*)"`)
	hashPairRegex  = regexp.MustCompile(`(?::(\w+)\s*=>|(\w+):)\s*('[^']*'|"[^"]*"|[\w.]+)`)
	hashKeysRegex  = regexp.MustCompile(`('[^']*'|"[^"]*")\s*=>`)
	commentLineRex = regexp.MustCompile(`(?m)^\s*#.*$`)
)

// rubyAttributes builds attribute patterns for the spec block variable.
type rubyAttributes struct {
	v string
}

func (a rubyAttributes) assignment(attr string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(a.v) + `\.` + attr +
		`\s*=\s*('[^'\n]*'|"[^"\n]*")(?:\.freeze)?\s*(?:#.*)?$`)
}

func (a rubyAttributes) rawAssignment(attr string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(a.v) + `\.` + attr + `\s*=\s*(.+)$`)
}

func (a rubyAttributes) call(method string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(a.v) + `\.` + method + `\b\s*\(?\s*(.+?)\)?\s*(?:do\b.*)?$`)
}

// parseRuby extracts a Spec from the plain DSL without evaluating it.
// Only literal values are understood; a name or version computed at runtime
// is reported as an error.
func parseRuby(data []byte) (*Spec, error) {
	src := commentLineRex.ReplaceAllString(string(data), "")

	m := specBlockRegex.FindStringSubmatch(src)
	if m == nil {
		return nil, fmt.Errorf("no Pod::Spec.new block found")
	}
	attrs := rubyAttributes{v: m[1]}

	name, err := rubyLiteral(attrs, src, "name")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("attribute %q is required", "name")
	}

	rawVersion, err := rubyLiteral(attrs, src, "version")
	if err != nil {
		return nil, err
	}
	if rawVersion == "" {
		return nil, fmt.Errorf("attribute %q is required", "version")
	}
	version, err := semver.ParseVersion(rawVersion)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", "version", err)
	}

	spec := &Spec{
		Name:    name,
		Version: version,
		Format:  FormatRuby,
	}
	spec.Summary, _ = rubyLiteral(attrs, src, "summary")
	spec.Description, _ = rubyLiteral(attrs, src, "description")
	spec.Homepage, _ = rubyLiteral(attrs, src, "homepage")
	spec.License = rubyLicense(attrs, src)
	spec.Authors = rubyAuthors(attrs, src)
	spec.Source = rubySource(attrs, src, version.String())
	spec.Dependencies = rubyDependencies(attrs, src)
	spec.Subspecs = rubySubspecs(attrs, src)

	return spec, nil
}

// rubyLiteral returns the string literal assigned to attr, "" when the
// attribute is absent, or an error when it is assigned something that is not
// a plain literal.
func rubyLiteral(attrs rubyAttributes, src, attr string) (string, error) {
	if m := attrs.assignment(attr).FindStringSubmatch(src); m != nil {
		value := unquote(m[1])
		if strings.HasPrefix(m[1], `"`) && strings.Contains(value, "#{") {
			return "", fmt.Errorf("attribute %q uses string interpolation", attr)
		}
		return value, nil
	}
	if attrs.rawAssignment(attr).MatchString(src) {
		return "", fmt.Errorf("attribute %q is not a string literal", attr)
	}
	return "", nil
}

func rubyLicense(attrs rubyAttributes, src string) string {
	m := attrs.rawAssignment("license").FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	value := strings.TrimSpace(m[1])
	if !strings.HasPrefix(value, "{") {
		return firstQuoted(value)
	}
	for _, pair := range hashPairRegex.FindAllStringSubmatch(value, -1) {
		if key(pair) == "type" {
			return unquote(pair[3])
		}
	}
	return ""
}

func rubyAuthors(attrs rubyAttributes, src string) []string {
	var authors []string
	for _, attr := range []string{"authors", "author"} {
		m := attrs.rawAssignment(attr).FindStringSubmatch(src)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		if strings.HasPrefix(value, "{") {
			for _, k := range hashKeysRegex.FindAllStringSubmatch(value, -1) {
				authors = append(authors, unquote(k[1]))
			}
			continue
		}
		for _, q := range quotedRegex.FindAllString(value, -1) {
			authors = append(authors, unquote(q))
		}
	}
	slices.Sort(authors)
	return slices.Compact(authors)
}

// rubySource reads `s.source = { :git => '...', :tag => s.version.to_s }`.
// References to the block's own version resolve to the declared version.
func rubySource(attrs rubyAttributes, src, version string) map[string]string {
	m := attrs.rawAssignment("source").FindStringSubmatch(src)
	if m == nil {
		return nil
	}
	source := make(map[string]string)
	selfVersion := attrs.v + ".version"
	for _, pair := range hashPairRegex.FindAllStringSubmatch(m[1], -1) {
		value := pair[3]
		switch {
		case strings.HasPrefix(value, "'"), strings.HasPrefix(value, `"`):
			source[key(pair)] = unquote(value)
		case value == selfVersion || value == selfVersion+".to_s":
			source[key(pair)] = version
		}
	}
	if len(source) == 0 {
		return nil
	}
	return source
}

func rubyDependencies(attrs rubyAttributes, src string) []Dependency {
	var deps []Dependency
	for _, m := range attrs.call("dependency").FindAllStringSubmatch(src, -1) {
		quoted := quotedRegex.FindAllString(m[1], -1)
		if len(quoted) == 0 {
			continue
		}
		dep := Dependency{Name: unquote(quoted[0])}
		for _, q := range quoted[1:] {
			dep.Requirements = append(dep.Requirements, unquote(q))
		}
		deps = append(deps, dep)
	}
	slices.SortStableFunc(deps, func(a, b Dependency) int {
		return strings.Compare(a.Name, b.Name)
	})
	return deps
}

func rubySubspecs(attrs rubyAttributes, src string) []string {
	var names []string
	for _, m := range attrs.call("subspec").FindAllStringSubmatch(src, -1) {
		if n := firstQuoted(m[1]); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func key(pair []string) string {
	if pair[1] != "" {
		return pair[1]
	}
	return pair[2]
}

func firstQuoted(s string) string {
	if q := quotedRegex.FindString(s); q != "" {
		return unquote(q)
	}
	return ""
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
