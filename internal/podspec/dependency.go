package podspec

import (
	"fmt"
	"regexp"
	"strings"
)

// Dependency is a requirement on another pod, optionally on one of its subspecs.
type Dependency struct {
	// Name is the pod name, possibly including a subspec path ("Firebase/Core").
	Name string

	// Requirements are version constraints such as "~> 1.0" or ">= 2".
	Requirements []string
}

var dependencyRegex = regexp.MustCompile(`^([^\s()]+)(?:\s*\(([^()]*)\))?$`)

// ParseDependency parses the textual form "Name" or "Name (req, req)".
func ParseDependency(s string) (Dependency, error) {
	matches := dependencyRegex.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return Dependency{}, fmt.Errorf("invalid dependency %q", s)
	}

	dep := Dependency{Name: matches[1]}
	for _, req := range strings.Split(matches[2], ",") {
		if req = strings.TrimSpace(req); req != "" {
			dep.Requirements = append(dep.Requirements, req)
		}
	}
	return dep, nil
}

// RootName returns the name of the pod the dependency belongs to,
// stripping any subspec path.
func (d Dependency) RootName() string {
	return rootName(d.Name)
}

// String renders the dependency in the form accepted by ParseDependency.
func (d Dependency) String() string {
	if len(d.Requirements) == 0 {
		return d.Name
	}
	return fmt.Sprintf("%s (%s)", d.Name, strings.Join(d.Requirements, ", "))
}
