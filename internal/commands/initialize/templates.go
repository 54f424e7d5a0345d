package initialize

import (
	"fmt"
	"slices"
	"strings"
)

// Template is a pre-configured set of discovery patterns for a specs layout.
type Template struct {
	Name        string
	Description string
	Patterns    []string
}

// AllTemplates returns all available templates.
func AllTemplates() []Template {
	return []Template{
		{
			Name:        "specs",
			Description: "Ruby and JSON podspecs, the usual specs repository layout",
			Patterns:    []string{"**/*.podspec", "**/*.podspec.json"},
		},
		{
			Name:        "json",
			Description: "JSON podspecs only",
			Patterns:    []string{"**/*.podspec.json"},
		},
		{
			Name:        "all",
			Description: "Every supported format, including YAML podspecs",
			Patterns:    []string{"**/*.podspec", "**/*.podspec.json", "**/*.podspec.yaml", "**/*.podspec.yml"},
		},
	}
}

// TemplateNames returns the names of all available templates.
func TemplateNames() []string {
	templates := AllTemplates()
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}

// GetTemplate returns the template with the given name, or an error if not found.
func GetTemplate(name string) (*Template, error) {
	for _, t := range AllTemplates() {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(TemplateNames(), ", "))
}

// IsValidTemplate checks if the given name is a valid template.
func IsValidTemplate(name string) bool {
	return slices.Contains(TemplateNames(), name)
}
