package source

import (
	"context"

	"github.com/indaco/podsrc/internal/podspec"
	"github.com/indaco/podsrc/internal/semver"
)

// Source is the query contract shared by every kind of pod source.
type Source interface {
	Name() string
	URL() string
	Type() string

	PodNames(ctx context.Context) ([]string, error)
	Versions(ctx context.Context, name string) ([]semver.Version, bool, error)
	SpecificationPath(ctx context.Context, name, version string) (string, error)
	Specification(ctx context.Context, name, version string) (*podspec.Spec, error)
	Search(ctx context.Context, query Query) (*Set, error)
	SearchByName(ctx context.Context, pattern string, fullText bool) ([]*Set, error)

	Update(ctx context.Context, showOutput bool) ([]string, error)
	PodsForSpecificationPaths(paths []string) []string
	VerifyCompatibility() error

	Updatable() bool
	Git() bool
	Local() bool
	Indexable() bool
}

// Parser turns a specification file into a descriptor.
type Parser interface {
	Parse(ctx context.Context, path string) (*podspec.Spec, error)
}

// Reporter receives non-fatal warnings such as skipped files.
type Reporter interface {
	Warn(message string)
}

// Query selects the pod a search looks for. Build one with ByName or
// ByDependency.
type Query struct {
	name       string
	dependency *podspec.Dependency
}

// ByName queries for a pod by its name.
func ByName(name string) Query {
	return Query{name: name}
}

// ByDependency queries for the root pod of a dependency.
func ByDependency(dep podspec.Dependency) Query {
	return Query{dependency: &dep}
}

// PodName returns the pod name the query resolves to.
func (q Query) PodName() string {
	if q.dependency != nil {
		return q.dependency.RootName()
	}
	return q.name
}

// String describes the query.
func (q Query) String() string {
	if q.dependency != nil {
		return q.dependency.String()
	}
	return q.name
}
