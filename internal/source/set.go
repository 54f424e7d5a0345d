package source

import (
	"context"

	"github.com/indaco/podsrc/internal/podspec"
	"github.com/indaco/podsrc/internal/semver"
)

// Set is the result of a successful search: a pod name bound to the source
// that provides it. Resolution uses it to fetch versions and specifications
// without searching again.
type Set struct {
	Name   string
	Source Source
}

// Versions returns the pod's versions, highest first.
func (s *Set) Versions(ctx context.Context) ([]semver.Version, error) {
	versions, _, err := s.Source.Versions(ctx, s.Name)
	return versions, err
}

// HighestVersion returns the greatest available version.
func (s *Set) HighestVersion(ctx context.Context) (semver.Version, error) {
	versions, err := s.Versions(ctx)
	if err != nil {
		return semver.Version{}, err
	}
	highest, ok := semver.Highest(versions)
	if !ok {
		return semver.Version{}, &SpecificationNotFoundError{Name: s.Name, Version: "any", Source: s.Source.Name()}
	}
	return highest, nil
}

// SpecificationPath returns the file defining version of the pod.
func (s *Set) SpecificationPath(ctx context.Context, version string) (string, error) {
	return s.Source.SpecificationPath(ctx, s.Name, version)
}

// Specification returns the descriptor for version of the pod.
func (s *Set) Specification(ctx context.Context, version string) (*podspec.Spec, error) {
	return s.Source.Specification(ctx, s.Name, version)
}

// String returns "Name (source)".
func (s *Set) String() string {
	return s.Name + " (" + s.Source.Name() + ")"
}
