package source

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound matches any *SourceNotFoundError.
	ErrSourceNotFound = errors.New("source not found")

	// ErrSpecificationNotFound matches any *SpecificationNotFoundError.
	ErrSpecificationNotFound = errors.New("specification not found")
)

// SourceNotFoundError reports that the directory backing a source is missing.
type SourceNotFoundError struct {
	Name string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("Unable to find a source named: `%s`", e.Name)
}

// Is lets errors.Is match ErrSourceNotFound.
func (e *SourceNotFoundError) Is(target error) bool {
	return target == ErrSourceNotFound
}

// SpecificationNotFoundError reports that no parsed specification matches a
// (name, version) pair.
type SpecificationNotFoundError struct {
	Name    string
	Version string
	Source  string
}

func (e *SpecificationNotFoundError) Error() string {
	return fmt.Sprintf("Unable to find the specification %s (%s) in the %s source.", e.Name, e.Version, e.Source)
}

// Is lets errors.Is match ErrSpecificationNotFound.
func (e *SpecificationNotFoundError) Is(target error) bool {
	return target == ErrSpecificationNotFound
}
