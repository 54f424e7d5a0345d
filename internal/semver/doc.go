// Package semver implements the version value used by pod specifications:
// parsing, canonical formatting and a total order suitable for sorting the
// versions published by a source.
package semver
