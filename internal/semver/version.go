package semver

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Version is a pod version: one or more numeric segments followed by an
// optional pre-release and optional build metadata (e.g. "1.2", "2.0.0-beta.1",
// "1.0.0.rc.2", "3.1.4+build.7").
type Version struct {
	Segments   []int
	PreRelease string
	Build      string

	// dotPre records that the pre-release was written as a trailing
	// dot-separated segment ("1.0.0.beta") rather than after a dash.
	dotPre bool
}

var (
	// versionRegex matches pod version strings with an optional "v" prefix.
	// It captures:
	//   1. Dot-separated segments (numeric, optionally followed by alphanumeric ones)
	//   2. (optional) Dash pre-release identifier
	//   3. (optional) Build metadata
	versionRegex = regexp.MustCompile(
		`^v?([0-9]+(?:\.[0-9A-Za-z]+)*)` + // segments
			`(?:-([0-9A-Za-z\-\.]+))?` + // optional pre-release
			`(?:\+([0-9A-Za-z\-\.]+))?$`, // optional build metadata
	)

	// ErrInvalidVersion is returned when a string is not a valid pod version.
	ErrInvalidVersion = errors.New("invalid version format")
)

// maxVersionLength is the maximum allowed length for a version string.
// This prevents potential ReDoS attacks on the regex parser.
const maxVersionLength = 128

// ParseVersion parses a pod version string.
//
// Supported formats:
//   - "1", "1.2", "1.2.3", "1.2.3.4" (any number of numeric segments)
//   - "v1.2.3" (with optional v prefix)
//   - "1.2.3-alpha.1" (dash pre-release)
//   - "1.2.3.beta.1" (dot pre-release: first non-numeric segment onward)
//   - "1.2.3+build.123" (build metadata, ignored for ordering)
//
// Returns ErrInvalidVersion (wrapped) when the input is too long, does not
// match the pattern, or mixes both pre-release styles.
func ParseVersion(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxVersionLength {
		return Version{}, fmt.Errorf("%w: version string exceeds maximum length of %d", ErrInvalidVersion, maxVersionLength)
	}

	matches := versionRegex.FindStringSubmatch(trimmed)
	if matches == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	v := Version{PreRelease: matches[2], Build: matches[3]}

	parts := strings.Split(matches[1], ".")
	for i, part := range parts {
		n, ok := parseNumericSegment(part)
		if !ok {
			if v.PreRelease != "" {
				return Version{}, fmt.Errorf("%w: %q has two pre-release identifiers", ErrInvalidVersion, s)
			}
			v.PreRelease = strings.Join(parts[i:], ".")
			v.dotPre = true
			break
		}
		v.Segments = append(v.Segments, n)
	}

	return v, nil
}

// MustParse is like ParseVersion but panics on error. Intended for tests and
// package-level literals.
func MustParse(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version in its canonical form.
func (v Version) String() string {
	var sb strings.Builder
	sb.Grow(20)
	for i, seg := range v.Segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(seg))
	}
	if v.PreRelease != "" {
		if v.dotPre {
			sb.WriteByte('.')
		} else {
			sb.WriteByte('-')
		}
		sb.WriteString(v.PreRelease)
	}
	if v.Build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.Build)
	}
	return sb.String()
}

// IsPreRelease reports whether the version carries a pre-release identifier.
func (v Version) IsPreRelease() bool {
	return v.PreRelease != ""
}

// Compare compares two versions.
// It returns -1 if v < other, 0 if v == other, and +1 if v > other.
// Missing trailing segments count as zero (1.0 == 1.0.0). A pre-release has
// lower precedence than the associated normal version (1.0.0-alpha < 1.0.0).
// Build metadata is ignored.
func (v Version) Compare(other Version) int {
	n := max(len(v.Segments), len(other.Segments))
	for i := range n {
		if c := compareInt(segmentAt(v.Segments, i), segmentAt(other.Segments, i)); c != 0 {
			return c
		}
	}

	switch {
	case v.PreRelease == "" && other.PreRelease == "":
		return 0
	case v.PreRelease == "":
		return 1
	case other.PreRelease == "":
		return -1
	default:
		return comparePreRelease(v.PreRelease, other.PreRelease)
	}
}

// Equal reports whether v and other have the same precedence.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// SortDescending sorts versions from highest to lowest in place.
func SortDescending(versions []Version) {
	slices.SortStableFunc(versions, func(a, b Version) int {
		return b.Compare(a)
	})
}

// Highest returns the greatest version, or false when versions is empty.
func Highest(versions []Version) (Version, bool) {
	if len(versions) == 0 {
		return Version{}, false
	}
	return slices.MaxFunc(versions, Version.Compare), true
}

func segmentAt(segments []int, i int) int {
	if i < len(segments) {
		return segments[i]
	}
	return 0
}

func parseNumericSegment(s string) (int, bool) {
	if s == "" || !isAllDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// isAllDigits returns true if s consists entirely of ASCII digits.
func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparePreRelease(a, b string) int {
	aIDs := strings.Split(a, ".")
	bIDs := strings.Split(b, ".")

	n := min(len(aIDs), len(bIDs))
	for i := range n {
		if c := compareIdentifier(aIDs[i], bIDs[i]); c != 0 {
			return c
		}
	}

	// If equal so far, shorter list has lower precedence.
	return compareInt(len(aIDs), len(bIDs))
}

func compareIdentifier(a, b string) int {
	aNum, aIsNum := parseNumericIdentifier(a)
	bNum, bIsNum := parseNumericIdentifier(b)

	switch {
	case aIsNum && bIsNum:
		return compareInt(aNum, bNum)
	case aIsNum && !bIsNum:
		return -1 // numeric < non-numeric
	case !aIsNum && bIsNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// SemVer numeric identifiers: only digits, no leading zeros unless exactly "0".
func parseNumericIdentifier(s string) (int, bool) {
	if len(s) > 1 && s[0] == '0' {
		return 0, false
	}
	return parseNumericSegment(s)
}
