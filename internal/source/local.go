package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/indaco/podsrc/internal/console"
	"github.com/indaco/podsrc/internal/core"
	"github.com/indaco/podsrc/internal/podspec"
	"github.com/indaco/podsrc/internal/semver"
)

// DefaultPatterns are the globs, relative to the source root, that select
// specification files.
var DefaultPatterns = []string{"**/*.podspec", "**/*.podspec.json"}

// ParseWarning records a specification file that was skipped because it
// could not be parsed.
type ParseWarning struct {
	// RelPath is the file path relative to the source root.
	RelPath string

	// Err is the parser error.
	Err error
}

// String returns the message reported for the skipped file.
func (w ParseWarning) String() string {
	return fmt.Sprintf("Skipping `%s` because the podspec contains errors.", w.RelPath)
}

// versionsEntry is a memoized Versions result; found is false for pods the
// source does not contain.
type versionsEntry struct {
	versions []semver.Version
	found    bool
}

// LocalSource serves pod specifications from a directory tree.
//
// The index is built by the first query that needs it and kept for the
// lifetime of the value. See the package documentation for the staleness
// guarantee.
type LocalSource struct {
	name     string
	root     string
	fsys     core.FileSystem
	parser   Parser
	reporter Reporter
	patterns []string
	excludes []string

	mu       sync.Mutex
	scanned  bool
	specs    []*podspec.Spec
	skipped  []ParseWarning
	names    []string
	versions map[string]versionsEntry
}

var _ Source = (*LocalSource)(nil)

// Option configures a LocalSource.
type Option func(*LocalSource)

// WithFileSystem sets the filesystem the source reads from.
func WithFileSystem(fsys core.FileSystem) Option {
	return func(s *LocalSource) { s.fsys = fsys }
}

// WithParser sets the specification parser.
func WithParser(p Parser) Option {
	return func(s *LocalSource) { s.parser = p }
}

// WithReporter sets where skipped-file warnings are sent.
func WithReporter(r Reporter) Option {
	return func(s *LocalSource) { s.reporter = r }
}

// WithPatterns replaces DefaultPatterns.
func WithPatterns(patterns []string) Option {
	return func(s *LocalSource) {
		if len(patterns) > 0 {
			s.patterns = slices.Clone(patterns)
		}
	}
}

// WithExcludes skips files and directories whose name or relative path
// matches one of the globs.
func WithExcludes(excludes []string) Option {
	return func(s *LocalSource) { s.excludes = slices.Clone(excludes) }
}

// NewLocalSource creates a source named name rooted at root.
// No filesystem access happens until the first query.
func NewLocalSource(name, root string, opts ...Option) *LocalSource {
	s := &LocalSource{
		name:     name,
		root:     filepath.Clean(root),
		patterns: slices.Clone(DefaultPatterns),
		versions: make(map[string]versionsEntry),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fsys == nil {
		s.fsys = core.NewOSFileSystem()
	}
	if s.parser == nil {
		s.parser = podspec.NewReader(s.fsys)
	}
	if s.reporter == nil {
		s.reporter = console.NewReporter(nil)
	}
	return s
}

// Name returns the source name.
func (s *LocalSource) Name() string { return s.name }

// URL returns a file:// URL for the root directory.
func (s *LocalSource) URL() string {
	root := s.root
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return "file://" + filepath.ToSlash(root)
}

// Type describes the kind of source.
func (s *LocalSource) Type() string { return "file system" }

// SpecsDir returns the directory that holds the specifications.
func (s *LocalSource) SpecsDir() string { return s.root }

// PodPath returns the directory holding the specifications of a pod. Local
// sources have no per-pod layout, so it is always the root.
func (s *LocalSource) PodPath(_ string) string { return s.root }

// MetadataPath is empty: local sources carry no metadata file.
func (s *LocalSource) MetadataPath() string { return "" }

// Updatable is false: there is nothing to fetch.
func (s *LocalSource) Updatable() bool { return false }

// Git is false: the directory is not managed as a git checkout.
func (s *LocalSource) Git() bool { return false }

// Local is true.
func (s *LocalSource) Local() bool { return true }

// Indexable is false: local sources do not feed the search index.
func (s *LocalSource) Indexable() bool { return false }

// Update is a no-op and always returns an empty change list.
func (s *LocalSource) Update(_ context.Context, _ bool) ([]string, error) {
	return []string{}, nil
}

// PodsForSpecificationPaths always returns an empty list because local
// sources never contribute to the search index.
func (s *LocalSource) PodsForSpecificationPaths(_ []string) []string {
	return []string{}
}

// VerifyCompatibility is a no-op; local sources have no version manifest.
func (s *LocalSource) VerifyCompatibility() error { return nil }

// PodNames returns the sorted, de-duplicated names of all parsed pods.
func (s *LocalSource) PodNames(ctx context.Context) ([]string, error) {
	if err := s.checkExists(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.names == nil {
		specs, err := s.indexLocked(ctx)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(specs))
		for _, spec := range specs {
			names = append(names, spec.Name)
		}
		slices.Sort(names)
		s.names = slices.Compact(names)
	}
	return slices.Clone(s.names), nil
}

// Versions returns the versions of the named pod, highest first, with equal
// versions collapsed. The boolean is false when the source has no pod by that
// name. Results, including absent ones, are memoized per name.
func (s *LocalSource) Versions(ctx context.Context, name string) ([]semver.Version, bool, error) {
	if err := s.checkExists(ctx); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.versions[name]; ok {
		return slices.Clone(entry.versions), entry.found, nil
	}

	specs, err := s.indexLocked(ctx)
	if err != nil {
		return nil, false, err
	}

	var versions []semver.Version
	for _, spec := range specs {
		if spec.Name == name {
			versions = append(versions, spec.Version)
		}
	}
	if len(versions) == 0 {
		s.versions[name] = versionsEntry{}
		return nil, false, nil
	}

	semver.SortDescending(versions)
	versions = slices.CompactFunc(versions, semver.Version.Equal)
	s.versions[name] = versionsEntry{versions: versions, found: true}
	return slices.Clone(versions), true, nil
}

// Specification returns the descriptor for the given pod and version.
// When several files define the same pair, the first one discovered wins.
func (s *LocalSource) Specification(ctx context.Context, name, version string) (*podspec.Spec, error) {
	if err := s.checkExists(ctx); err != nil {
		return nil, err
	}

	want, err := semver.ParseVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid version for %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	specs, err := s.indexLocked(ctx)
	if err != nil {
		return nil, err
	}
	for _, spec := range specs {
		if spec.Name == name && spec.Version.Equal(want) {
			return spec, nil
		}
	}
	return nil, &SpecificationNotFoundError{Name: name, Version: version, Source: s.name}
}

// SpecificationPath returns the absolute path of the file defining the given
// pod and version.
func (s *LocalSource) SpecificationPath(ctx context.Context, name, version string) (string, error) {
	spec, err := s.Specification(ctx, name, version)
	if err != nil {
		return "", err
	}
	path, err := filepath.Abs(spec.DefinedInFile)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", spec.DefinedInFile, err)
	}
	return path, nil
}

// Search returns a set bound to this source when it contains the queried
// pod, or nil when it does not.
func (s *LocalSource) Search(ctx context.Context, query Query) (*Set, error) {
	if err := s.checkExists(ctx); err != nil {
		return nil, err
	}

	name := query.PodName()

	s.mu.Lock()
	defer s.mu.Unlock()

	specs, err := s.indexLocked(ctx)
	if err != nil {
		return nil, err
	}
	if slices.ContainsFunc(specs, func(spec *podspec.Spec) bool { return spec.Name == name }) {
		return &Set{Name: name, Source: s}, nil
	}
	return nil, nil
}

// SearchByName returns a set for every pod whose name matches the
// case-insensitive regular expression pattern. With fullText, summaries and
// descriptions are matched too. Results are sorted by name.
func (s *LocalSource) SearchByName(ctx context.Context, pattern string, fullText bool) ([]*Set, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", pattern, err)
	}
	if err := s.checkExists(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	specs, err := s.indexLocked(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, spec := range specs {
		if re.MatchString(spec.Name) ||
			(fullText && (re.MatchString(spec.Summary) || re.MatchString(spec.Description))) {
			names = append(names, spec.Name)
		}
	}
	slices.Sort(names)
	names = slices.Compact(names)

	sets := make([]*Set, 0, len(names))
	for _, name := range names {
		sets = append(sets, &Set{Name: name, Source: s})
	}
	return sets, nil
}

// AllSpecs returns every successfully parsed descriptor in discovery order.
func (s *LocalSource) AllSpecs(ctx context.Context) ([]*podspec.Spec, error) {
	if err := s.checkExists(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	specs, err := s.indexLocked(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(specs), nil
}

// Skipped returns the files the scan could not parse.
func (s *LocalSource) Skipped(ctx context.Context) ([]ParseWarning, error) {
	if err := s.checkExists(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.indexLocked(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.skipped), nil
}

// checkExists fails with SourceNotFoundError unless the root is a directory.
func (s *LocalSource) checkExists(ctx context.Context) error {
	info, err := s.fsys.Stat(ctx, s.root)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &SourceNotFoundError{Name: s.name}
	}
	if !info.IsDir() {
		return &SourceNotFoundError{Name: s.name}
	}
	return nil
}

// indexLocked returns the descriptor set, scanning on first use.
// The caller must hold s.mu.
func (s *LocalSource) indexLocked(ctx context.Context) ([]*podspec.Spec, error) {
	if s.scanned {
		return s.specs, nil
	}

	specs, skipped, err := s.discover(ctx)
	if err != nil {
		return nil, err
	}

	// Warnings are reported once the scan has finished, in discovery order.
	for _, w := range skipped {
		s.reporter.Warn(w.String())
	}

	s.specs = specs
	s.skipped = skipped
	s.scanned = true
	return s.specs, nil
}

// discover walks the root and parses every matching file. Files that fail to
// parse are collected as warnings instead of aborting the walk.
func (s *LocalSource) discover(ctx context.Context) ([]*podspec.Spec, []ParseWarning, error) {
	var specs []*podspec.Spec
	var skipped []ParseWarning

	err := s.walkDirectory(ctx, s.root, 0, func(path, rel string) error {
		spec, err := s.parser.Parse(ctx, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			skipped = append(skipped, ParseWarning{RelPath: rel, Err: err})
			return nil
		}
		specs = append(specs, spec)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return specs, skipped, nil
}

// walkDirectory walks the directory tree calling fn for every file matching
// one of the source patterns.
func (s *LocalSource) walkDirectory(ctx context.Context, dir string, depth int, fn func(path, rel string) error) error {
	if depth > core.MaxDiscoveryDepth {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := s.fsys.ReadDir(ctx, dir)
	if err != nil {
		if depth == 0 || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("failed to read %q: %w", dir, err)
		}
		// Skip subdirectories we can't read
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)
		rel := s.relPath(path)

		if s.shouldExclude(name, rel) {
			continue
		}

		if entry.IsDir() {
			if err := s.walkDirectory(ctx, path, depth+1, fn); err != nil {
				return err
			}
			continue
		}
		if entry.Type()&fs.ModeType != 0 && entry.Type()&fs.ModeSymlink == 0 {
			continue
		}
		if s.matches(rel) {
			if err := fn(path, rel); err != nil {
				return err
			}
		}
	}

	return nil
}

// shouldExclude skips hidden entries and configured exclude globs.
func (s *LocalSource) shouldExclude(name, rel string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, pattern := range s.excludes {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func (s *LocalSource) matches(rel string) bool {
	for _, pattern := range s.patterns {
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

func (s *LocalSource) relPath(path string) string {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}
