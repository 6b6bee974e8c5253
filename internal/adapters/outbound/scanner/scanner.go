package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/gobwas/glob"

	"github.com/docscan/docscan/internal/domain"
)

// compiledPattern holds both the pattern string and compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileScanner implements domain.FileEnumerator by walking the filesystem.
// Directories named in the profile's exclude set are pruned; config-level
// ignore globs and .gitignore rules are applied on top when enabled.
type FileScanner struct {
	ignore    []compiledPattern
	gitignore bool
	logger    *slog.Logger
}

func New() *FileScanner {
	return &FileScanner{logger: slog.Default()}
}

// WithIgnore returns a copy of s that also skips paths matching any of the
// glob patterns. Patterns match slash-separated root-relative paths.
func (s *FileScanner) WithIgnore(patterns ...string) (*FileScanner, error) {
	out := *s
	out.ignore = append([]compiledPattern(nil), s.ignore...)
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("compiling ignore pattern %q: %w", p, err)
		}
		out.ignore = append(out.ignore, compiledPattern{pattern: p, glob: g})

		// "**/x" should also match "x" at the root.
		if rest, ok := strings.CutPrefix(p, "**/"); ok {
			if g, err := glob.Compile(rest, '/'); err == nil {
				out.ignore = append(out.ignore, compiledPattern{pattern: rest, glob: g})
			}
		}
	}
	return &out, nil
}

// WithGitignore returns a copy of s that honors the tree's .gitignore files.
func (s *FileScanner) WithGitignore(enabled bool) *FileScanner {
	out := *s
	out.gitignore = enabled
	return &out
}

// WithFilters implements domain.FilterableEnumerator.
func (s *FileScanner) WithFilters(ignore []string, respectGitignore bool) (domain.FileEnumerator, error) {
	out, err := s.WithIgnore(ignore...)
	if err != nil {
		return nil, err
	}
	return out.WithGitignore(respectGitignore), nil
}

func (s *FileScanner) WithLogger(logger *slog.Logger) *FileScanner {
	out := *s
	if logger != nil {
		out.logger = logger
	}
	return &out
}

// Enumerate returns a lazy sequence of the files under root accepted by
// profile. A missing root fails immediately with *domain.NotFoundError.
// Each range over the sequence walks the tree again; breaking out stops the
// walk. Entries that cannot be read are skipped.
func (s *FileScanner) Enumerate(root string, profile domain.LanguageProfile) (iter.Seq[domain.SourceFile], error) {
	absRoot, err := domain.ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	return func(yield func(domain.SourceFile) bool) {
		matcher := s.gitignoreMatcher(absRoot)
		_ = s.walk(absRoot, profile, matcher, func(path, rel string, name string) bool {
			if !profile.Accepts(name) {
				return true
			}
			return yield(domain.SourceFile{
				Path:         path,
				RelativePath: rel,
				Kind:         domain.KindOf(name),
			})
		})
	}, nil
}

// CountDescriptors counts solution and project descriptor files, pruning the
// same directories as Enumerate.
func (s *FileScanner) CountDescriptors(root string, profile domain.LanguageProfile) (domain.DescriptorCounts, error) {
	absRoot, err := domain.ResolveRoot(root)
	if err != nil {
		return domain.DescriptorCounts{}, err
	}

	var counts domain.DescriptorCounts
	if len(profile.SolutionDescriptors) == 0 && len(profile.ProjectDescriptors) == 0 {
		return counts, nil
	}

	matcher := s.gitignoreMatcher(absRoot)
	err = s.walk(absRoot, profile, matcher, func(_, _ string, name string) bool {
		solution, project := profile.DescriptorKind(name)
		if solution {
			counts.Solutions++
		}
		if project {
			counts.Projects++
		}
		return true
	})
	return counts, err
}

// walk visits every regular file under root that survives pruning. visit
// returning false stops the walk.
func (s *FileScanner) walk(root string, profile domain.LanguageProfile, matcher gitignore.Matcher, visit func(path, rel, name string) bool) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			s.logger.Debug("skipping unreadable entry", "path", path, "err", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if profile.Excludes(d.Name()) || s.ignored(rel, true, matcher) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isRegular(path, d) || s.ignored(rel, false, matcher) {
			return nil
		}

		if !visit(path, rel, d.Name()) {
			return filepath.SkipAll
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return &domain.NotFoundError{Path: root, Err: err}
	}
	return err
}

// isRegular accepts regular files and symlinks to regular files. Symlinked
// directories are never followed, so link cycles cannot occur.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (s *FileScanner) ignored(rel string, isDir bool, matcher gitignore.Matcher) bool {
	for _, cp := range s.ignore {
		if cp.glob.Match(rel) {
			return true
		}
		// A directory matches "dir/**" style patterns.
		if isDir && cp.glob.Match(rel+"/**") {
			return true
		}
	}
	if matcher != nil && matcher.Match(strings.Split(rel, "/"), isDir) {
		return true
	}
	return false
}

func (s *FileScanner) gitignoreMatcher(root string) gitignore.Matcher {
	if !s.gitignore {
		return nil
	}
	patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		s.logger.Warn("reading .gitignore patterns", "root", root, "err", err)
		return nil
	}
	if len(patterns) == 0 {
		return nil
	}
	return gitignore.NewMatcher(patterns)
}
