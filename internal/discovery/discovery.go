package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultInclude matches the source files scanned for hardcoded text.
var DefaultInclude = []string{
	"**/*.ts",
	"**/*.tsx",
	"**/*.js",
	"**/*.jsx",
	"**/*.mts",
	"**/*.cts",
	"**/*.mjs",
	"**/*.cjs",
}

// DefaultIgnore skips dependency directories.
var DefaultIgnore = []string{
	"node_modules/**",
	"**/node_modules/**",
}

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery finds source files under a root directory using include and
// ignore glob patterns. Entries whose name starts with a dot are always skipped.
type FileDiscovery struct {
	rootDir        string
	includePattern []compiledPattern
	ignorePatterns []compiledPattern
}

// NewFileDiscovery compiles the patterns for rootDir.
func NewFileDiscovery(rootDir string, include, ignore []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir: rootDir,
	}

	var err error
	if fd.includePattern, err = compilePatterns(include); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compilePatterns(ignore); err != nil {
		return nil, err
	}

	return fd, nil
}

// CompilePatterns validates glob patterns without building a discovery.
func CompilePatterns(patterns []string) error {
	_, err := compilePatterns(patterns)
	return err
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// DiscoverFiles walks the directory tree and returns matching files in lexical order.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(fd.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		if d.IsDir() {
			if isHidden(d.Name()) || fd.shouldIgnore(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if isHidden(d.Name()) || fd.shouldIgnore(relPath, false) {
			return nil
		}

		if fd.matchesAnyPattern(relPath, fd.includePattern) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// shouldIgnore checks if a path matches any ignore pattern. Directories also
// match patterns written with a /** suffix, so "node_modules/**" prunes the
// whole node_modules directory.
func (fd *FileDiscovery) shouldIgnore(relPath string, isDir bool) bool {
	if fd.matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}
	if isDir {
		return fd.matchesAnyPattern(relPath+"/**", fd.ignorePatterns)
	}
	return false
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// "**/*.tsx" should also match "App.tsx" at the root.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}

// ExpandPaths turns command-line arguments into a file list. Files are kept
// as given; directories are replaced by their discovered files.
func ExpandPaths(args []string, include, ignore []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// Missing files are passed through so the detector reports them.
			files = append(files, arg)
			continue
		}

		fd, err := NewFileDiscovery(arg, include, ignore)
		if err != nil {
			return nil, err
		}
		found, err := fd.DiscoverFiles()
		if err != nil {
			return nil, fmt.Errorf("failed to discover files in %s: %w", arg, err)
		}
		files = append(files, found...)
	}
	return files, nil
}

// SkipDir reports whether a directory under the root would be pruned by
// DiscoverFiles. It is used to keep watchers out of ignored trees.
func (fd *FileDiscovery) SkipDir(path string) bool {
	relPath, err := filepath.Rel(fd.rootDir, path)
	if err != nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	if relPath == "." {
		return false
	}
	return isHidden(filepath.Base(path)) || fd.shouldIgnore(relPath, true)
}
