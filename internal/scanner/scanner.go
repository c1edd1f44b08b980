// Package scanner resolves paths into a concrete file list, walking a
// directory and filtering it by extension and exclusion pattern. The CLI
// uses it for the --recursive directory; positional file arguments are
// translated as given.
package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

// Scanner walks directories looking for input-dialect source files.
type Scanner struct {
	Extensions []string
	Excludes   []string
}

// New returns a Scanner recognizing the given extensions (each with or
// without a leading dot) and exclusion patterns.
func New(extensions, excludes []string) *Scanner {
	norm := make([]string, len(extensions))
	for i, e := range extensions {
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		norm[i] = strings.ToLower(e)
	}
	return &Scanner{Extensions: norm, Excludes: excludes}
}

// ScanPath resolves one positional argument into zero or more file paths.
// A plain file is returned as-is regardless of extension; a directory is
// walked recursively, keeping only files with a recognized extension.
func (s *Scanner) ScanPath(path string, recursive bool) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	if !recursive {
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if filePath != path && s.shouldExclude(filePath) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.hasRecognizedExt(filePath) && !s.shouldExclude(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	return files, err
}

// ScanPaths resolves every positional argument, de-duplicating by
// absolute path across arguments that overlap.
func (s *Scanner) ScanPaths(paths []string, recursive bool) ([]string, error) {
	var all []string
	seen := make(map[string]bool)
	for _, p := range paths {
		files, err := s.ScanPath(p, recursive)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			abs, _ := filepath.Abs(f)
			if !seen[abs] {
				seen[abs] = true
				all = append(all, f)
			}
		}
	}
	return all, nil
}

func (s *Scanner) hasRecognizedExt(path string) bool {
	if len(s.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range s.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func (s *Scanner) shouldExclude(path string) bool {
	for _, exclude := range s.Excludes {
		base := filepath.Base(path)
		if base == exclude {
			return true
		}
		sep := string(filepath.Separator)
		if strings.Contains(path, sep+exclude+sep) || strings.HasSuffix(path, sep+exclude) {
			return true
		}
	}
	return false
}
