package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/penwyp/go-timeline-view/internal/util"
)

// MatchFunc decides whether a file should be loaded.
type MatchFunc func(path string) bool

// FileScanner finds event files below a directory.
type FileScanner struct {
	baseDir string
	match   MatchFunc
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(baseDir string, match MatchFunc) *FileScanner {
	return &FileScanner{
		baseDir: baseDir,
		match:   match,
	}
}

// Scan walks the directory and returns matching paths in lexical order.
// Unreadable entries are skipped; a missing base directory is an error.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	if _, err := os.Stat(s.baseDir); err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.baseDir, err)
	}

	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebugf("Start scanning directory: %s", s.baseDir)

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebugf("Skip file (error): %s - %v", path, err)
			return nil
		}

		if info.IsDir() {
			dirCount++
			return nil
		}

		totalCount++
		if s.match == nil || s.match(path) {
			files = append(files, path)
		}

		return nil
	})

	sort.Strings(files)
	util.LogDebugf("File scan completed: duration %v, scanned %d directories, %d files, found %d event files",
		time.Since(start), dirCount, totalCount, len(files))

	return files, err
}
