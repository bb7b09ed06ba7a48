package view

import (
	"fmt"
	"path/filepath"

	"github.com/penwyp/go-timeline-view/internal/core/timeline"
	"github.com/penwyp/go-timeline-view/internal/data/parser"
	"github.com/penwyp/go-timeline-view/internal/data/scanner"
	"github.com/penwyp/go-timeline-view/internal/util"
)

// DataLoader resolves the configured event files and parses them into
// timeline sources.
type DataLoader struct {
	config  *Config
	scanner *scanner.FileScanner
	parser  *parser.Parser

	primary       []string
	supplementary map[string]bool
}

// NewDataLoader creates a new DataLoader instance. days converts timestamps
// in event files to axis values.
func NewDataLoader(config *Config, days parser.DayConverter) *DataLoader {
	dl := &DataLoader{
		config:        config,
		parser:        parser.NewParser(config.Concurrency, days),
		supplementary: make(map[string]bool),
	}
	if config.Dir != "" {
		dl.scanner = scanner.NewFileScanner(config.Dir, parser.Supported)
	}
	return dl
}

// Resolve collects the primary files from the file list and the scanned
// directory, dropping duplicates and anything also listed as supplementary.
func (dl *DataLoader) Resolve() ([]string, error) {
	dl.supplementary = make(map[string]bool, len(dl.config.SupplementaryFiles))
	for _, f := range dl.config.SupplementaryFiles {
		dl.supplementary[absPath(f)] = true
	}

	files := append([]string(nil), dl.config.Files...)
	if dl.scanner != nil {
		scanned, err := dl.scanner.Scan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan event directory: %w", err)
		}
		files = append(files, scanned...)
	}

	seen := make(map[string]bool, len(files))
	dl.primary = dl.primary[:0]
	for _, f := range files {
		abs := absPath(f)
		if seen[abs] || dl.supplementary[abs] {
			continue
		}
		seen[abs] = true
		dl.primary = append(dl.primary, abs)
	}

	if len(dl.primary) == 0 {
		return nil, fmt.Errorf("no event files found")
	}
	util.LogInfof("Found %d event files (%d supplementary)", len(dl.primary), len(dl.supplementary))
	return dl.primary, nil
}

// Files returns every resolved file, primaries first.
func (dl *DataLoader) Files() []string {
	files := append([]string(nil), dl.primary...)
	for _, f := range dl.config.SupplementaryFiles {
		files = append(files, absPath(f))
	}
	return files
}

// Load parses every resolved file and returns one source per file, in
// Files order. A file that fails to parse fails the whole load.
func (dl *DataLoader) Load() ([]timeline.Source, error) {
	if dl.primary == nil {
		if _, err := dl.Resolve(); err != nil {
			return nil, err
		}
	}

	files := dl.Files()
	results := make(map[string]parser.ParseResult, len(files))
	for res := range dl.parser.ParseFiles(files) {
		results[res.File] = res
	}

	sources := make([]timeline.Source, 0, len(files))
	total := 0
	for _, f := range files {
		res := results[f]
		if res.Error != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, res.Error)
		}
		sources = append(sources, timeline.Source{
			Name:          f,
			Events:        res.Events,
			Supplementary: dl.supplementary[f],
		})
		total += len(res.Events)
	}

	util.LogInfof("Loaded %d events from %d files", total, len(files))
	return sources, nil
}

// Reload drops the cached parse of path and loads everything again. An
// empty path rescans the directory instead. Files whose fingerprint did not
// change are served from the parser cache.
func (dl *DataLoader) Reload(path string) ([]timeline.Source, error) {
	if path == "" {
		if _, err := dl.Resolve(); err != nil {
			return nil, err
		}
	} else {
		dl.parser.Invalidate(absPath(path))
	}
	return dl.Load()
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
