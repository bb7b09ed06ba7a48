package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/util"
)

// DayConverter turns wall-clock timestamps into axis values.
// *util.TimeProvider satisfies it.
type DayConverter interface {
	DaysAt(t time.Time) float64
}

// record is the on-disk event shape. Times are given either as axis values
// (time_start/time_end) or as timestamps (start_at/end_at) converted
// through the DayConverter.
type record struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	TimeStart     *float64 `json:"time_start" yaml:"time_start"`
	TimeEnd       *float64 `json:"time_end" yaml:"time_end"`
	StartAt       string   `json:"start_at" yaml:"start_at"`
	EndAt         string   `json:"end_at" yaml:"end_at"`
	ParentEventID string   `json:"parent_event_id" yaml:"parent_event_id"`
	DisplayOrder  int      `json:"display_order" yaml:"display_order"`
}

type document struct {
	Events []record `json:"events" yaml:"events"`
}

// Parser loads event files. Results are cached per path and invalidated
// when the file's fingerprint changes.
type Parser struct {
	concurrency int
	days        DayConverter
	mu          sync.Mutex
	cache       map[string]cachedFile
}

type cachedFile struct {
	fingerprint string
	events      []model.Event
}

// ParseResult represents the result of parsing a single file.
type ParseResult struct {
	File   string
	Events []model.Event
	Error  error
}

// NewParser creates a new Parser instance. days may be nil when files only
// carry axis values.
func NewParser(concurrency int, days DayConverter) *Parser {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Parser{
		concurrency: concurrency,
		days:        days,
		cache:       make(map[string]cachedFile),
	}
}

// Supported reports whether path has an event file extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonl", ".yaml", ".yml":
		return true
	}
	return false
}

// ParseFile loads the events in path. The format is chosen by extension.
func (p *Parser) ParseFile(path string) ([]model.Event, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("unsupported event file %s: want .json, .jsonl, .yaml or .yml", path)
	}

	fingerprint := p.fingerprint(path)
	p.mu.Lock()
	if cached, ok := p.cache[path]; ok && fingerprint != "" && cached.fingerprint == fingerprint {
		p.mu.Unlock()
		return cached.events, nil
	}
	p.mu.Unlock()

	util.LogDebugf("Start parsing event file: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var records []record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		records = parseJSONL(path, data)
	case ".json":
		records, err = parseJSON(data)
	default:
		records, err = parseYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	events := make([]model.Event, 0, len(records))
	for i, rec := range records {
		e, err := p.toEvent(rec)
		if err != nil {
			util.LogDebugf("Skip event %d in %s: %v", i, path, err)
			continue
		}
		events = append(events, e)
	}

	p.mu.Lock()
	p.cache[path] = cachedFile{fingerprint: fingerprint, events: events}
	p.mu.Unlock()

	return events, nil
}

// ParseFiles parses multiple files concurrently and returns a channel of ParseResult.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebugf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency)

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			events, err := p.ParseFile(f)
			if err != nil {
				util.LogDebugf("File parsing failed: %s - %v", f, err)
			}

			results <- ParseResult{
				File:   f,
				Events: events,
				Error:  err,
			}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebugf("Concurrent parsing finished, total duration: %v", time.Since(start))
	}()

	return results
}

// Invalidate drops the cached result for path.
func (p *Parser) Invalidate(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.cache, path)
}

// fingerprint identifies the file's current content. An empty result
// disables caching for this read.
func (p *Parser) fingerprint(path string) string {
	fp, err := util.FileFingerprint(path)
	if err != nil {
		util.LogDebugf("No fingerprint for %s: %v", path, err)
		return ""
	}
	return fp
}

func parseJSONL(path string, data []byte) []record {
	var records []record
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	for scanner.Scan() {
		lineCount++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec record
		if err := sonic.Unmarshal(line, &rec); err != nil {
			util.LogDebugf("Skip invalid JSON line %s:%d - %v", path, lineCount, err)
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		util.LogDebugf("Error scanning file: %s - %v", path, err)
	}
	return records
}

// parseJSON accepts either a bare array of events or {"events": [...]}.
func parseJSON(data []byte) ([]record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var records []record
		if err := sonic.Unmarshal(trimmed, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var doc document
	if err := sonic.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Events, nil
}

// parseYAML accepts a sequence of events or a mapping with an events key.
func parseYAML(data []byte) ([]record, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]
	if node.Kind == yaml.SequenceNode {
		var records []record
		if err := node.Decode(&records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var doc document
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.Events, nil
}

func (p *Parser) toEvent(rec record) (model.Event, error) {
	if rec.ID == "" {
		return model.Event{}, fmt.Errorf("missing id")
	}

	e := model.Event{
		ID:            rec.ID,
		Title:         rec.Title,
		TimeStart:     rec.TimeStart,
		TimeEnd:       rec.TimeEnd,
		ParentEventID: rec.ParentEventID,
		DisplayOrder:  rec.DisplayOrder,
	}

	if e.TimeStart == nil && rec.StartAt != "" {
		v, err := p.convert(rec.StartAt)
		if err != nil {
			return model.Event{}, fmt.Errorf("start_at: %w", err)
		}
		e.TimeStart = &v
	}
	if e.TimeEnd == nil && rec.EndAt != "" {
		v, err := p.convert(rec.EndAt)
		if err != nil {
			return model.Event{}, fmt.Errorf("end_at: %w", err)
		}
		e.TimeEnd = &v
	}
	return e, nil
}

func (p *Parser) convert(value string) (float64, error) {
	if p.days == nil {
		return 0, fmt.Errorf("timestamp %q given but no epoch configured", value)
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return p.days.DaysAt(t), nil
		}
	}
	return 0, fmt.Errorf("unrecognized timestamp %q", value)
}
