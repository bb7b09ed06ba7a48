// Package fixtures writes event files for tests.
package fixtures

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// Record mirrors the on-disk event shape.
type Record struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title,omitempty" yaml:"title,omitempty"`
	TimeStart     *float64 `json:"time_start,omitempty" yaml:"time_start,omitempty"`
	TimeEnd       *float64 `json:"time_end,omitempty" yaml:"time_end,omitempty"`
	StartAt       string   `json:"start_at,omitempty" yaml:"start_at,omitempty"`
	EndAt         string   `json:"end_at,omitempty" yaml:"end_at,omitempty"`
	ParentEventID string   `json:"parent_event_id,omitempty" yaml:"parent_event_id,omitempty"`
	DisplayOrder  int      `json:"display_order,omitempty" yaml:"display_order,omitempty"`
}

// Span is a Record with axis times.
func Span(id string, start, end float64) Record {
	return Record{ID: id, Title: id, TimeStart: &start, TimeEnd: &end}
}

// Clusters builds groups of back-to-back events separated by long quiet
// periods, which is the shape that produces collapsible gaps.
func Clusters(groups, perGroup int, duration, quiet float64) []Record {
	var records []Record
	t := 0.0
	for g := 0; g < groups; g++ {
		for i := 0; i < perGroup; i++ {
			records = append(records, Span(fmt.Sprintf("g%d-e%d", g, i), t, t+duration))
			t += duration
		}
		t += quiet
	}
	return records
}

// EventFileGenerator writes fixture files below a base directory.
type EventFileGenerator struct {
	baseDir string
}

// NewEventFileGenerator creates a new generator rooted at baseDir.
func NewEventFileGenerator(baseDir string) *EventFileGenerator {
	return &EventFileGenerator{baseDir: baseDir}
}

func (g *EventFileGenerator) write(name string, data []byte) (string, error) {
	path := filepath.Join(g.baseDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteJSON writes records as a JSON array.
func (g *EventFileGenerator) WriteJSON(name string, records []Record) (string, error) {
	data, err := sonic.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", err
	}
	return g.write(name, data)
}

// WriteJSONL writes one record per line followed by any raw extra lines.
func (g *EventFileGenerator) WriteJSONL(name string, records []Record, extraLines ...string) (string, error) {
	var buf bytes.Buffer
	for _, r := range records {
		line, err := sonic.Marshal(r)
		if err != nil {
			return "", err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	for _, l := range extraLines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return g.write(name, buf.Bytes())
}

// WriteYAML writes records under an "events" key.
func (g *EventFileGenerator) WriteYAML(name string, records []Record) (string, error) {
	data, err := yaml.Marshal(map[string][]Record{"events": records})
	if err != nil {
		return "", err
	}
	return g.write(name, data)
}
