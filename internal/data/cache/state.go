package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-timeline-view/internal/util"
)

// ViewState is what the interactive viewer remembers about a set of event
// files between runs.
type ViewState struct {
	Files              []string `json:"files"`
	StartTime          float64  `json:"start_time"`
	ZoomLevel          float64  `json:"zoom_level"`
	ManuallyPositioned bool     `json:"manually_positioned"`
	ExpandedIDs        []string `json:"expanded_ids,omitempty"`
	SavedAt            int64    `json:"saved_at"`
}

// StateStore keeps one ViewState per file set as a JSON file in baseDir.
type StateStore struct {
	baseDir string
	mu      sync.RWMutex
	memory  map[string]*ViewState
}

// NewStateStore creates baseDir if needed.
func NewStateStore(baseDir string) (*StateStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create state dir %s: %w", baseDir, err)
	}

	return &StateStore{
		baseDir: baseDir,
		memory:  make(map[string]*ViewState),
	}, nil
}

// StateKey identifies a file set independent of argument order.
func StateKey(files []string) string {
	abs := make([]string, 0, len(files))
	for _, f := range files {
		if a, err := filepath.Abs(f); err == nil {
			f = a
		}
		abs = append(abs, f)
	}
	sort.Strings(abs)
	return util.Checksum([]byte(strings.Join(abs, "\n")))
}

func (s *StateStore) path(key string) string {
	return filepath.Join(s.baseDir, "view-"+key+".json")
}

// Get returns the saved state for files. found is false when nothing was
// saved or the saved file cannot be decoded.
func (s *StateStore) Get(files []string) (*ViewState, bool) {
	key := StateKey(files)

	s.mu.RLock()
	if st, ok := s.memory[key]; ok {
		s.mu.RUnlock()
		return st, true
	}
	s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			util.LogDebugf("view state read failed for %s: %v", key, err)
		}
		return nil, false
	}

	var st ViewState
	if err := sonic.Unmarshal(data, &st); err != nil {
		util.LogWarnf("discarding unreadable view state %s: %v", s.path(key), err)
		return nil, false
	}
	if st.ZoomLevel <= 0 {
		return nil, false
	}

	s.mu.Lock()
	s.memory[key] = &st
	s.mu.Unlock()
	return &st, true
}

// Set saves state for files, writing through to disk.
func (s *StateStore) Set(files []string, st ViewState) error {
	key := StateKey(files)
	st.Files = append([]string(nil), files...)
	if st.SavedAt == 0 {
		st.SavedAt = time.Now().Unix()
	}

	data, err := sonic.Marshal(st)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write view state: %w", err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("write view state: %w", err)
	}
	s.memory[key] = &st
	return nil
}

// Clear removes every saved state.
func (s *StateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory = make(map[string]*ViewState)
	matches, err := filepath.Glob(filepath.Join(s.baseDir, "view-*.json"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
