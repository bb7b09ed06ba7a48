package view

import (
	"sync"
	"time"

	"github.com/penwyp/go-timeline-view/internal/core/model"
)

// StateManager manages viewer state in a thread-safe manner
type StateManager struct {
	mu sync.RWMutex

	// Loading state
	isLoading      bool
	loadingMessage string

	// Interaction state
	interactionState model.InteractionState

	// Metadata
	lastDataUpdate int64 // Timestamp of last successful data load
	dragging       bool
}

// NewStateManager creates a new StateManager instance
func NewStateManager() *StateManager {
	return &StateManager{}
}

// GetLoadingState returns current loading state and message
func (sm *StateManager) GetLoadingState() (bool, string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.isLoading, sm.loadingMessage
}

// SetLoadingState updates loading state and message
func (sm *StateManager) SetLoadingState(isLoading bool, message string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.isLoading = isLoading
	sm.loadingMessage = message
}

// GetInteractionState returns a copy of the interaction state
func (sm *StateManager) GetInteractionState() model.InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.interactionState
}

// UpdateInteractionState updates specific fields of interaction state
func (sm *StateManager) UpdateInteractionState(updateFunc func(*model.InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	updateFunc(&sm.interactionState)
}

// SetStatus replaces the status line message.
func (sm *StateManager) SetStatus(message string) {
	sm.UpdateInteractionState(func(s *model.InteractionState) {
		s.StatusMessage = message
	})
}

// MarkDataUpdated records a successful load.
func (sm *StateManager) MarkDataUpdated() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.lastDataUpdate = time.Now().Unix()
}

// GetLastDataUpdate returns timestamp of last successful data load
func (sm *StateManager) GetLastDataUpdate() int64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.lastDataUpdate
}

// Dragging reports whether a mouse drag is in progress.
func (sm *StateManager) Dragging() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.dragging
}

// SetDragging records whether a mouse drag is in progress.
func (sm *StateManager) SetDragging(dragging bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.dragging = dragging
}
