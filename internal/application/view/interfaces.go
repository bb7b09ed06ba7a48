package view

import (
	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/presentation/interaction"
)

// InputHandler delivers keyboard and mouse input
type InputHandler interface {
	// Events returns the input channel; it is closed when input ends
	Events() <-chan interaction.InputEvent
	// Close cleans up input handler resources
	Close() error
}

// FileMonitor watches for file changes
type FileMonitor interface {
	// Events returns a channel of file change events
	Events() <-chan model.FileEvent
	// Close stops monitoring and cleans up resources
	Close() error
}

// DisplayController handles terminal display operations
type DisplayController interface {
	EnterAlternateScreen()
	ExitAlternateScreen()
	Invalidate()
	Draw(lines []string) error
}
