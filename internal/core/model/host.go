package model

// FileEvent represents a file system event on an event file.
type FileEvent struct {
	Path      string
	Operation string
}

// InteractionState is the interactive viewer's UI state outside the
// viewport itself.
type InteractionState struct {
	ShowHelp      bool
	ForceRefresh  bool
	StatusMessage string
}
