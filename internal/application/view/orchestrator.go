package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/penwyp/go-timeline-view/internal/core/model"
	"github.com/penwyp/go-timeline-view/internal/core/timeline"
	"github.com/penwyp/go-timeline-view/internal/core/transform"
	"github.com/penwyp/go-timeline-view/internal/core/viewport"
	datacache "github.com/penwyp/go-timeline-view/internal/data/cache"
	"github.com/penwyp/go-timeline-view/internal/data/parser"
	"github.com/penwyp/go-timeline-view/internal/data/watcher"
	"github.com/penwyp/go-timeline-view/internal/presentation/display"
	"github.com/penwyp/go-timeline-view/internal/presentation/interaction"
	"github.com/penwyp/go-timeline-view/internal/presentation/layout"
	"github.com/penwyp/go-timeline-view/internal/util"
)

const (
	// panDivisor: arrow keys pan by a tenth of the viewport.
	panDivisor = 10.0
	// frameOverhead is the number of rendered lines that are not event rows.
	frameOverhead = 9
	idleStatus    = "? help  q quit"
)

// Orchestrator coordinates all components for the view command
type Orchestrator struct {
	config *Config
	labels transform.LabelFormatter

	// Core components
	dataLoader   *DataLoader
	stateManager *StateManager
	view         *timeline.View
	states       *datacache.StateStore

	// UI components
	display DisplayController
	sizer   *layout.Sizer
	input   InputHandler
	columns int
	rows    int

	// Monitoring
	watcher FileMonitor

	newInput   func() (InputHandler, error)
	newWatcher func(files []string) (FileMonitor, error)
}

// NewOrchestrator creates an orchestrator drawing to stdout and reading the
// terminal. days may be nil when event files carry only axis values.
func NewOrchestrator(config *Config, labels transform.LabelFormatter, days parser.DayConverter) (*Orchestrator, error) {
	o, err := newOrchestrator(config, labels, days, os.Stdout, layout.NewSizer())
	if err != nil {
		return nil, err
	}
	o.newInput = func() (InputHandler, error) {
		return interaction.NewKeyboardReader()
	}
	return o, nil
}

func newOrchestrator(config *Config, labels transform.LabelFormatter, days parser.DayConverter,
	out io.Writer, sizer *layout.Sizer) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if labels == nil {
		labels = transform.DayLabels{}
	}

	o := &Orchestrator{
		config:       config,
		labels:       labels,
		dataLoader:   NewDataLoader(config, days),
		stateManager: NewStateManager(),
		display:      display.NewTerminalDisplay(out, config.Mouse),
		sizer:        sizer,
		newWatcher: func(files []string) (FileMonitor, error) {
			return watcher.NewFileWatcher(files)
		},
	}
	o.columns, o.rows = sizer.TerminalSize()
	o.view = NewTimelineView(config, o.viewportWidth(), labels)

	if config.RestoreState {
		states, err := datacache.NewStateStore(config.StateDir)
		if err != nil {
			util.LogWarnf("View state disabled: %v", err)
		} else {
			o.states = states
		}
	}
	return o, nil
}

// View exposes the timeline view.
func (o *Orchestrator) View() *timeline.View {
	return o.view
}

// Load reads the event files, applies the configured initial viewport and
// restores any saved view state.
func (o *Orchestrator) Load() error {
	o.stateManager.SetLoadingState(true, "Loading event files...")
	defer o.stateManager.SetLoadingState(false, "")

	if _, err := o.dataLoader.Resolve(); err != nil {
		return err
	}
	sources, err := o.dataLoader.Load()
	if err != nil {
		return err
	}

	o.view.SetSources(sources...)
	o.stateManager.MarkDataUpdated()
	ApplyConfig(o.view, o.config)
	o.restoreState()
	return nil
}

// Run starts the orchestrator main loop
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting timeline viewer...")

	// Ensure cleanup on exit
	defer o.Close()

	// Load before touching the terminal so errors stay readable
	if err := o.Load(); err != nil {
		return err
	}

	input, err := o.newInput()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	o.input = input
	defer o.input.Close()

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	if err := o.startWatcher(); err != nil {
		util.LogWarnf("File watching disabled: %v", err)
	}
	var fileEvents <-chan model.FileEvent
	if o.watcher != nil {
		fileEvents = o.watcher.Events()
	}

	uiTicker := time.NewTicker(time.Duration(1000/o.config.UIRefreshRate) * time.Millisecond)
	defer uiTicker.Stop()

	o.updateDisplay()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down timeline viewer...")
			return nil

		case <-uiTicker.C:
			if o.checkResize() {
				o.updateDisplay()
			}

		case event := <-fileEvents:
			o.handleFileChange(event)
			o.updateDisplay()

		case ev, ok := <-o.input.Events():
			if !ok {
				util.LogInfo("Input closed, exiting")
				return nil
			}
			if o.handleInput(ev) {
				return nil // Exit requested
			}
			o.updateDisplay()
		}
	}
}

func (o *Orchestrator) handleInput(ev interaction.InputEvent) bool {
	switch {
	case ev.Key != nil:
		return o.handleKeyboard(*ev.Key)
	case ev.Mouse != nil:
		o.handleMouse(*ev.Mouse)
	}
	return false
}

// handleKeyboard handles keyboard events and reports whether to exit.
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	if event.IsInterrupt() {
		return true
	}

	state := o.stateManager.GetInteractionState()
	if state.ShowHelp {
		switch {
		case event.Type == interaction.KeyEscape,
			event.Type == interaction.KeyChar && event.Key == '?':
			o.setHelp(false)
		case event.Type == interaction.KeyChar && (event.Key == 'q' || event.Key == 'Q'):
			return true
		}
		return false // Ignore other keys while help is shown
	}

	ctrl := o.view.Controller()
	step := ctrl.Snapshot().WidthPixels / panDivisor

	switch event.Type {
	case interaction.KeyLeft:
		ctrl.PanBy(-step)
	case interaction.KeyRight:
		ctrl.PanBy(step)
	case interaction.KeyUp:
		ctrl.ZoomIn()
	case interaction.KeyDown:
		ctrl.ZoomOut()
	case interaction.KeyEscape:
		return true
	case interaction.KeyChar:
		switch event.Key {
		case 'q', 'Q':
			return true
		case 'h':
			ctrl.PanBy(-step)
		case 'l':
			ctrl.PanBy(step)
		case '+', '=':
			ctrl.ZoomIn()
		case '-', '_':
			ctrl.ZoomOut()
		case '0':
			ctrl.ZoomReset()
		case 'f', 'F':
			ctrl.ZoomToFit()
		case 'c', 'C':
			o.toggleNearestSegment()
		case 'e', 'E':
			o.view.ExpandAll()
			o.stateManager.SetStatus(fmt.Sprintf("expanded all gaps (%d)", len(o.view.CollapsedSegments())))
		case 'a', 'A':
			o.view.CollapseAll()
			o.stateManager.SetStatus(fmt.Sprintf("collapsed all gaps (%d)", len(o.view.CollapsedSegments())))
		case 'r', 'R':
			o.reload("")
		case '?':
			o.setHelp(true)
		}
	}
	return false
}

func (o *Orchestrator) setHelp(show bool) {
	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.ShowHelp = show
	})
	o.display.Invalidate()
}

// handleMouse maps terminal cells to viewport pixels. Presses in the title
// gutter are ignored.
func (o *Orchestrator) handleMouse(event interaction.MouseEvent) {
	ctrl := o.view.Controller()
	x := o.pixelAt(event.X)

	switch event.Action {
	case interaction.MousePress:
		if event.Button != 0 || event.X < display.DefaultGutter {
			return
		}
		if ctrl.PointerDown(x) {
			o.stateManager.SetDragging(true)
		}
	case interaction.MouseMotion:
		if o.stateManager.Dragging() {
			ctrl.PointerMove(x)
		}
	case interaction.MouseRelease:
		if o.stateManager.Dragging() {
			ctrl.PointerUp(x)
			o.stateManager.SetDragging(false)
		}
	case interaction.MouseWheel:
		ctrl.HandleWheel(viewport.WheelEvent{
			DeltaX:    float64(event.WheelX),
			DeltaY:    float64(event.WheelY),
			DeltaMode: viewport.DeltaLine,
			Ctrl:      event.Ctrl,
			Meta:      event.Meta,
			Shift:     event.Shift,
		})
	}
}

// pixelAt returns the viewport pixel at the middle of a terminal column.
func (o *Orchestrator) pixelAt(col int) float64 {
	return (float64(col-display.DefaultGutter) + 0.5) * o.config.CellWidth
}

func (o *Orchestrator) toggleNearestSegment() {
	seg, ok := o.view.NearestSegment(o.view.CenterTime())
	if !ok {
		o.stateManager.SetStatus("no collapsible gaps")
		return
	}

	verb := "expanded"
	if o.view.ToggleSegment(seg.ID) {
		verb = "collapsed"
	}
	o.stateManager.SetStatus(fmt.Sprintf("gap %s → %s %s",
		o.labels.DateLabel(seg.StartTime), o.labels.DateLabel(seg.EndTime), verb))
}

// reload re-reads event files. An empty path rescans everything.
func (o *Orchestrator) reload(path string) {
	o.stateManager.SetLoadingState(true, "Reloading event files...")
	sources, err := o.dataLoader.Reload(path)
	o.stateManager.SetLoadingState(false, "")
	if err != nil {
		util.LogErrorf("Failed to reload event files: %v", err)
		o.stateManager.SetStatus("reload failed: " + err.Error())
		return
	}

	o.view.SetSources(sources...)
	o.stateManager.MarkDataUpdated()
	o.stateManager.SetStatus(fmt.Sprintf("loaded %d events", len(o.view.Events())))
}

// handleFileChange handles file change events
func (o *Orchestrator) handleFileChange(event model.FileEvent) {
	util.LogDebugf("File changed: %s (%s)", event.Path, event.Operation)
	o.reload(event.Path)
}

// checkResize re-measures the terminal and reports whether it changed.
func (o *Orchestrator) checkResize() bool {
	cols, rows := o.sizer.TerminalSize()
	if cols == o.columns && rows == o.rows {
		return false
	}
	o.columns, o.rows = cols, rows
	o.view.Controller().SetWidth(o.viewportWidth())
	o.display.Invalidate()
	util.LogDebugf("Terminal resized to %dx%d", cols, rows)
	return true
}

func (o *Orchestrator) viewportWidth() float64 {
	cols := o.columns - display.DefaultGutter
	if cols < 1 {
		cols = 1
	}
	return layout.ViewportPixels(cols, o.config.CellWidth)
}

// updateDisplay updates the terminal display
func (o *Orchestrator) updateDisplay() {
	if err := o.display.Draw(o.frame()); err != nil {
		util.LogErrorf("Failed to draw: %v", err)
	}
}

func (o *Orchestrator) frame() []string {
	state := o.stateManager.GetInteractionState()
	if state.ShowHelp {
		return display.HelpLines(o.columns)
	}

	return display.Render(o.view.Layout(), display.RenderOptions{
		CellWidth: o.config.CellWidth,
		Gutter:    display.DefaultGutter,
		MaxEvents: o.maxEvents(),
		Title:     o.title(),
		Status:    o.status(state),
		Color:     o.config.Color,
		Labels:    o.labels,
	})
}

func (o *Orchestrator) maxEvents() int {
	if o.config.MaxEvents > 0 {
		return o.config.MaxEvents
	}
	if n := o.rows - frameOverhead; n > 0 {
		return n
	}
	return 1
}

func (o *Orchestrator) title() string {
	return Title(o.dataLoader.Files())
}

func (o *Orchestrator) status(state model.InteractionState) string {
	if loading, msg := o.stateManager.GetLoadingState(); loading {
		return msg
	}
	if state.StatusMessage != "" {
		return state.StatusMessage + "  |  " + idleStatus
	}
	return idleStatus
}

// restoreState applies the saved viewport for this file set, if any.
func (o *Orchestrator) restoreState() {
	if o.states == nil {
		return
	}
	st, ok := o.states.Get(o.dataLoader.Files())
	if !ok {
		return
	}

	o.view.Expand(st.ExpandedIDs...)
	ctrl := o.view.Controller()
	ctrl.SetZoom(st.ZoomLevel)
	if st.ManuallyPositioned {
		ctrl.SetViewportStart(st.StartTime)
	}
	util.LogInfof("Restored view state saved at %s", time.Unix(st.SavedAt, 0).Format(time.RFC3339))
}

// saveState stores the current viewport for this file set.
func (o *Orchestrator) saveState() error {
	if o.states == nil {
		return nil
	}
	ctrl := o.view.Controller()
	vp := ctrl.Snapshot()
	return o.states.Set(o.dataLoader.Files(), datacache.ViewState{
		StartTime:          vp.StartTime,
		ZoomLevel:          vp.ZoomLevel,
		ManuallyPositioned: ctrl.IsManuallyPositioned(),
		ExpandedIDs:        o.view.ExpandedIDs(),
	})
}

// startWatcher initializes the file watcher
func (o *Orchestrator) startWatcher() error {
	if o.newWatcher == nil {
		return nil
	}
	w, err := o.newWatcher(o.dataLoader.Files())
	if err != nil {
		return err
	}
	o.watcher = w
	return nil
}

// Close cleans up all resources
func (o *Orchestrator) Close() error {
	if err := o.saveState(); err != nil {
		util.LogErrorf("Failed to save view state on close: %v", err)
	}

	// Close file watcher
	if o.watcher != nil {
		if err := o.watcher.Close(); err != nil {
			return fmt.Errorf("failed to close file watcher: %w", err)
		}
		o.watcher = nil
	}
	return nil
}
