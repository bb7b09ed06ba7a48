package constants

import "time"

const (
	// Scale
	BasePixelsPerDay = 50.0
	MinZoom          = 1e-3
	DefaultZoom      = 1.0
	ZoomStep         = 1.5

	// Collapse
	CollapsedPixelWidth = 80.0
	CollapsePaddingMult = 2.0

	// Positioning
	MinWidthPercent         = 0.1
	MinWidthPixel           = 1.0
	VisibilityMarginPercent = 10.0

	// Ticks
	TargetTickCount   = 15
	MinTickSpacingPx  = 80.0
	MaxGeneratedTicks = 1000

	// Zoom to fit
	FitPaddingRatio = 0.4

	// Touch gestures
	TouchPanThresholdPx  = 10.0
	QuickTapMaxDuration  = 300 * time.Millisecond
	DoubleTapWindow      = 500 * time.Millisecond
	DoubleTapMaxDistance = 50.0

	// Wheel and trackpad
	WheelZoomSensitivity       = 0.002
	TrackpadZoomSensitivity    = 0.01
	WheelLineHeightPx          = 16.0
	WheelPageHeightPx          = 800.0
	MaxWheelZoomFactorPerEvent = 2.0
)
