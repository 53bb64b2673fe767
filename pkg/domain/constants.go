package domain

import "time"

// Canonical channel paths the compositor and liveness layer touch.
// Presets may carry additional channels; these are the ones with fixed
// semantics.
const (
	PathEyeLeftOpenness  = "eyes.left.openness"
	PathEyeRightOpenness = "eyes.right.openness"
	PathGazeX            = "gaze.x"
	PathGazeY            = "gaze.y"
	PathMouthX           = "mouth.x"
	PathMouthY           = "mouth.y"
	PathMouthCurve       = "mouth.curve"
)

// SharedJitterPaths is the fixed channel cluster the shared jitter rule
// perturbs with a single draw per evaluation.
var SharedJitterPaths = []string{PathGazeX, PathGazeY, PathMouthX, PathMouthY}

// EyeOpennessPaths are the channels scaled by the blink.
var EyeOpennessPaths = []string{PathEyeLeftOpenness, PathEyeRightOpenness}

// NeutralExpression is the preset every engine starts from.
const NeutralExpression = "neutral"

// Interpolation and scheduling defaults.
const (
	DefaultAlpha = 0.1
	DefaultFPS   = 60

	DefaultFirstBlinkDelay = 3 * time.Second
	DefaultBlinkHold       = 150 * time.Millisecond
	DefaultBlinkMinDelay   = 2 * time.Second
	DefaultBlinkMaxDelay   = 6 * time.Second
	DefaultJitterInterval  = 500 * time.Millisecond

	DefaultReconnectDelay = 3 * time.Second
)

// Expression change sources, recorded on ExpressionEvent.
const (
	SourceManual = "manual"
	SourceRemote = "remote"
)
