package constant

import "time"

// Inspector timing
const (
	// FrameUpdateInterval is the inspector redraw interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// ReloadDebounce coalesces bursts of file-system writes into a single rebuild
	ReloadDebounce = 150 * time.Millisecond

	// EventQueueSize is the buffered capacity of the inspector event channel
	EventQueueSize = 100
)

// Logging
const (
	// LogDir is the directory created for debug logs
	LogDir = "logs"

	// LogFileName is the active debug log file
	LogFileName = "labyrinth.log"

	// MaxLogSize triggers rotation of the debug log to a timestamped file
	MaxLogSize = 10 * 1024 * 1024
)

// Reload cue
const (
	// ChimeSampleRate is the audio sample rate used for reload chimes
	ChimeSampleRate = 44100

	// ChimeDuration is the length of a reload chime
	ChimeDuration = 50 * time.Millisecond

	// ChimeOKFrequency is played after a successful reload
	ChimeOKFrequency = 880

	// ChimeFailFrequency is played after a failed reload
	ChimeFailFrequency = 220
)
