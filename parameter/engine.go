package parameter

import "time"

// Loop Timing
const (
	// FrameInterval is the frame callback rate interval (~60 FPS)
	FrameInterval = 16 * time.Millisecond

	// TaskQueueSize is the capacity of the loop task channel
	TaskQueueSize = 256

	// EventChannelSize is the capacity of the host input event channel
	EventChannelSize = 256
)
