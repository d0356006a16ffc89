package constant

import "time"

// Hum Tone
const (
	// HumSampleRate is the speaker sample rate in Hz
	HumSampleRate = 44100

	// HumBufferDuration is the speaker buffer length; shorter is more responsive
	HumBufferDuration = 100 * time.Millisecond

	// HumBaseFreq is the pitch of the bottom row
	HumBaseFreq = 220.0

	// HumOctaves is the pitch span from bottom row to top row
	HumOctaves = 2.0

	// HumGlide is the per-sample fraction the pitch moves toward its target
	HumGlide = 0.0005

	// HumVolume is the beep effects.Volume level (base 2)
	HumVolume = -3.0
)
