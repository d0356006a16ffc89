package audio

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/wavetrail/constant"
	"github.com/lixenwraith/wavetrail/wave"
)

// Hum is a continuous sine tone whose pitch follows the curve's head row
// The loop sets the target pitch; the speaker goroutine glides toward it
type Hum struct {
	rate beep.SampleRate

	// target holds math.Float64bits of the wanted frequency
	target atomic.Uint64

	// Owned by the speaker goroutine
	freq  float64
	phase float64

	mu      sync.Mutex
	started bool
}

// NewHum creates a silent hum at the base pitch
func NewHum() *Hum {
	h := &Hum{
		rate: beep.SampleRate(constant.HumSampleRate),
		freq: constant.HumBaseFreq,
	}
	h.target.Store(math.Float64bits(constant.HumBaseFreq))
	return h
}

// Start opens the speaker and begins playback
func (h *Hum) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return nil
	}

	if err := speaker.Init(h.rate, h.rate.N(constant.HumBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(&effects.Volume{
		Streamer: h,
		Base:     2,
		Volume:   constant.HumVolume,
	})
	h.started = true
	return nil
}

// Stop silences playback and closes the speaker
func (h *Hum) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	h.started = false
}

// OnFrame retunes the hum to the row of the last column drawn
func (h *Hum) OnFrame(s *wave.State) {
	h.SetTarget(PitchForRow(s.HeadRow(), s.Geometry.Rows))
}

// SetTarget sets the frequency the hum glides toward
func (h *Hum) SetTarget(freq float64) {
	h.target.Store(math.Float64bits(freq))
}

// Target returns the frequency the hum is gliding toward
func (h *Hum) Target() float64 {
	return math.Float64frombits(h.target.Load())
}

// Stream implements beep.Streamer
func (h *Hum) Stream(samples [][2]float64) (n int, ok bool) {
	target := h.Target()
	for i := range samples {
		h.freq += (target - h.freq) * constant.HumGlide

		val := math.Sin(2 * math.Pi * h.phase)
		samples[i][0] = val
		samples[i][1] = val

		h.phase += h.freq / float64(h.rate)
		h.phase -= math.Floor(h.phase) // Keep in [0, 1)
	}
	return len(samples), true
}

// Err implements beep.Streamer
func (h *Hum) Err() error { return nil }

// PitchForRow maps a row to a frequency: bottom row is the base pitch, the top
// row HumOctaves above; rows off the grid clamp to the nearest edge
func PitchForRow(row, rows int) float64 {
	if rows <= 1 {
		return constant.HumBaseFreq
	}
	row = min(max(row, 0), rows-1)
	height := float64(rows-1-row) / float64(rows-1)
	return constant.HumBaseFreq * math.Pow(2, height*constant.HumOctaves)
}
