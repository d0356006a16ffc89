package engine

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/wavetrail/display"
	"github.com/lixenwraith/wavetrail/wave"
)

// LoopStatus is the lifecycle phase of a Loop
type LoopStatus int32

const (
	StatusInitializing LoopStatus = iota
	StatusRunning
	StatusStopped
)

func (s LoopStatus) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusRunning:
		return "running"
	case StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ErrLoopStarted is returned when Run is called on a loop that already ran
var ErrLoopStarted = errors.New("loop already started")

// FrameObserver is notified after each frame reaches the display
// Called on the loop goroutine; must not block
type FrameObserver interface {
	OnFrame(s *wave.State)
}

// Loop draws a frame, advances the frame counter, refreshes the display and
// sleeps for a fixed interval, until its context is cancelled
type Loop struct {
	display   display.Backend
	state     *wave.State
	interval  time.Duration
	clock     Clock
	observers []FrameObserver

	status atomic.Int32
}

// NewLoop creates a loop over state painting on d
func NewLoop(d display.Backend, state *wave.State, interval time.Duration) *Loop {
	return &Loop{
		display:  d,
		state:    state,
		interval: interval,
		clock:    NewTimeProvider(),
	}
}

// SetClock replaces the clock used for frame statistics
func (l *Loop) SetClock(c Clock) {
	l.clock = c
}

// AddObserver registers o to run after every frame
func (l *Loop) AddObserver(o FrameObserver) {
	l.observers = append(l.observers, o)
}

// Status returns the current lifecycle phase
func (l *Loop) Status() LoopStatus {
	return LoopStatus(l.status.Load())
}

// Tick performs one frame: draw, advance counter, refresh, notify
func (l *Loop) Tick() {
	wave.DrawFrame(l.display, l.state)
	l.state.Frame++
	l.display.Refresh()
	for _, o := range l.observers {
		o.OnFrame(l.state)
	}
}

// Run ticks until ctx is cancelled, then returns nil
// Cancellation is checked once per tick, and interrupts the inter-frame sleep
func (l *Loop) Run(ctx context.Context) error {
	if !l.status.CompareAndSwap(int32(StatusInitializing), int32(StatusRunning)) {
		return ErrLoopStarted
	}
	defer l.status.Store(int32(StatusStopped))

	start := l.clock.Now()
	startFrame := l.state.Frame
	log.Printf("loop: running %v on %dx%d, interval %v",
		l.state.Variant, l.state.Geometry.Cols, l.state.Geometry.Rows, l.interval)

	timer := time.NewTimer(l.interval)
	defer timer.Stop()

	for ctx.Err() == nil {
		l.Tick()

		resetTimer(timer, l.interval)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}

	frames := l.state.Frame - startFrame
	log.Printf("loop: stopped after %d frames (%.1f fps)", frames, FPS(frames, l.clock.Now().Sub(start)))
	return nil
}

// resetTimer restarts t for d, discarding a pending fire
func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// FPS returns the average frame rate over elapsed
func FPS(frames uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(frames) / elapsed.Seconds()
}
