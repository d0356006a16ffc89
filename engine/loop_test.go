package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/wavetrail/display"
	"github.com/lixenwraith/wavetrail/wave"
)

// frameSpy records the frame counter each time it is notified
type frameSpy struct {
	frames []uint64
}

func (s *frameSpy) OnFrame(st *wave.State) {
	s.frames = append(s.frames, st.Frame)
}

func newTestLoop(t *testing.T, rows, cols int, interval time.Duration) (*Loop, *display.Recorder, *wave.State) {
	t.Helper()
	rec := display.NewRecorder(rows, cols)
	geo, err := rec.Init()
	if err != nil {
		t.Fatalf("recorder Init failed: %v", err)
	}
	state, err := wave.NewState(geo, wave.Sine)
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	return NewLoop(rec, state, interval), rec, state
}

func TestLoopStopsOnCancel(t *testing.T) {
	loop, rec, state := newTestLoop(t, 24, 80, time.Millisecond)
	spy := &frameSpy{}
	loop.AddObserver(spy)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const frames = 5
	paintsAtRefresh := []int{}
	rec.OnRefresh = func(n int) {
		// Counter is advanced before the display is refreshed
		if state.Frame != uint64(n) {
			t.Errorf("refresh %d saw frame counter %d", n, state.Frame)
		}
		paintsAtRefresh = append(paintsAtRefresh, len(rec.Paints))
		if n == frames {
			cancel()
		}
	}

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run returned %v", err)
	}

	if state.Frame != frames {
		t.Errorf("frame counter = %d, want %d", state.Frame, frames)
	}
	if rec.Refreshes != frames {
		t.Errorf("refreshes = %d, want %d", rec.Refreshes, frames)
	}
	for i := 1; i < len(paintsAtRefresh); i++ {
		if paintsAtRefresh[i] <= paintsAtRefresh[i-1] {
			t.Errorf("no paints between refresh %d and %d", i, i+1)
		}
	}
	if len(spy.frames) != frames {
		t.Fatalf("observer called %d times, want %d", len(spy.frames), frames)
	}
	for i, f := range spy.frames {
		if f != uint64(i+1) {
			t.Errorf("observer call %d saw frame %d, want %d", i, f, i+1)
		}
	}
	if loop.Status() != StatusStopped {
		t.Errorf("status = %v, want stopped", loop.Status())
	}
}

func TestLoopPreCancelledDrawsNothing(t *testing.T) {
	loop, rec, state := newTestLoop(t, 24, 80, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if state.Frame != 0 || rec.Refreshes != 0 || len(rec.Paints) != 0 {
		t.Errorf("frame=%d refreshes=%d paints=%d, want all zero", state.Frame, rec.Refreshes, len(rec.Paints))
	}
}

func TestLoopCancelInterruptsSleep(t *testing.T) {
	loop, rec, _ := newTestLoop(t, 24, 80, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.OnRefresh = func(int) { go cancel() }

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation during sleep")
	}
	if rec.Refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", rec.Refreshes)
	}
}

func TestLoopPacing(t *testing.T) {
	const interval = 10 * time.Millisecond
	loop, rec, _ := newTestLoop(t, 24, 80, interval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.OnRefresh = func(n int) {
		if n == 4 {
			cancel()
		}
	}

	start := time.Now()
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run returned %v", err)
	}

	// Three full sleeps separate four frames
	if elapsed := time.Since(start); elapsed < 3*interval {
		t.Errorf("4 frames took %v, want at least %v", elapsed, 3*interval)
	}
}

func TestLoopRunTwice(t *testing.T) {
	loop, _, _ := newTestLoop(t, 24, 80, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := loop.Run(ctx); err != nil {
		t.Fatalf("first Run returned %v", err)
	}
	if err := loop.Run(ctx); !errors.Is(err, ErrLoopStarted) {
		t.Errorf("second Run returned %v, want ErrLoopStarted", err)
	}
}

func TestLoopTick(t *testing.T) {
	loop, rec, state := newTestLoop(t, 4, 10, time.Millisecond)
	if loop.Status() != StatusInitializing {
		t.Errorf("status before Run = %v", loop.Status())
	}

	loop.Tick()
	loop.Tick()

	if state.Frame != 2 || rec.Refreshes != 2 {
		t.Errorf("frame=%d refreshes=%d, want 2 and 2", state.Frame, rec.Refreshes)
	}
	if state.Trail.Cursor() != (2*10)%8 {
		t.Errorf("trail cursor = %d, want %d", state.Trail.Cursor(), (2*10)%8)
	}
}

func TestFPS(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	start := clock.Now()
	clock.Advance(2 * time.Second)

	if got := FPS(80, clock.Now().Sub(start)); got != 40 {
		t.Errorf("FPS = %v, want 40", got)
	}
	if got := FPS(10, 0); got != 0 {
		t.Errorf("FPS with zero elapsed = %v, want 0", got)
	}
}

func TestLoopStatusString(t *testing.T) {
	tests := map[LoopStatus]string{
		StatusInitializing: "initializing",
		StatusRunning:      "running",
		StatusStopped:      "stopped",
		LoopStatus(42):     "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", s, got, want)
		}
	}
}
