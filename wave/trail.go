package wave

import "fmt"

// Position is a 0-indexed grid cell
type Position struct {
	Row int
	Col int
}

// Trail is a fixed-capacity ring of the most recently painted positions
// Every slot starts at the origin; the cursor advances one slot per record
type Trail struct {
	slots  []Position
	cursor int
}

// NewTrail allocates a trail holding n positions
func NewTrail(n int) (*Trail, error) {
	if n <= 0 {
		return nil, fmt.Errorf("trail length must be positive, got %d", n)
	}
	return &Trail{slots: make([]Position, n)}, nil
}

// RecordAndGetStale stores p in the slot under the cursor, advances the cursor
// and returns the position the slot held before, which is due for erasure
func (t *Trail) RecordAndGetStale(p Position) Position {
	stale := t.slots[t.cursor]
	t.slots[t.cursor] = p
	t.cursor = (t.cursor + 1) % len(t.slots)
	return stale
}

// Len returns the trail capacity
func (t *Trail) Len() int {
	return len(t.slots)
}

// Cursor returns the index of the next slot to be overwritten
func (t *Trail) Cursor() int {
	return t.cursor
}

// At returns the position stored in slot i
func (t *Trail) At(i int) Position {
	return t.slots[i]
}
