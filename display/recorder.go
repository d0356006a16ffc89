package display

// Paint is one WriteChar call that landed on the grid
type Paint struct {
	Row   int
	Col   int
	Glyph rune
	Attr  Attr
}

// Recorder is an in-memory Backend that keeps every paint, for tests and
// headless runs
type Recorder struct {
	Geometry Geometry
	// InitErr is returned by Init when set
	InitErr error
	// OnRefresh runs after each Refresh with the running refresh count
	OnRefresh func(refreshes int)

	Paints    []Paint
	Dropped   int
	Refreshes int
	Inited    bool
	Shut      bool

	grid []Paint
}

// NewRecorder creates a recorder reporting a rows x cols grid
func NewRecorder(rows, cols int) *Recorder {
	r := &Recorder{Geometry: Geometry{Rows: rows, Cols: cols}}
	if rows > 0 && cols > 0 {
		r.grid = make([]Paint, rows*cols)
	}
	return r
}

func (r *Recorder) Init() (Geometry, error) {
	if r.InitErr != nil {
		return Geometry{}, r.InitErr
	}
	r.Inited = true
	return r.Geometry, nil
}

func (r *Recorder) WriteChar(row, col int, glyph rune, attr Attr) {
	if !r.Geometry.Contains(row, col) {
		r.Dropped++
		return
	}
	p := Paint{Row: row, Col: col, Glyph: glyph, Attr: attr}
	r.Paints = append(r.Paints, p)
	r.grid[row*r.Geometry.Cols+col] = p
}

func (r *Recorder) Refresh() {
	r.Refreshes++
	if r.OnRefresh != nil {
		r.OnRefresh(r.Refreshes)
	}
}

func (r *Recorder) Shutdown() {
	r.Shut = true
}

// Cell returns the last glyph and attribute painted at (row, col)
// Unpainted and out-of-bounds cells return the zero rune
func (r *Recorder) Cell(row, col int) (rune, Attr) {
	if !r.Geometry.Contains(row, col) {
		return 0, AttrNormal
	}
	p := r.grid[row*r.Geometry.Cols+col]
	return p.Glyph, p.Attr
}

// Reset forgets recorded paints and counters but keeps the grid contents
func (r *Recorder) Reset() {
	r.Paints = r.Paints[:0]
	r.Dropped = 0
}
