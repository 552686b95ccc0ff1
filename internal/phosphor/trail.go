package phosphor

import "sync"

// Dot is a glowing impact on the screen.
type Dot struct {
	X         float64
	Y         float64
	Intensity float64 // 1 when fresh, falling to 0 as it fades
}

type entry struct {
	x, y float64
	born uint64
}

// Trail is a thread-safe circular buffer of screen impacts that fade after
// a fixed number of frames.
type Trail struct {
	buf         []entry
	size        int
	w           int // write position
	len         int // current fill level
	frame       uint64
	persistence int
	mu          sync.Mutex
}

// NewTrail creates a trail holding at most size impacts, each visible for
// persistence frames.
func NewTrail(size, persistence int) *Trail {
	if size < 1 {
		size = 1
	}
	if persistence < 1 {
		persistence = 1
	}
	return &Trail{
		buf:         make([]entry, size),
		size:        size,
		persistence: persistence,
	}
}

// Add records an impact in the current frame, overwriting the oldest impact
// if full.
func (t *Trail) Add(x, y float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.buf[t.w] = entry{x: x, y: y, born: t.frame}
	t.w = (t.w + 1) % t.size
	if t.len < t.size {
		t.len++
	}
}

// Step advances one frame and forgets impacts that have fully faded.
func (t *Trail) Step() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.frame++
	for t.len > 0 {
		oldest := t.buf[(t.w-t.len+t.size)%t.size]
		if t.age(oldest) < t.persistence {
			break
		}
		t.len--
	}
}

// Dots returns the visible impacts, oldest first.
func (t *Trail) Dots() []Dot {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.len == 0 {
		return nil
	}
	out := make([]Dot, 0, t.len)
	start := (t.w - t.len + t.size) % t.size
	for i := range t.len {
		e := t.buf[(start+i)%t.size]
		remaining := t.persistence - t.age(e)
		if remaining <= 0 {
			continue
		}
		out = append(out, Dot{
			X:         e.x,
			Y:         e.y,
			Intensity: float64(remaining) / float64(t.persistence),
		})
	}
	return out
}

// Len returns the number of impacts still held.
func (t *Trail) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.len
}

// Persistence returns how many frames an impact stays visible.
func (t *Trail) Persistence() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.persistence
}

// SetPersistence changes the fade length. Impacts already older than the new
// length disappear on the next Step.
func (t *Trail) SetPersistence(frames int) {
	if frames < 1 {
		frames = 1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.persistence = frames
}

// Clear resets the trail.
func (t *Trail) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.w = 0
	t.len = 0
}

func (t *Trail) age(e entry) int {
	return int(t.frame - e.born)
}
