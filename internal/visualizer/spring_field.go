package visualizer

import "github.com/charmbracelet/harmonica"

// springField eases a row of values toward their targets.
type springField struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
	primed bool
}

func newSpringField(fps int, frequency, damping float64) springField {
	return springField{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (s *springField) resize(n int) {
	if len(s.pos) == n {
		return
	}
	s.pos = make([]float64, n)
	s.vel = make([]float64, n)
	s.primed = false
}

// step moves value i toward target. The first pass after a resize jumps
// straight to the targets.
func (s *springField) step(i int, target float64) float64 {
	if !s.primed {
		s.pos[i] = target
		s.vel[i] = 0
		return target
	}
	p, v := s.spring.Update(s.pos[i], s.vel[i], target)
	s.pos[i] = p
	s.vel[i] = v
	return p
}

// settle marks the end of a pass.
func (s *springField) settle() {
	s.primed = true
}
