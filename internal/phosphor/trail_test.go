package phosphor

import (
	"math"
	"testing"
)

func TestTrailFadesAfterPersistence(t *testing.T) {
	tr := NewTrail(16, 3)
	tr.Add(0.01, 0.02)

	dots := tr.Dots()
	if len(dots) != 1 || dots[0].Intensity != 1 {
		t.Fatalf("expected one fresh dot, got %+v", dots)
	}

	tr.Step()
	tr.Step()
	dots = tr.Dots()
	if len(dots) != 1 {
		t.Fatalf("expected dot to survive two frames, got %d", len(dots))
	}
	if math.Abs(dots[0].Intensity-1.0/3) > 1e-12 {
		t.Fatalf("expected intensity 1/3, got %g", dots[0].Intensity)
	}

	tr.Step()
	if got := tr.Len(); got != 0 {
		t.Fatalf("expected trail empty after persistence, got %d", got)
	}
	if dots := tr.Dots(); dots != nil {
		t.Fatalf("expected no dots, got %+v", dots)
	}
}

func TestTrailOverwritesOldest(t *testing.T) {
	tr := NewTrail(3, 100)
	for i := range 5 {
		tr.Add(float64(i), 0)
	}
	dots := tr.Dots()
	if len(dots) != 3 {
		t.Fatalf("expected 3 dots, got %d", len(dots))
	}
	for i, want := range []float64{2, 3, 4} {
		if dots[i].X != want {
			t.Fatalf("dot %d: expected x=%g, got %g", i, want, dots[i].X)
		}
	}
}

func TestTrailOrderAndIntensity(t *testing.T) {
	tr := NewTrail(8, 4)
	tr.Add(1, 1)
	tr.Step()
	tr.Add(2, 2)
	dots := tr.Dots()
	if len(dots) != 2 {
		t.Fatalf("expected 2 dots, got %d", len(dots))
	}
	if dots[0].X != 1 || dots[1].X != 2 {
		t.Fatalf("expected oldest first, got %+v", dots)
	}
	if dots[0].Intensity >= dots[1].Intensity {
		t.Fatalf("expected older dot to be dimmer, got %+v", dots)
	}
}

func TestTrailSetPersistenceAndClear(t *testing.T) {
	tr := NewTrail(8, 10)
	tr.Add(0, 0)
	tr.Step()
	tr.Step()
	tr.SetPersistence(2)
	tr.Step()
	if got := tr.Len(); got != 0 {
		t.Fatalf("expected shortened persistence to expire dot, got %d", got)
	}

	tr.SetPersistence(0)
	if got := tr.Persistence(); got != 1 {
		t.Fatalf("expected persistence clamped to 1, got %d", got)
	}

	tr.Add(1, 1)
	tr.Add(2, 2)
	tr.Clear()
	if got := tr.Len(); got != 0 {
		t.Fatalf("expected empty trail after Clear, got %d", got)
	}
}
