package tube

import (
	"math"
	"testing"
)

func TestRegionTimeTableNonDecreasing(t *testing.T) {
	e := Default()
	for _, accel := range []float64{1, 500, 1000, 2000, 25000} {
		speed, err := e.InitialSpeed(accel)
		if err != nil {
			t.Fatal(err)
		}
		b := e.RegionTable(speed).Boundaries()
		if b[0] != 0 {
			t.Fatalf("expected t0 = 0, got %g", b[0])
		}
		for i := 1; i < len(b); i++ {
			if b[i] < b[i-1] {
				t.Fatalf("boundary %d (%g) precedes boundary %d (%g) at %g V", i, b[i], i-1, b[i-1], accel)
			}
		}
	}
}

func TestRegionTimeTableValues(t *testing.T) {
	table := NewRegionTimeTable(2, DefaultGeometry())
	want := [6]float64{0, 0.025, 0.05, 0.065, 0.09, 0.165}
	got := table.Boundaries()
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("boundary %d: expected %g, got %g", i, want[i], got[i])
		}
	}
}

func TestClassifyBoundaries(t *testing.T) {
	table := NewRegionTimeTable(1, DefaultGeometry())
	tests := []struct {
		at   float64
		want Region
	}{
		{-1, InCanyon},
		{0, InCanyon},
		{0.01, BeforeVerticalPlates},
		{0.05, BeforeVerticalPlates},
		{0.07, InVerticalPlates},
		{0.10, InVerticalPlates},
		{0.11, BetweenPlates},
		{0.129, BetweenPlates},
		{0.15, InHorizontalPlates},
		{0.18, InHorizontalPlates},
		{0.2, AfterHorizontalPlates},
		{0.329, AfterHorizontalPlates},
		{0.331, InScreen},
		{5, InScreen},
	}
	for _, tt := range tests {
		if got := table.Classify(tt.at); got != tt.want {
			t.Errorf("Classify(%g): expected %v, got %v", tt.at, tt.want, got)
		}
	}
}

func TestClassifyTiesGoToEarlierRegion(t *testing.T) {
	speed, _ := DefaultPhysics().InitialSpeed(1000)
	table := NewRegionTimeTable(speed, DefaultGeometry())
	for i, b := range table.Boundaries() {
		if got := table.Classify(b); got != Region(i) {
			t.Errorf("boundary %d (%g): expected %v, got %v", i, b, Region(i), got)
		}
	}
}

func TestClassifyIsMonotonic(t *testing.T) {
	speed, _ := DefaultPhysics().InitialSpeed(1000)
	table := NewRegionTimeTable(speed, DefaultGeometry())
	prev := InCanyon
	seen := map[Region]bool{}
	steps := 10000
	for i := 0; i <= steps; i++ {
		at := table.ReachScreen * 1.2 * float64(i) / float64(steps)
		r := table.Classify(at)
		if r < prev {
			t.Fatalf("region went backwards at %g: %v after %v", at, r, prev)
		}
		if r > prev+1 {
			t.Fatalf("region skipped at %g: %v after %v", at, r, prev)
		}
		prev = r
		seen[r] = true
	}
	for r := InCanyon; r <= InScreen; r++ {
		if !seen[r] {
			t.Errorf("region %v never reached", r)
		}
	}
}

func TestRegionString(t *testing.T) {
	if got := InVerticalPlates.String(); got != "in_vertical_plates" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := Region(42).String(); got != "unknown" {
		t.Fatalf("unexpected name for out-of-range region %q", got)
	}
	if got := AfterHorizontalPlates.Label(); got != "drift to screen" {
		t.Fatalf("unexpected label %q", got)
	}
}
