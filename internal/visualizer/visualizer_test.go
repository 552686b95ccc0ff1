package visualizer

import (
	"strings"
	"testing"

	"github.com/olivier-w/crtsim/internal/phosphor"
	"github.com/olivier-w/crtsim/internal/tube"
)

func testFrame(t *testing.T, vVertical, vHorizontal float64) Frame {
	t.Helper()
	e := tube.Default()
	trace, err := e.Trace(1000, vVertical, vHorizontal, 128)
	if err != nil {
		t.Fatal(err)
	}
	impact, err := e.FinalScreenPosition(1000, vVertical, vHorizontal)
	if err != nil {
		t.Fatal(err)
	}
	return Frame{Geometry: e.Geometry(), Trace: trace, Spot: impact}
}

func isBraille(r rune) bool {
	return r > 0x2800 && r <= 0x28FF
}

// beamRow returns the row holding braille dots in the given column.
func beamRow(t *testing.T, view string, col int) int {
	t.Helper()
	for r, line := range strings.Split(view, "\n") {
		runes := []rune(line)
		if col < len(runes) && isBraille(runes[col]) {
			return r
		}
	}
	t.Fatalf("no beam in column %d:\n%s", col, view)
	return -1
}

func TestSideViewStraightBeam(t *testing.T) {
	v := NewSideView(tube.Vertical)
	v.profile = colorNone
	v.Update(testFrame(t, 0, 0), 40, 9)

	out := v.View()
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 9 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if n := len([]rune(line)); n != 40 {
			t.Fatalf("expected 40 columns, got %d in %q", n, line)
		}
	}
	if !strings.Contains(out, "▶") || !strings.Contains(out, "┃") {
		t.Fatalf("expected gun and screen markers:\n%s", out)
	}
	if got := beamRow(t, out, 38); got != 4 {
		t.Fatalf("expected undeflected beam on the centre row, got row %d:\n%s", got, out)
	}
}

func TestSideViewDeflectsTowardPositivePlate(t *testing.T) {
	lateral := NewSideView(tube.Vertical)
	lateral.profile = colorNone
	superior := NewSideView(tube.Horizontal)
	superior.profile = colorNone

	f := testFrame(t, 100, 0)
	lateral.Update(f, 40, 9)
	superior.Update(f, 40, 9)

	if got := beamRow(t, lateral.View(), 38); got >= 4 {
		t.Fatalf("expected lateral beam above centre, got row %d:\n%s", got, lateral.View())
	}
	if got := beamRow(t, superior.View(), 38); got != 4 {
		t.Fatalf("expected superior beam on centre row, got row %d:\n%s", got, superior.View())
	}
	if lateral.Name() != "lateral" || superior.Name() != "superior" {
		t.Fatalf("unexpected names %q and %q", lateral.Name(), superior.Name())
	}
}

func TestSideViewSpringEasesChanges(t *testing.T) {
	v := NewSideView(tube.Vertical)
	v.profile = colorNone
	v.Update(testFrame(t, 0, 0), 40, 9)
	v.Update(testFrame(t, 100, 0), 40, 9)

	last := len(v.beam.pos) - 1
	target := testFrame(t, 100, 0).Trace
	want := target[len(target)-1].Lateral.Offset
	if got := v.beam.pos[last]; got <= 0 || got >= want {
		t.Fatalf("expected eased offset between 0 and %g, got %g", want, got)
	}
}

func TestSideViewRejectsTinyArea(t *testing.T) {
	v := NewSideView(tube.Vertical)
	v.Update(testFrame(t, 0, 0), 4, 2)
	if v.View() != "" {
		t.Fatalf("expected empty view, got %q", v.View())
	}
}

func TestSideViewElectronMarker(t *testing.T) {
	v := NewSideView(tube.Horizontal)
	v.profile = colorNone
	f := testFrame(t, 0, 0)
	e := f.Trace[len(f.Trace)/2]
	f.Electron = &e
	v.Update(f, 40, 9)
	if !strings.Contains(v.View(), "●") {
		t.Fatalf("expected electron marker:\n%s", v.View())
	}
}

func TestScreenViewSpotAndDots(t *testing.T) {
	v := NewScreenView()
	v.profile = colorNone
	f := testFrame(t, 0, 0)
	f.Dots = []phosphor.Dot{
		{X: 0.1, Y: 0.1, Intensity: 1},
		{X: -0.1, Y: -0.1, Intensity: 0.1},
	}
	v.Update(f, 21, 11)

	lines := strings.Split(v.View(), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected 11 rows, got %d", len(lines))
	}
	if got := []rune(lines[5])[10]; got != '✹' {
		t.Fatalf("expected spot at centre, got %q:\n%s", got, v.View())
	}
	if got := []rune(lines[1])[18]; got != '✹' {
		t.Fatalf("expected bright dot top right, got %q:\n%s", got, v.View())
	}
	if got := []rune(lines[9])[2]; got != '·' {
		t.Fatalf("expected faint dot bottom left, got %q:\n%s", got, v.View())
	}
}

func TestScreenViewClampsOffscreenSpot(t *testing.T) {
	v := NewScreenView()
	v.profile = colorNone
	f := testFrame(t, 0, 0)
	f.Spot = tube.Impact{X: 5, Y: -5}
	v.Update(f, 21, 11)
	x, y := v.Spot()
	if x != 0.125 || y != -0.125 {
		t.Fatalf("expected spot clamped to corner, got (%g, %g)", x, y)
	}
	lines := strings.Split(v.View(), "\n")
	if got := []rune(lines[10])[20]; got != '✹' {
		t.Fatalf("expected spot in bottom right corner:\n%s", v.View())
	}
}

func TestViewsOrder(t *testing.T) {
	var names []string
	for _, v := range Views() {
		names = append(names, v.Name())
	}
	if got := strings.Join(names, ","); got != "lateral,superior,screen" {
		t.Fatalf("unexpected views %s", got)
	}
}

func TestBrailleGridSetAndCell(t *testing.T) {
	g := newBrailleGrid(2, 1)
	g.set(0, 0)
	g.set(3, 3)
	g.set(-1, 0)
	g.set(4, 0)

	if ch, lit := g.cell(0, 0); !lit || ch != '⠁' {
		t.Fatalf("expected top-left dot, got %q lit=%v", ch, lit)
	}
	if ch, lit := g.cell(0, 1); !lit || ch != '⢀' {
		t.Fatalf("expected bottom-right dot, got %q lit=%v", ch, lit)
	}
	if cols, rows := g.dotSize(); cols != 4 || rows != 4 {
		t.Fatalf("expected 4x4 dots, got %dx%d", cols, rows)
	}
}
