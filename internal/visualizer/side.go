package visualizer

import (
	"math"
	"strings"

	"github.com/olivier-w/crtsim/internal/tube"
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellWall
	cellPlate
	cellBeam
	cellScreen
	cellElectron
)

// SideView draws the tube seen from the side (lateral, vertical plates) or
// from above (superior, horizontal plates). The beam path is drawn with
// braille dots and eased toward new voltages with a spring per dot column.
type SideView struct {
	axis    tube.Axis
	beam    springField
	output  string
	profile colorProfile
}

func NewSideView(axis tube.Axis) *SideView {
	return &SideView{
		axis:    axis,
		beam:    newSpringField(30, 9.0, 0.9),
		profile: currentColorProfile(),
	}
}

func (s *SideView) Name() string {
	if s.axis == tube.Horizontal {
		return "superior"
	}
	return "lateral"
}

func (s *SideView) Update(f Frame, width, height int) {
	g := f.Geometry
	if width < 8 || height < 3 || len(f.Trace) < 2 || g.Validate() != nil {
		s.output = ""
		return
	}

	cols := width - 1 // last column is the screen face
	rows := height
	grid := newBrailleGrid(cols, rows)
	dotCols, dotRows := grid.dotSize()
	length := g.Length()
	half := g.ScreenSize / 2

	toDotRow := func(offset float64) int {
		return int(math.Round((half - offset) / (2 * half) * float64(dotRows-1)))
	}
	toCol := func(depth float64) int {
		return int(depth / length * float64(dotCols-1) / 2)
	}

	kinds := make([][]cellKind, rows)
	chars := make([][]rune, rows)
	for r := range rows {
		kinds[r] = make([]cellKind, width)
		chars[r] = make([]rune, width)
		for c := range width {
			chars[r][c] = ' '
		}
	}
	put := func(r, c int, ch rune, k cellKind) {
		if r < 0 || r >= rows || c < 0 || c >= width {
			return
		}
		chars[r][c] = ch
		kinds[r][c] = k
	}

	center := toDotRow(0) / 4
	for c := range cols {
		put(0, c, '─', cellWall)
		put(rows-1, c, '─', cellWall)
	}

	start := g.GunToVertical
	if s.axis == tube.Horizontal {
		start += g.PlateLength + g.PlateGap
	}
	top := toDotRow(g.PlateSeparation/2) / 4
	bottom := toDotRow(-g.PlateSeparation/2) / 4
	topRune, bottomRune := '━', '━'
	if bottom-top < 2 {
		top, bottom = center-1, center+1
		topRune, bottomRune = '▁', '▔'
	}
	for c := toCol(start); c <= toCol(start+g.PlateLength); c++ {
		put(top, c, topRune, cellPlate)
		put(bottom, c, bottomRune, cellPlate)
	}

	for r := range rows {
		put(r, cols, '┃', cellScreen)
	}

	s.beam.resize(dotCols)
	for dc := range dotCols {
		depth := length * float64(dc) / float64(dotCols-1)
		offset := s.beam.step(dc, offsetAtDepth(f.Trace, depth, length, s.axis))
		grid.set(dc, toDotRow(offset))
	}
	s.beam.settle()

	for r := range rows {
		for c := range cols {
			if ch, lit := grid.cell(r, c); lit && kinds[r][c] != cellPlate {
				put(r, c, ch, cellBeam)
			}
		}
	}

	put(center, 0, '▶', cellWall)

	if e := f.Electron; e != nil {
		d := e.Lateral
		if s.axis == tube.Horizontal {
			d = e.Superior
		}
		if d.Depth <= length {
			dr := toDotRow(d.Offset)
			if dr >= 0 && dr < dotRows {
				put(dr/4, toCol(d.Depth), '●', cellElectron)
			}
		}
	}

	s.output = s.render(chars, kinds)
}

func (s *SideView) render(chars [][]rune, kinds [][]cellKind) string {
	var out strings.Builder
	color := newANSIState(s.profile)
	for r := range chars {
		if r > 0 {
			out.WriteByte('\n')
		}
		for c, ch := range chars[r] {
			switch kinds[r][c] {
			case cellWall, cellScreen:
				color.set(&out, tubeColor)
			case cellPlate:
				color.set(&out, plateColor)
			case cellBeam:
				color.set(&out, beamColor)
			case cellElectron:
				color.set(&out, electronColor)
			default:
				out.WriteRune(ch)
				continue
			}
			out.WriteRune(ch)
		}
		color.reset(&out)
	}
	return out.String()
}

func (s *SideView) View() string {
	return s.output
}

// offsetAtDepth interpolates the trace, whose samples are evenly spaced in
// depth from the gun to the screen.
func offsetAtDepth(trace []tube.Position, depth, length float64, axis tube.Axis) float64 {
	at := func(i int) float64 {
		if axis == tube.Horizontal {
			return trace[i].Superior.Offset
		}
		return trace[i].Lateral.Offset
	}
	x := clamp01(depth/length) * float64(len(trace)-1)
	lo := int(math.Floor(x))
	if lo >= len(trace)-1 {
		return at(len(trace) - 1)
	}
	t := x - float64(lo)
	return at(lo)*(1-t) + at(lo+1)*t
}
