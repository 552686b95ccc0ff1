package visualizer

import (
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
)

var phosphorTrail = []rune{'·', '•', '✶', '✹'}

// ScreenView renders the face of the tube: fading phosphor impacts plus the
// live beam spot, which follows the impact point on a spring.
type ScreenView struct {
	spring  harmonica.Spring
	cx      float64
	cy      float64
	vx      float64
	vy      float64
	primed  bool
	output  string
	profile colorProfile
}

func NewScreenView() *ScreenView {
	return &ScreenView{
		spring:  harmonica.NewSpring(harmonica.FPS(30), 10.0, 0.7),
		profile: currentColorProfile(),
	}
}

func (v *ScreenView) Name() string { return "screen" }

func (v *ScreenView) Update(f Frame, width, height int) {
	g := f.Geometry
	if width < 4 || height < 2 || g.Validate() != nil {
		v.output = ""
		return
	}

	cols, rows := width, height
	half := g.ScreenSize / 2
	toCell := func(x, y float64) (int, int) {
		x, y = g.ClampToScreen(x, y)
		c := int(math.Round((x + half) / (2 * half) * float64(cols-1)))
		r := int(math.Round((half - y) / (2 * half) * float64(rows-1)))
		return r, c
	}

	chars := make([][]rune, rows)
	glow := make([][]float64, rows)
	for r := range rows {
		chars[r] = make([]rune, cols)
		glow[r] = make([]float64, cols)
		for c := range cols {
			chars[r][c] = ' '
		}
	}
	cr, cc := toCell(0, 0)
	chars[cr][cc] = '+'

	for _, d := range f.Dots {
		r, c := toCell(d.X, d.Y)
		if d.Intensity <= glow[r][c] {
			continue
		}
		glow[r][c] = d.Intensity
		idx := int(clamp01(d.Intensity) * float64(len(phosphorTrail)-1))
		chars[r][c] = phosphorTrail[idx]
	}

	tx, ty := g.ClampToScreen(f.Spot.X, f.Spot.Y)
	if !v.primed {
		v.cx, v.cy = tx, ty
		v.primed = true
	} else {
		v.cx, v.vx = v.spring.Update(v.cx, v.vx, tx)
		v.cy, v.vy = v.spring.Update(v.cy, v.vy, ty)
	}
	sr, sc := toCell(v.cx, v.cy)
	chars[sr][sc] = '✹'
	glow[sr][sc] = 1

	var out strings.Builder
	color := newANSIState(v.profile)
	for r := range rows {
		if r > 0 {
			out.WriteByte('\n')
		}
		for c := range cols {
			ch := chars[r][c]
			switch {
			case ch == ' ':
			case glow[r][c] > 0:
				color.set(&out, phosphorColor(glow[r][c]))
			default:
				color.set(&out, tubeColor)
			}
			out.WriteRune(ch)
		}
		color.reset(&out)
	}
	v.output = out.String()
}

// Spot returns the eased beam position in metres.
func (v *ScreenView) Spot() (float64, float64) {
	return v.cx, v.cy
}

func (v *ScreenView) View() string {
	return v.output
}
