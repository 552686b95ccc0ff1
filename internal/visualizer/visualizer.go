package visualizer

import (
	"github.com/olivier-w/crtsim/internal/phosphor"
	"github.com/olivier-w/crtsim/internal/tube"
)

// Frame is everything the views need to draw one tick.
type Frame struct {
	Geometry tube.Geometry
	Trace    []tube.Position // current flight, gun to screen
	Electron *tube.Position  // nil hides the moving electron
	Spot     tube.Impact     // latest impact
	Dots     []phosphor.Dot
}

// Visualizer renders one projection of the tube as text.
type Visualizer interface {
	Name() string
	Update(f Frame, width, height int)
	View() string
}

// Views returns the three tube views in display order.
func Views() []Visualizer {
	return []Visualizer{
		NewSideView(tube.Vertical),
		NewSideView(tube.Horizontal),
		NewScreenView(),
	}
}
