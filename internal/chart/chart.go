package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/olivier-w/crtsim/internal/signal"
	"github.com/olivier-w/crtsim/internal/tube"
)

const pageTitle = "Cathode-ray tube: electron trajectories"

// Report is one exported page: the side views of a single flight and the
// screen figure of a Lissajous drive.
type Report struct {
	Engine      tube.Engine
	Accel       float64
	VVertical   float64
	VHorizontal float64
	Drive       signal.Lissajous
	Samples     int
}

// Render builds the charts and writes the HTML page to w.
func (r Report) Render(w io.Writer) error {
	n := r.Samples
	if n < 2 {
		n = 200
	}

	trace, err := r.Engine.Trace(r.Accel, r.VVertical, r.VHorizontal, n)
	if err != nil {
		return fmt.Errorf("failed to trace trajectory: %w", err)
	}

	period := r.Drive.Period()
	if period == 0 {
		period = 1
	}
	figure, err := signal.Figure(r.Engine, r.Accel, r.Drive, 0, period, n*4)
	if err != nil {
		return fmt.Errorf("failed to sample figure: %w", err)
	}

	page := components.NewPage()
	page.PageTitle = pageTitle
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		Trajectories(trace, fmt.Sprintf("Lateral and superior views at %.0f V", r.Accel)),
		Figure(figure, r.Engine.Geometry(), fmt.Sprintf("Screen, %.2f:%.2f Hz", r.Drive.Horizontal.Frequency, r.Drive.Vertical.Frequency)),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

// Trajectories plots both projected offsets (mm) against depth along the
// tube (cm).
func Trajectories(trace []tube.Position, title string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "900px",
			Height:          "500px",
			PageTitle:       pageTitle,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "vertical plates deflect the lateral view, horizontal plates the superior view",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Orient: "horizontal",
			Top:    "bottom",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
				Snap: opts.Bool(true),
			},
		}),
		// AXIS
		charts.WithXAxisOpts(opts.XAxis{
			Name: "depth, cm",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "offset, mm",
			Type:  "value",
			Show:  opts.Bool(true),
			Scale: opts.Bool(true),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	depth := make([]string, len(trace))
	lateral := make([]opts.LineData, len(trace))
	superior := make([]opts.LineData, len(trace))
	for i, p := range trace {
		depth[i] = fmt.Sprintf("%.1f", p.Lateral.Depth*100)
		lateral[i] = opts.LineData{Value: p.Lateral.Offset * 1000, Name: p.Region.Label()}
		superior[i] = opts.LineData{Value: p.Superior.Offset * 1000, Name: p.Region.Label()}
	}
	line.SetXAxis(depth).
		AddSeries("lateral", lateral).
		AddSeries("superior", superior)
	return line
}

// Figure plots screen impacts (cm) on a square the size of the screen.
func Figure(impacts []tube.Impact, g tube.Geometry, title string) *charts.Scatter {
	half := g.ScreenSize / 2 * 100

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#0b1a0f",
			Width:           "520px",
			Height:          "520px",
			PageTitle:       pageTitle,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
			TitleStyle: &opts.TextStyle{
				Color: "#7CFC9A",
			},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "x, cm",
			Type: "value",
			Min:  -half,
			Max:  half,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "y, cm",
			Type: "value",
			Min:  -half,
			Max:  half,
		}),
	)

	data := make([]opts.ScatterData, 0, len(impacts))
	for _, p := range impacts {
		x, y := g.ClampToScreen(p.X, p.Y)
		data = append(data, opts.ScatterData{
			Value:      []float64{x * 100, y * 100},
			SymbolSize: 3,
		})
	}
	scatter.AddSeries("impacts", data)
	return scatter
}
