// Package export renders stored solve results to plot images and JSON.
package export

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotSeries renders the named output series against time into an image
// file; the path suffix selects the format (.png, .svg, .pdf).
func PlotSeries(path, title string, times []float64, outputs map[string][]float64, names []string) error {
	if len(names) == 0 {
		names = make([]string, 0, len(outputs))
		for name := range outputs {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time"
	p.Legend.Top = true

	for i, name := range names {
		series, ok := outputs[name]
		if !ok {
			return fmt.Errorf("no output series %q", name)
		}
		if len(series) != len(times) {
			return fmt.Errorf("series %q has %d samples, want %d", name, len(series), len(times))
		}
		pts := make(plotter.XYs, len(times))
		for j := range times {
			pts[j].X = times[j]
			pts[j].Y = series[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(name, line)
	}

	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// PlotVoltage renders a single voltage-versus-time curve.
func PlotVoltage(path, title string, times, voltage []float64) error {
	return PlotSeries(path, title, times,
		map[string][]float64{"Terminal voltage": voltage}, []string{"Terminal voltage"})
}
