package graphics2D

import (
	"fmt"
	"image/color"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/notargets/panelflow/readfiles"
	"github.com/notargets/panelflow/sweep"
)

var barColor = color.RGBA{R: 135, G: 206, B: 235, A: 255}

func (opts PlotOptions) size() (w, h vg.Length) {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultPlotOptions()
		return def.Width, def.Height
	}
	return opts.Width, opts.Height
}

// PlotRanking draws ranked means as horizontal bars with the first entry of
// ranked at the top.
func PlotRanking(ranked []sweep.Ranked, valueLabel string, opts PlotOptions, filename string) (err error) {
	var (
		n     = len(ranked)
		vals  = make(plotter.Values, n)
		names = make([]string, n)
		bars  *plotter.BarChart
	)
	if n == 0 {
		return fmt.Errorf("no ranked results to plot")
	}
	// Nominal positions count up from the bottom
	for i, rk := range ranked {
		vals[n-1-i], names[n-1-i] = rk.Mean, rk.Name
	}
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = valueLabel
	p.Y.Label.Text = "airfoil"

	if bars, err = plotter.NewBarChart(vals, vg.Points(20)); err != nil {
		return
	}
	bars.Horizontal = true
	bars.Color = barColor
	grid := plotter.NewGrid()
	grid.Horizontal.Color = nil
	p.Add(grid, bars)
	p.NominalY(names...)

	w, h := opts.size()
	if err = p.Save(w, h, filename); err != nil {
		return
	}
	log.WithFields(log.Fields{"file": filename, "bars": n}).Debug("ranking plot saved")
	return
}

// PlotPolars draws the lift curve, CL over alpha, of each polar with at least
// one operating point.
func PlotPolars(polars []*readfiles.Polar, opts PlotOptions, filename string) (err error) {
	p := plot.New()
	p.Title.Text = opts.Title
	if len(p.Title.Text) == 0 {
		p.Title.Text = "Lift Curve"
	}
	p.X.Label.Text = "angle of attack, deg"
	p.Y.Label.Text = "CL"
	p.Add(plotter.NewGrid())

	var curves int
	for _, pol := range polars {
		if pol == nil || len(pol.Points) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(pol.Points))
		for i, pp := range pol.Points {
			pts[i].X, pts[i].Y = pp.Alpha, pp.CL
		}
		var (
			line    *plotter.Line
			scatter *plotter.Scatter
		)
		if line, scatter, err = plotter.NewLinePoints(pts); err != nil {
			return
		}
		line.Color = plotutil.Color(curves)
		scatter.Color = plotutil.Color(curves)
		p.Add(line, scatter)
		p.Legend.Add(pol.Airfoil, line, scatter)
		curves++
	}
	if curves == 0 {
		return fmt.Errorf("no polar operating points to plot")
	}
	p.Legend.Top = true

	w, h := opts.size()
	if err = p.Save(w, h, filename); err != nil {
		return
	}
	log.WithFields(log.Fields{"file": filename, "curves": curves}).Debug("lift curve plot saved")
	return
}
