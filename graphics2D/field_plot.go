package graphics2D

import (
	"fmt"
	"image/color"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/notargets/panelflow/model_problems/VortexPanel2D"
	"github.com/notargets/panelflow/types"
)

type PlotOptions struct {
	Title         string
	Width, Height vg.Length
	Arrows        int     // arrows per axis, the field is decimated to fit
	SpeedMax      float64 // speeds are clipped here for color and arrow length
	Colors        int
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{
		Width:    10 * vg.Inch,
		Height:   6 * vg.Inch,
		Arrows:   30,
		SpeedMax: 2.5,
		Colors:   32,
	}
}

// speedGrid adapts a sampled field to plotter.GridXYZ. Singular and clipped
// samples read as SpeedMax.
type speedGrid struct {
	vf   *VortexPanel2D.VelocityField
	sMax float64
}

func (g speedGrid) Dims() (c, r int)   { return g.vf.Nx, g.vf.Ny }
func (g speedGrid) X(c int) float64    { return g.vf.X[c] }
func (g speedGrid) Y(r int) float64    { return g.vf.Y[r] }
func (g speedGrid) Z(c, r int) float64 { return clip(g.vf, c, r, g.sMax) }

func clip(vf *VortexPanel2D.VelocityField, c, r int, sMax float64) float64 {
	ind := vf.Index(c, r)
	s := math.Hypot(vf.U[ind], vf.V[ind])
	if math.IsNaN(s) || s > sMax {
		return sMax
	}
	return s
}

// arrowGrid adapts a decimated field to plotter.FieldXY.
type arrowGrid struct {
	vf     *VortexPanel2D.VelocityField
	stride int
	sMax   float64
}

func newArrowGrid(vf *VortexPanel2D.VelocityField, arrows int, sMax float64) arrowGrid {
	stride := 1
	if n := max(vf.Nx, vf.Ny); arrows > 0 && n > arrows {
		stride = (n + arrows - 1) / arrows
	}
	return arrowGrid{vf: vf, stride: stride, sMax: sMax}
}

func (g arrowGrid) Dims() (c, r int) {
	return (g.vf.Nx + g.stride - 1) / g.stride, (g.vf.Ny + g.stride - 1) / g.stride
}
func (g arrowGrid) X(c int) float64 { return g.vf.X[c*g.stride] }
func (g arrowGrid) Y(r int) float64 { return g.vf.Y[r*g.stride] }

func (g arrowGrid) Vector(c, r int) plotter.XY {
	var (
		i, j = c*g.stride, r*g.stride
		ind  = g.vf.Index(i, j)
		u, v = g.vf.U[ind], g.vf.V[ind]
		s    = math.Hypot(u, v)
	)
	switch {
	case math.IsNaN(s) || math.IsInf(s, 0):
		return plotter.XY{}
	case s > g.sMax:
		u, v = u*g.sMax/s, v*g.sMax/s
	}
	return plotter.XY{X: u, Y: v}
}

// contourXY closes the loop for drawing.
func contourXY(loop types.Loop) (pts plotter.XYs) {
	M := loop.Len()
	pts = make(plotter.XYs, 0, M+1)
	for i := 0; i < M; i++ {
		pts = append(pts, plotter.XY{X: loop.X[i], Y: loop.Y[i]})
	}
	if M > 0 && !loop.IsClosed(types.ClosureTolerance) {
		pts = append(pts, pts[0])
	}
	return
}

/*
	PlotField renders the speed of a sampled velocity field as a heat map,
	overlays decimated velocity arrows and draws the body contour, then saves
	the plot to filename. The image format follows the file extension.
*/
func PlotField(vf *VortexPanel2D.VelocityField, loop types.Loop, opts PlotOptions, filename string) (err error) {
	if vf == nil || vf.Nx < 2 || vf.Ny < 2 {
		return fmt.Errorf("no velocity field to plot")
	}
	def := DefaultPlotOptions()
	opts.Width, opts.Height = opts.size()
	if opts.SpeedMax <= 0 {
		opts.SpeedMax = def.SpeedMax
	}
	if opts.Colors < 2 {
		opts.Colors = def.Colors
	}
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	hm := plotter.NewHeatMap(speedGrid{vf: vf, sMax: opts.SpeedMax}, palette.Heat(opts.Colors, 1))
	hm.Min, hm.Max = 0, opts.SpeedMax
	p.Add(hm)

	field := plotter.NewField(newArrowGrid(vf, opts.Arrows, opts.SpeedMax))
	field.LineStyle.Width = vg.Points(0.5)
	field.LineStyle.Color = color.Black
	p.Add(field)

	if loop.Len() > 0 {
		var body *plotter.Line
		if body, err = plotter.NewLine(contourXY(loop)); err != nil {
			return
		}
		body.LineStyle.Width = vg.Points(1.5)
		body.LineStyle.Color = color.White
		p.Add(body)
	}
	p.X.Min, p.X.Max = vf.Sampling.XBounds[0], vf.Sampling.XBounds[1]
	p.Y.Min, p.Y.Max = vf.Sampling.YBounds[0], vf.Sampling.YBounds[1]

	if err = p.Save(opts.Width, opts.Height, filename); err != nil {
		return
	}
	log.WithFields(log.Fields{"file": filename, "nx": vf.Nx, "ny": vf.Ny}).Debug("field plot saved")
	return
}
