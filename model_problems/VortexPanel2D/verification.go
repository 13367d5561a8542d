package VortexPanel2D

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/notargets/panelflow/geometry2D"
)

// CylinderError compares a solved circulation with the exact surface speed
// of potential flow around a unit circle at zero incidence.
type CylinderError struct {
	N        int
	MaxGamma float64 // max |gamma|, exact value 2
	MaxError float64
	RMSError float64
}

/*
	CylinderStudy solves the flow around a unit circle of N panels and measures
	gamma against the exact sheet strength at each control point:
		gamma_exact = -2*sin(theta_c)
	with theta_c the polar angle of the control point. Vortices on the upper
	half turn clockwise whichever way the contour is traversed.
*/
func CylinderStudy(N, ProcLimit int) (ce CylinderError, err error) {
	var (
		res *Result
	)
	loop, err := geometry2D.Circle(N, 1, 0, 0, false)
	if err != nil {
		return
	}
	if res, err = Run(loop, Config{ProcLimit: ProcLimit, SkipField: true}); err != nil {
		return
	}
	p := res.Panels
	ce.N = N
	var sumSq float64
	for i := 0; i < p.N; i++ {
		g := res.Gamma.AtVec(i)
		exact := -2 * math.Sin(math.Atan2(p.YC[i], p.XC[i]))
		e := math.Abs(g - exact)
		ce.MaxGamma = math.Max(ce.MaxGamma, math.Abs(g))
		ce.MaxError = math.Max(ce.MaxError, e)
		sumSq += e * e
	}
	ce.RMSError = math.Sqrt(sumSq / float64(p.N))
	return
}

// WriteConvergenceCSV writes a header and one "title,N,maxGamma,rmsError,maxError"
// row per study.
func WriteConvergenceCSV(w io.Writer, title string, studies []CylinderError) (err error) {
	var (
		cw = csv.NewWriter(w)
		f  = func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	)
	if err = cw.Write([]string{"title", "N", "maxGamma", "rmsError", "maxError"}); err != nil {
		return
	}
	for _, ce := range studies {
		if err = cw.Write([]string{title, strconv.Itoa(ce.N), f(ce.MaxGamma), f(ce.RMSError), f(ce.MaxError)}); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}
