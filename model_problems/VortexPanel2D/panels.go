package VortexPanel2D

import (
	"fmt"
	"math"

	"github.com/notargets/panelflow/types"
)

/*
	Panels are stored as flat arrays, one entry per panel, indexed in contour
	order. Panel k runs from node k to node k+1 of the closed loop.
		- XN, YN: first endpoint (node)
		- XC, YC: midpoint, where the boundary condition is enforced (control point)
		- Length: Euclidean length
		- Beta:   atan2(dy, dx) of the panel direction
	Orientation is +1 for a clockwise loop and -1 for a counter-clockwise loop.
*/
type Panels struct {
	N           int
	XN, YN      []float64
	XC, YC      []float64
	Length      []float64
	Beta        []float64
	Orientation float64
}

// NewPanels discretizes a closed loop of M points into M-1 panels. Zero length
// and self-intersecting panels are not rejected here.
func NewPanels(loop types.Loop) (p *Panels, err error) {
	var (
		M = loop.Len()
		N = M - 1
	)
	if N < 1 {
		err = &types.GeometryError{Reason: fmt.Sprintf("%d points cannot form a panel", M)}
		return
	}
	p = &Panels{
		N:           N,
		XN:          make([]float64, N),
		YN:          make([]float64, N),
		XC:          make([]float64, N),
		YC:          make([]float64, N),
		Length:      make([]float64, N),
		Beta:        make([]float64, N),
		Orientation: 1,
	}
	for k := 0; k < N; k++ {
		x1, y1 := loop.X[k], loop.Y[k]
		x2, y2 := loop.X[k+1], loop.Y[k+1]
		dx, dy := x2-x1, y2-y1
		p.XN[k], p.YN[k] = x1, y1
		p.XC[k], p.YC[k] = 0.5*(x1+x2), 0.5*(y1+y2)
		p.Length[k] = math.Hypot(dx, dy)
		p.Beta[k] = math.Atan2(dy, dx)
	}
	if loop.SignedArea() > 0 {
		p.Orientation = -1
	}
	return
}

// Displacement returns the vector from the first to the second endpoint.
func (p *Panels) Displacement(k int) (dx, dy float64) {
	return p.Length[k] * math.Cos(p.Beta[k]), p.Length[k] * math.Sin(p.Beta[k])
}

func (p *Panels) Perimeter() (sum float64) {
	for _, l := range p.Length {
		sum += l
	}
	return
}
