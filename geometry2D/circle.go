package geometry2D

import (
	"fmt"
	"math"

	"github.com/notargets/panelflow/types"
)

// Circle returns N equal panels on a circle, starting at angle zero and
// running counter-clockwise unless clockwise is set. The loop has N+1 points
// and its last point equals its first.
func Circle(N int, radius, cx, cy float64, clockwise bool) (loop types.Loop, err error) {
	if N < 3 {
		err = fmt.Errorf("a circle needs at least 3 panels, have %d", N)
		return
	}
	if radius <= 0 {
		err = fmt.Errorf("circle radius must be positive, have %g", radius)
		return
	}
	var (
		X, Y = make([]float64, N+1), make([]float64, N+1)
		dir  = 1.
	)
	if clockwise {
		dir = -1
	}
	for k := 0; k < N; k++ {
		theta := dir * 2 * math.Pi * float64(k) / float64(N)
		X[k] = cx + radius*math.Cos(theta)
		Y[k] = cy + radius*math.Sin(theta)
	}
	X[N], Y[N] = X[0], Y[0]
	loop = types.Loop{X: X, Y: Y}
	return
}
