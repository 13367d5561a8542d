package types

import (
	"fmt"
	"math"
)

// ClosureTolerance is the largest gap between the first and last point of a
// loop that still counts as closed.
const ClosureTolerance = 1.e-9

// Loop is an ordered boundary contour. The ordering is preserved end to end,
// self-intersection is the caller's responsibility.
type Loop struct {
	X, Y []float64
}

func NewLoop(X, Y []float64) (l Loop) {
	if len(X) != len(Y) {
		panic(fmt.Errorf("loop coordinate length mismatch: %d x, %d y", len(X), len(Y)))
	}
	l = Loop{
		X: append([]float64(nil), X...),
		Y: append([]float64(nil), Y...),
	}
	return
}

func (l Loop) Len() int { return len(l.X) }

func (l Loop) IsClosed(tol float64) bool {
	M := len(l.X)
	if M < 2 {
		return false
	}
	return math.Hypot(l.X[M-1]-l.X[0], l.Y[M-1]-l.Y[0]) <= tol
}

// Close returns the loop with the first point appended when the first and
// last points are farther apart than tol. The returned loop is one point
// longer in that case. A loop that is degenerate after closure is rejected
// with a GeometryError.
func (l Loop) Close(tol float64) (lc Loop, err error) {
	var (
		M = len(l.X)
	)
	if M == 0 {
		err = &GeometryError{Reason: "no coordinates to close"}
		return
	}
	lc = NewLoop(l.X, l.Y)
	if !l.IsClosed(tol) {
		lc.X = append(lc.X, l.X[0])
		lc.Y = append(lc.Y, l.Y[0])
	}
	if n := lc.distinctPoints(); n < 3 {
		err = &GeometryError{
			Reason: fmt.Sprintf("closed loop has %d distinct points, need at least 3", n)}
		return
	}
	if area := lc.SignedArea(); area == 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		err = &GeometryError{
			Reason: fmt.Sprintf("closed loop encloses no area (signed area %g)", area)}
		return
	}
	return
}

// SignedArea is the shoelace area of the loop treated as closed: positive for
// counter-clockwise ordering, negative for clockwise.
func (l Loop) SignedArea() (area float64) {
	var (
		M = len(l.X)
	)
	if M < 3 {
		return 0
	}
	for i := 0; i < M; i++ {
		ip := (i + 1) % M
		area += l.X[i]*l.Y[ip] - l.X[ip]*l.Y[i]
	}
	return 0.5 * area
}

func (l Loop) distinctPoints() int {
	seen := make(map[[2]float64]struct{}, len(l.X))
	for i := range l.X {
		seen[[2]float64{l.X[i], l.Y[i]}] = struct{}{}
	}
	return len(seen)
}
