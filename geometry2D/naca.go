package geometry2D

import (
	"fmt"
	"math"
	"strconv"

	"github.com/notargets/panelflow/types"
)

// NACA4 describes a NACA 4-digit section: maximum camber and its chordwise
// position as fractions of chord, and thickness as a fraction of chord.
type NACA4 struct {
	Code                   string
	Camber, Position, TMax float64
}

func ParseNACA4(code string) (n NACA4, err error) {
	if len(code) != 4 {
		err = fmt.Errorf("NACA 4-digit code must have 4 digits, have %q", code)
		return
	}
	var (
		digits [4]int
	)
	for i := 0; i < 4; i++ {
		if digits[i], err = strconv.Atoi(code[i : i+1]); err != nil {
			err = fmt.Errorf("NACA 4-digit code %q: %w", code, err)
			return
		}
	}
	n = NACA4{
		Code:     code,
		Camber:   float64(digits[0]) / 100.,
		Position: float64(digits[1]) / 10.,
		TMax:     float64(10*digits[2]+digits[3]) / 100.,
	}
	if n.TMax == 0 {
		err = fmt.Errorf("NACA 4-digit code %q has zero thickness", code)
	}
	return
}

func NewNACA4(camber, position, thickness int) (n NACA4, err error) {
	return ParseNACA4(fmt.Sprintf("%d%d%02d", camber, position, thickness))
}

func (n NACA4) Name() string { return "NACA " + n.Code }

// Thickness is the half thickness distribution with the closed trailing edge
// coefficient, so the surface ends exactly at x = 1.
func (n NACA4) Thickness(x float64) float64 {
	return 5 * n.TMax * (0.2969*math.Sqrt(x) -
		0.1260*x -
		0.3516*x*x +
		0.2843*x*x*x -
		0.1036*x*x*x*x)
}

// CamberLine returns the mean line height and slope. A section with zero
// camber or zero camber position is symmetric.
func (n NACA4) CamberLine(x float64) (zC, dzcDx float64) {
	var (
		m, p = n.Camber, n.Position
	)
	if m == 0 || p == 0 {
		return
	}
	if x < p {
		zC = (m / (p * p)) * (2*p*x - x*x)
		dzcDx = (2 * m / (p * p)) * (p - x)
	} else {
		zC = (m / ((1 - p) * (1 - p))) * ((1 - 2*p) + 2*p*x - x*x)
		dzcDx = (2 * m / ((1 - p) * (1 - p))) * (p - x)
	}
	return
}

// Contour returns a closed unit chord contour with nChord cosine spaced
// intervals per surface, ordered trailing edge, upper surface, leading edge,
// lower surface, trailing edge (counter-clockwise, as XFOIL writes it). The
// loop has 2*nChord+1 points and its last point equals its first.
func (n NACA4) Contour(nChord int) (loop types.Loop, err error) {
	if nChord < 2 {
		err = fmt.Errorf("need at least 2 chordwise intervals, have %d", nChord)
		return
	}
	var (
		Np   = 2*nChord + 1
		X, Y = make([]float64, Np), make([]float64, Np)
	)
	X[0], Y[0], _, _ = surfacePoint(n, 1)
	for k := 1; k < nChord; k++ {
		// Upper surface runs from the trailing edge forward
		x := 0.5 * (1 - math.Cos(math.Pi*float64(nChord-k)/float64(nChord)))
		X[k], Y[k], _, _ = surfacePoint(n, x)
	}
	X[nChord], Y[nChord] = 0, 0
	for k := 1; k < nChord; k++ {
		x := 0.5 * (1 - math.Cos(math.Pi*float64(k)/float64(nChord)))
		_, _, X[nChord+k], Y[nChord+k] = surfacePoint(n, x)
	}
	X[Np-1], Y[Np-1] = X[0], Y[0]
	loop = types.Loop{X: X, Y: Y}
	return
}

func surfacePoint(n NACA4, x float64) (xu, yu, xl, yl float64) {
	var (
		zC, dzcDx = n.CamberLine(x)
		theta     = math.Atan(dzcDx)
		yt        = n.Thickness(x)
	)
	xu, yu = x-yt*math.Sin(theta), zC+yt*math.Cos(theta)
	xl, yl = x+yt*math.Sin(theta), zC-yt*math.Cos(theta)
	return
}
