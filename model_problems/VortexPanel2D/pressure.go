package VortexPanel2D

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SurfacePressure returns Cp = 1 - gamma^2 at each control point. With zero
// velocity inside the body the sheet strength equals the outer surface speed,
// scaled by the unit free stream.
func SurfacePressure(gamma mat.Vector) (Cp []float64) {
	Cp = make([]float64, gamma.Len())
	for i := range Cp {
		g := gamma.AtVec(i)
		Cp[i] = 1 - g*g
	}
	return
}

// SuctionPeak returns the minimum pressure coefficient and its panel.
func SuctionPeak(Cp []float64) (CpMin float64, panel int) {
	if len(Cp) == 0 {
		return 0, -1
	}
	panel = floats.MinIdx(Cp)
	return Cp[panel], panel
}
