package utils

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Linspace returns N evenly spaced values from min to max, both included.
func Linspace(min, max float64, N int) (v []float64) {
	switch {
	case N < 1:
		return nil
	case N == 1:
		return []float64{min}
	}
	v = make([]float64, N)
	floats.Span(v, min, max)
	return
}

// FirstNonFinite returns the index of the first NaN or Inf in v, or -1.
func FirstNonFinite(v []float64) int {
	for i, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return i
		}
	}
	return -1
}
