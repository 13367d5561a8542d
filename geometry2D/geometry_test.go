package geometry2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/panelflow/types"
)

func TestNACA4(t *testing.T) {
	{ // Parsing
		n, err := ParseNACA4("2412")
		require.NoError(t, err)
		assert.InDelta(t, 0.02, n.Camber, 1.e-15)
		assert.InDelta(t, 0.4, n.Position, 1.e-15)
		assert.InDelta(t, 0.12, n.TMax, 1.e-15)
		assert.Equal(t, "NACA 2412", n.Name())

		n2, err := NewNACA4(2, 4, 12)
		require.NoError(t, err)
		assert.Equal(t, n, n2)

		for _, bad := range []string{"241", "24a2", "2400", ""} {
			_, err = ParseNACA4(bad)
			assert.Error(t, err, bad)
		}
	}
	{ // Symmetric contour: closed, counter-clockwise, known area
		n, err := ParseNACA4("0012")
		require.NoError(t, err)
		assert.InDelta(t, 0., n.Thickness(1), 1.e-15)
		loop, err := n.Contour(100)
		require.NoError(t, err)
		assert.Equal(t, 201, loop.Len())
		assert.True(t, loop.IsClosed(0))
		assert.Equal(t, [2]float64{0, 0}, [2]float64{loop.X[100], loop.Y[100]})
		area := loop.SignedArea()
		assert.True(t, area > 0)
		// 2 * integral of the half thickness = 0.68088 * t
		assert.InDelta(t, 0.68088*0.12, area, 1.e-3)
		for k := 1; k < 100; k++ { // mirror symmetry
			assert.InDelta(t, loop.Y[k], -loop.Y[200-k], 1.e-15)
			assert.InDelta(t, loop.X[k], loop.X[200-k], 1.e-15)
		}
		lc, err := loop.Close(types.ClosureTolerance)
		require.NoError(t, err)
		assert.Equal(t, loop.Len(), lc.Len())
	}
	{ // Cambered mean line peaks at the camber position
		n, _ := ParseNACA4("4412")
		zc, slope := n.CamberLine(0.4)
		assert.InDelta(t, 0.04, zc, 1.e-15)
		assert.InDelta(t, 0., slope, 1.e-15)
		zc, _ = n.CamberLine(1)
		assert.InDelta(t, 0., zc, 1.e-15)
		// Camber with zero position is treated as symmetric
		n, _ = ParseNACA4("4012")
		zc, slope = n.CamberLine(0.3)
		assert.Equal(t, 0., zc)
		assert.Equal(t, 0., slope)
	}
	{
		n, _ := ParseNACA4("0012")
		_, err := n.Contour(1)
		assert.Error(t, err)
	}
}

func TestCircle(t *testing.T) {
	{
		loop, err := Circle(36, 1, 0, 0, false)
		require.NoError(t, err)
		assert.Equal(t, 37, loop.Len())
		assert.True(t, loop.IsClosed(0))
		// Inscribed polygon area
		assert.InDelta(t, 0.5*36*math.Sin(2*math.Pi/36), loop.SignedArea(), 1.e-12)
	}
	{
		loop, err := Circle(8, 2, 1, 1, true)
		require.NoError(t, err)
		assert.True(t, loop.SignedArea() < 0)
		assert.InDelta(t, 3., loop.X[0], 1.e-15)
		assert.InDelta(t, 1., loop.Y[0], 1.e-15)
	}
	{
		_, err := Circle(2, 1, 0, 0, false)
		assert.Error(t, err)
		_, err = Circle(10, 0, 0, 0, false)
		assert.Error(t, err)
	}
}

func TestBoundingBox(t *testing.T) {
	loop := types.Loop{X: []float64{0, 1, 0.5, 0}, Y: []float64{0, 0, 0.2, 0}}
	bb := NewBoundingBox(loop)
	assert.Equal(t, [2]float64{0, 0}, bb.XMin)
	assert.Equal(t, [2]float64{1, 0.2}, bb.XMax)
	assert.Equal(t, [2]float64{0.5, 0.1}, bb.Centroid())
	pb := bb.Pad(0.5)
	assert.InDelta(t, -0.5, pb.XMin[0], 1.e-15)
	assert.InDelta(t, -0.5, pb.XMin[1], 1.e-15)
	assert.InDelta(t, 1.5, pb.XMax[0], 1.e-15)
	assert.InDelta(t, 0.7, pb.XMax[1], 1.e-15)
	assert.True(t, bb.PointInside(0.5, 0.1))
	assert.False(t, bb.PointInside(2, 0.1))
	assert.Nil(t, NewBoundingBox(types.Loop{}))
}
