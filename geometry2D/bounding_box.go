package geometry2D

import (
	"math"

	"github.com/notargets/panelflow/types"
)

type BoundingBox struct {
	XMin [2]float64
	XMax [2]float64
}

func NewBoundingBox(loop types.Loop) (Box *BoundingBox) {
	if loop.Len() == 0 {
		return nil
	}
	Box = new(BoundingBox)
	Box.XMin = [2]float64{loop.X[0], loop.Y[0]}
	Box.XMax = Box.XMin
	for i := range loop.X {
		Box.XMin[0] = math.Min(Box.XMin[0], loop.X[i])
		Box.XMin[1] = math.Min(Box.XMin[1], loop.Y[i])
		Box.XMax[0] = math.Max(Box.XMax[0], loop.X[i])
		Box.XMax[1] = math.Max(Box.XMax[1], loop.Y[i])
	}
	return Box
}

func (bb *BoundingBox) Centroid() (centroid [2]float64) {
	return [2]float64{
		0.5 * (bb.XMax[0] + bb.XMin[0]),
		0.5 * (bb.XMax[1] + bb.XMin[1]),
	}
}

// Pad grows the box by a fraction of its larger side on every edge, so thin
// sections still get a usable sampling window.
func (bb *BoundingBox) Pad(fraction float64) (bbOut *BoundingBox) {
	var (
		side = math.Max(bb.XMax[0]-bb.XMin[0], bb.XMax[1]-bb.XMin[1])
		d    = fraction * side
	)
	bbOut = &BoundingBox{
		XMin: [2]float64{bb.XMin[0] - d, bb.XMin[1] - d},
		XMax: [2]float64{bb.XMax[0] + d, bb.XMax[1] + d},
	}
	return bbOut
}

func (bb *BoundingBox) PointInside(x, y float64) (within bool) {
	return x >= bb.XMin[0] && x <= bb.XMax[0] && y >= bb.XMin[1] && y <= bb.XMax[1]
}
