package VortexPanel2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/panelflow/types"
	"github.com/notargets/panelflow/utils"
)

// SelfInfluence is the fixed diagonal of the influence matrix: the limiting
// tangential velocity a panel's own vortex induces on the inner side of its
// control point. It is a modeling constant of the point vortex approximation,
// not an integral over the panel, and is best suited to smooth contours with
// moderately even panel spacing.
const SelfInfluence = 0.5

/*
	BuildInfluenceMatrix assembles the N x N matrix A with

		A_ii = 0.5
		A_ij = sigma * s_j * (dx*sin(beta_i) - dy*cos(beta_i)) / (2*pi*r^2),   i != j

	where (dx, dy) runs from the control point of panel j to the control point
	of panel i, r^2 = dx^2 + dy^2, s_j is the length of panel j and sigma is the
	loop orientation. The off diagonal term is the velocity induced at control
	point i by the lumped vortex of panel j (circulation gamma_j*s_j), projected
	on the direction of panel i: s_j*sin(beta_i - atan2(dy, dx))/(2*pi*r).

	Zero length panels, a node repeated anywhere on the contour and coincident
	control points are reported as *types.NumericDegeneracyError and no matrix
	is returned.
*/
func BuildInfluenceMatrix(p *Panels, ProcLimit int) (A *mat.Dense, err error) {
	var (
		N = p.N
	)
	for j := 0; j < N; j++ {
		if p.Length[j] == 0 {
			err = &types.NumericDegeneracyError{
				Stage: types.StageBuildMatrix, I: j, J: -1,
				X: p.XN[j], Y: p.YN[j],
				Reason: "zero length panel, coincident consecutive points",
			}
			return
		}
	}
	var (
		data = make([]float64, N*N)
		pm   = utils.NewPartitionMap(utils.ParallelDegree(ProcLimit, N), N)
		errs = make([]error, pm.ParallelDegree)
	)
	pm.ForEach(func(bn, iMin, iMax int) {
		for i := iMin; i < iMax; i++ {
			if errs[bn] = influenceRow(p, i, data[i*N:(i+1)*N]); errs[bn] != nil {
				return
			}
		}
	})
	// Partitions hold ascending row ranges, so the first error found is the
	// one with the lowest row index.
	for _, e := range errs {
		if e != nil {
			err = e
			return
		}
	}
	A = mat.NewDense(N, N, data)
	return
}

func influenceRow(p *Panels, i int, row []float64) (err error) {
	var (
		sinB, cosB = math.Sincos(p.Beta[i])
		xi, yi     = p.XC[i], p.YC[i]
		scale      = p.Orientation / (2 * math.Pi)
	)
	for j := range row {
		if j == i {
			row[j] = SelfInfluence
			continue
		}
		if p.XN[i] == p.XN[j] && p.YN[i] == p.YN[j] {
			return &types.NumericDegeneracyError{
				Stage: types.StageBuildMatrix, I: i, J: j, X: p.XN[i], Y: p.YN[i],
				Reason: "coincident nodes, the contour passes through a point twice",
			}
		}
		dx, dy := xi-p.XC[j], yi-p.YC[j]
		r2 := dx*dx + dy*dy
		if r2 == 0 {
			return &types.NumericDegeneracyError{
				Stage: types.StageBuildMatrix, I: i, J: j, X: xi, Y: yi,
				Reason: "coincident control points, division by zero distance",
			}
		}
		val := scale * p.Length[j] * (dx*sinB - dy*cosB) / r2
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return &types.NumericDegeneracyError{
				Stage: types.StageBuildMatrix, I: i, J: j, X: xi, Y: yi,
				Reason: fmt.Sprintf("non-finite influence coefficient %g", val),
			}
		}
		row[j] = val
	}
	return
}
