package VortexPanel2D

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/panelflow/geometry2D"
	"github.com/notargets/panelflow/types"
)

func unitSquare() types.Loop {
	return types.NewLoop([]float64{0, 1, 1, 0, 0}, []float64{0, 0, 1, 1, 0})
}

func circle(t *testing.T, N int, clockwise bool) types.Loop {
	loop, err := geometry2D.Circle(N, 1, 0, 0, clockwise)
	require.NoError(t, err)
	return loop
}

func TestPanels(t *testing.T) {
	{ // M points make M-1 panels whose displacements close the loop
		for _, N := range []int{3, 12, 36} {
			p, err := NewPanels(circle(t, N, false))
			require.NoError(t, err)
			assert.Equal(t, N, p.N)
			var sx, sy float64
			for k := 0; k < p.N; k++ {
				dx, dy := p.Displacement(k)
				sx += dx
				sy += dy
			}
			assert.InDelta(t, 0, sx, 1.e-12)
			assert.InDelta(t, 0, sy, 1.e-12)
			assert.InDelta(t, 2*float64(N)*math.Sin(math.Pi/float64(N)), p.Perimeter(), 1.e-12)
		}
	}
	{ // Geometry of the unit square
		p, err := NewPanels(unitSquare())
		require.NoError(t, err)
		assert.Equal(t, 4, p.N)
		assert.Equal(t, -1., p.Orientation)
		assert.Equal(t, []float64{0.5, 1, 0.5, 0}, p.XC)
		assert.Equal(t, []float64{0, 0.5, 1, 0.5}, p.YC)
		assert.Equal(t, []float64{1, 1, 1, 1}, p.Length)
		assert.InDelta(t, math.Pi/2, p.Beta[1], 1.e-15)
		assert.InDelta(t, math.Pi, p.Beta[2], 1.e-15)
	}
	{ // Clockwise loops flip the orientation
		p, err := NewPanels(circle(t, 12, true))
		require.NoError(t, err)
		assert.Equal(t, 1., p.Orientation)
	}
	{ // A single point is not a panel
		_, err := NewPanels(types.NewLoop([]float64{1}, []float64{1}))
		var ge *types.GeometryError
		assert.True(t, errors.As(err, &ge))
	}
}

func TestInfluenceMatrix(t *testing.T) {
	{ // Diagonal is exactly the self influence constant
		for _, N := range []int{3, 12, 36, 101} {
			p, err := NewPanels(circle(t, N, false))
			require.NoError(t, err)
			A, err := BuildInfluenceMatrix(p, 4)
			require.NoError(t, err)
			r, c := A.Dims()
			assert.Equal(t, N, r)
			assert.Equal(t, N, c)
			for i := 0; i < N; i++ {
				assert.Equal(t, SelfInfluence, A.At(i, i))
			}
		}
	}
	{ // Assembly does not depend on the parallel degree
		p, err := NewPanels(circle(t, 37, false))
		require.NoError(t, err)
		A1, err := BuildInfluenceMatrix(p, 1)
		require.NoError(t, err)
		for _, pl := range []int{2, 3, 8, 64} {
			A2, err := BuildInfluenceMatrix(p, pl)
			require.NoError(t, err)
			assert.True(t, mat.Equal(A1, A2))
		}
	}
	{ // Zero length panel
		loop := types.NewLoop([]float64{0, 1, 1, 1, 0, 0}, []float64{0, 0, 0, 1, 1, 0})
		p, err := NewPanels(loop)
		require.NoError(t, err)
		A, err := BuildInfluenceMatrix(p, 2)
		assert.Nil(t, A)
		var nd *types.NumericDegeneracyError
		require.True(t, errors.As(err, &nd))
		assert.Equal(t, types.StageBuildMatrix, nd.Stage)
		assert.Equal(t, 1, nd.I)
		assert.Equal(t, 1., nd.X)
		assert.Equal(t, 0., nd.Y)
	}
	{ // Coincident control points on panels that retrace each other
		loop := types.NewLoop([]float64{0, 1, 0, 1, 0, 0}, []float64{0, 0, 0, 1, 1, 0})
		p, err := NewPanels(loop)
		require.NoError(t, err)
		_, err = BuildInfluenceMatrix(p, 1)
		var nd *types.NumericDegeneracyError
		require.True(t, errors.As(err, &nd))
		assert.Equal(t, 0, nd.I)
		assert.Equal(t, 1, nd.J)
		assert.True(t, strings.Contains(err.Error(), "(0,1)"))
	}
	{ // A node repeated away from its neighbors pinches the contour
		loop := types.NewLoop([]float64{0, 2, 1, 2, 0, 1, 0}, []float64{0, 0, 1, 2, 2, 1, 0})
		p, err := NewPanels(loop)
		require.NoError(t, err)
		for _, pl := range []int{1, 3} {
			A, err := BuildInfluenceMatrix(p, pl)
			assert.Nil(t, A)
			var nd *types.NumericDegeneracyError
			require.True(t, errors.As(err, &nd))
			assert.Equal(t, types.StageBuildMatrix, nd.Stage)
			assert.Equal(t, 2, nd.I)
			assert.Equal(t, 5, nd.J)
			assert.Equal(t, 1., nd.X)
			assert.Equal(t, 1., nd.Y)
		}
		res, err := Run(loop, Config{SkipField: true})
		assert.Nil(t, res)
		var se *types.StageError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, types.StageBuildMatrix, se.Stage)
	}
}

func TestSolvers(t *testing.T) {
	b := mat.NewVecDense(2, []float64{1, 1})
	solvers := []LinearSolver{LUSolver{}, QRSolver{}}
	{ // Well conditioned
		A := mat.NewDense(2, 2, []float64{2, 1, 1, 3})
		for _, s := range solvers {
			x, err := s.Solve(A, b)
			require.NoError(t, err)
			assert.InDelta(t, 0.4, x.AtVec(0), 1.e-14)
			assert.InDelta(t, 0.2, x.AtVec(1), 1.e-14)
		}
	}
	{ // Singular and nearly singular
		for _, A := range []*mat.Dense{
			mat.NewDense(2, 2, []float64{1, 2, 2, 4}),
			mat.NewDense(2, 2, []float64{1, 1, 1, 1 + 1.e-14}),
			mat.NewDense(2, 2, nil),
		} {
			for _, s := range solvers {
				x, err := s.Solve(A, b)
				assert.Nil(t, x)
				var se *types.SingularMatrixError
				assert.True(t, errors.As(err, &se))
			}
		}
	}
	{ // Tighter condition limit
		A := mat.NewDense(2, 2, []float64{1, 0, 0, 1.e-4})
		_, err := LUSolver{MaxCondition: 1.e3}.Solve(A, b)
		var se *types.SingularMatrixError
		assert.True(t, errors.As(err, &se))
		_, err = LUSolver{}.Solve(A, b)
		assert.NoError(t, err)
	}
	{ // Shape mismatches
		var se *types.SingularMatrixError
		_, err := LUSolver{}.Solve(mat.NewDense(2, 3, nil), b)
		assert.True(t, errors.As(err, &se))
		_, err = QRSolver{}.Solve(mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}), b)
		assert.Error(t, err)
		assert.False(t, errors.As(err, &se))
	}
}

func TestCirculation(t *testing.T) {
	{ // Unit circle, 36 panels, peak surface speed within 5% of 2
		res, err := Run(circle(t, 36, false), Config{SkipField: true})
		require.NoError(t, err)
		assert.Nil(t, res.Field)
		peak := 0.
		for i := 0; i < res.Gamma.Len(); i++ {
			peak = math.Max(peak, math.Abs(res.Gamma.AtVec(i)))
		}
		assert.InDelta(t, 2, peak, 0.1)
		assert.InDelta(t, 1.9384, peak, 1.e-3)
		// Zero net circulation without a Kutta condition
		var sum float64
		for i := 0; i < res.Panels.N; i++ {
			sum += res.Gamma.AtVec(i) * res.Panels.Length[i]
		}
		assert.InDelta(t, 0, sum, 1.e-10)
		// Stagnation and suction
		CpMin, _ := SuctionPeak(res.Cp)
		assert.InDelta(t, -2.757, CpMin, 1.e-2)
	}
	{ // Circulation does not depend on the traversal direction
		r1, err := Run(circle(t, 24, false), Config{SkipField: true})
		require.NoError(t, err)
		r2, err := Run(circle(t, 24, true), Config{SkipField: true})
		require.NoError(t, err)
		// Control point k of the clockwise circle mirrors point k of the other
		for k := 0; k < 24; k++ {
			assert.InDelta(t, r1.Panels.XC[k], r2.Panels.XC[k], 1.e-14)
			assert.InDelta(t, r1.Panels.YC[k], -r2.Panels.YC[k], 1.e-14)
			assert.InDelta(t, r1.Gamma.AtVec(k), -r2.Gamma.AtVec(k), 1.e-12)
		}
		// Clockwise vortices on top, counter-clockwise below
		assert.InDelta(t, -1.9031, r1.Gamma.AtVec(5), 1.e-3)
		assert.InDelta(t, -1.9031, r2.Gamma.AtVec(17), 1.e-3)
		assert.InDelta(t, 1.9031, r2.Gamma.AtVec(5), 1.e-3)
	}
	{ // Repeated runs and parallel degree give bit identical results
		foil, err := geometry2D.ParseNACA4("2412")
		require.NoError(t, err)
		loop, err := foil.Contour(40)
		require.NoError(t, err)
		var first *mat.VecDense
		for _, pl := range []int{1, 1, 4, 7} {
			res, err := Run(loop, Config{AlphaDeg: 4, ProcLimit: pl, SkipField: true})
			require.NoError(t, err)
			if first == nil {
				first = res.Gamma
				continue
			}
			assert.Equal(t, first.RawVector().Data, res.Gamma.RawVector().Data)
		}
	}
	{ // LU and QR agree
		r1, err := Run(circle(t, 36, false), Config{AlphaDeg: 3, SkipField: true})
		require.NoError(t, err)
		r2, err := Run(circle(t, 36, false), Config{AlphaDeg: 3, SkipField: true, Solver: QRSolver{}})
		require.NoError(t, err)
		for i := 0; i < 36; i++ {
			assert.InDelta(t, r1.Gamma.AtVec(i), r2.Gamma.AtVec(i), 1.e-10)
		}
	}
}

func TestCylinderConvergence(t *testing.T) {
	expected := map[int]float64{12: 0.1518, 24: 0.0798, 36: 0.0540, 72: 0.0274, 144: 0.0138}
	prev := math.Inf(1)
	for _, N := range []int{12, 24, 36, 72, 144} {
		ce, err := CylinderStudy(N, 4)
		require.NoError(t, err)
		assert.Equal(t, N, ce.N)
		assert.InDelta(t, expected[N], ce.MaxError, 2.e-4)
		assert.True(t, ce.MaxError < prev)
		assert.True(t, ce.RMSError <= ce.MaxError)
		prev = ce.MaxError
	}
}

func TestReconstructField(t *testing.T) {
	{ // No circulation leaves the free stream
		p, err := NewPanels(circle(t, 12, false))
		require.NoError(t, err)
		alpha := 10 * math.Pi / 180
		sc := SamplingConfig{XBounds: [2]float64{-2, 2}, YBounds: [2]float64{-3, 3}, Resolution: 4}
		vf, err := ReconstructField(p, mat.NewVecDense(12, nil), alpha, sc, 2)
		require.NoError(t, err)
		assert.Equal(t, 16, len(vf.U))
		assert.Empty(t, vf.Singular)
		for i := range vf.U {
			assert.Equal(t, math.Cos(alpha), vf.U[i])
			assert.Equal(t, math.Sin(alpha), vf.V[i])
		}
	}
	{ // No circulation at zero incidence is the unit free stream
		p, err := NewPanels(circle(t, 24, false))
		require.NoError(t, err)
		sc := SamplingConfig{XBounds: [2]float64{-4, 4}, YBounds: [2]float64{-4, 4}, Resolution: 5}
		vf, err := ReconstructField(p, mat.NewVecDense(24, nil), 0, sc, 3)
		require.NoError(t, err)
		for i := range vf.U {
			assert.Equal(t, 1., vf.U[i])
			assert.Equal(t, 0., vf.V[i])
		}
	}
	{ // Stagnant interior and accelerated flow over the top of the cylinder
		res, err := Run(circle(t, 36, false), Config{
			Sampling: SamplingConfig{XBounds: [2]float64{-1, 1}, YBounds: [2]float64{-2, 2}, Resolution: 3},
		})
		require.NoError(t, err)
		vf := res.Field
		x, y, u, v := vf.At(1, 1)
		assert.Equal(t, 0., x)
		assert.Equal(t, 0., y)
		assert.True(t, math.Abs(u) < 0.05)
		assert.InDelta(t, 0, v, 1.e-10)
		x, y, u, _ = vf.At(1, 2)
		assert.Equal(t, 0., x)
		assert.Equal(t, 2., y)
		assert.InDelta(t, 1.25, u, 0.02)
		// Symmetric about the x axis
		_, _, uBot, vBot := vf.At(1, 0)
		assert.InDelta(t, u, uBot, 1.e-12)
		assert.InDelta(t, 0, vBot, 1.e-12)
	}
	{ // Samples on a control point are flagged
		res, err := Run(unitSquare(), Config{
			Sampling: SamplingConfig{XBounds: [2]float64{0, 1}, YBounds: [2]float64{0, 1}, Resolution: 3},
		})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3, 5, 7}, res.Field.Singular)
		assert.False(t, math.IsNaN(res.Field.U[4]))
	}
	{ // Parallel degree does not change the field
		p, err := NewPanels(circle(t, 20, false))
		require.NoError(t, err)
		A, err := BuildInfluenceMatrix(p, 1)
		require.NoError(t, err)
		gamma, err := SolveCirculation(A, p, 0.1, nil)
		require.NoError(t, err)
		sc := SamplingConfig{XBounds: [2]float64{-2, 2}, YBounds: [2]float64{-2, 2}, Resolution: 21}
		vf1, err := ReconstructField(p, gamma, 0.1, sc, 1)
		require.NoError(t, err)
		vf2, err := ReconstructField(p, gamma, 0.1, sc, 5)
		require.NoError(t, err)
		assert.Equal(t, vf1.U, vf2.U)
		assert.Equal(t, vf1.V, vf2.V)
	}
	{ // Invalid sampling and circulation
		p, err := NewPanels(circle(t, 12, false))
		require.NoError(t, err)
		gamma := mat.NewVecDense(12, nil)
		for _, sc := range []SamplingConfig{
			{XBounds: [2]float64{1, 1}, YBounds: [2]float64{0, 1}, Resolution: 10},
			{XBounds: [2]float64{0, 1}, YBounds: [2]float64{2, 1}, Resolution: 10},
			{XBounds: [2]float64{0, math.NaN()}, YBounds: [2]float64{0, 1}, Resolution: 10},
			{XBounds: [2]float64{0, 1}, YBounds: [2]float64{0, 1}, Resolution: 1},
		} {
			_, err = ReconstructField(p, gamma, 0, sc, 1)
			assert.True(t, errors.Is(err, types.ErrInvalidSampling))
		}
		gamma.SetVec(3, math.Inf(1))
		_, err = ReconstructField(p, gamma, 0, DefaultSamplingConfig(), 1)
		var nd *types.NumericDegeneracyError
		require.True(t, errors.As(err, &nd))
		assert.Equal(t, types.StageReconstruct, nd.Stage)
		assert.Equal(t, 3, nd.I)
		_, err = ReconstructField(p, mat.NewVecDense(11, nil), 0, DefaultSamplingConfig(), 1)
		assert.Error(t, err)
	}
	{ // CSV output
		p, err := NewPanels(circle(t, 12, false))
		require.NoError(t, err)
		sc := SamplingConfig{XBounds: [2]float64{-2, 2}, YBounds: [2]float64{-3, 3}, Resolution: 2}
		vf, err := ReconstructField(p, mat.NewVecDense(12, nil), 0, sc, 1)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, vf.WriteCSV(&buf))
		assert.Equal(t, "x,y,u,v\n-2,-3,1,0\n2,-3,1,0\n-2,3,1,0\n2,3,1,0\n", buf.String())
		assert.Equal(t, []float64{1, 1, 1, 1}, vf.Speed())
	}
}

func TestRun(t *testing.T) {
	{ // Stage errors carry the failing stage and no result
		cases := []struct {
			loop  types.Loop
			stage types.Stage
		}{
			{types.NewLoop(nil, nil), types.StageLoad},
			{types.NewLoop([]float64{0, 1, 2}, []float64{0, 1, 2}), types.StageLoad},
			{types.NewLoop([]float64{0, 1, 1, 1, 0}, []float64{0, 0, 0, 1, 1}), types.StageBuildMatrix},
		}
		for _, c := range cases {
			res, err := Run(c.loop, DefaultConfig())
			assert.Nil(t, res)
			var se *types.StageError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, c.stage, se.Stage)
		}
		res, err := Run(circle(t, 12, false), Config{Sampling: SamplingConfig{Resolution: 1}})
		assert.Nil(t, res)
		var se *types.StageError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, types.StageReconstruct, se.Stage)
		assert.True(t, errors.Is(err, types.ErrInvalidSampling))
	}
	{ // An unset sampling grid takes the defaults
		res, err := Run(circle(t, 12, false), Config{})
		require.NoError(t, err)
		assert.Equal(t, DefaultSamplingConfig(), res.Field.Sampling)
		assert.Equal(t, DefaultResolution*DefaultResolution, len(res.Field.U))
		res, err = Run(circle(t, 12, false), Config{
			Sampling: SamplingConfig{XBounds: [2]float64{-3, 3}, YBounds: [2]float64{-2, 2}},
		})
		require.NoError(t, err)
		assert.Equal(t, DefaultResolution, res.Field.Nx)
		assert.Equal(t, [2]float64{-3, 3}, res.Field.Sampling.XBounds)
	}
	{ // Open loops are closed before discretization
		open := types.NewLoop([]float64{0, 1, 1, 0}, []float64{0, 0, 1, 1})
		r1, err := Run(open, Config{SkipField: true})
		require.NoError(t, err)
		r2, err := Run(unitSquare(), Config{SkipField: true})
		require.NoError(t, err)
		assert.Equal(t, 4, r1.Panels.N)
		assert.Equal(t, r2.Gamma.RawVector().Data, r1.Gamma.RawVector().Data)
	}
	{ // From a coordinate file
		dir := t.TempDir()
		fname := filepath.Join(dir, "square.dat")
		require.NoError(t, os.WriteFile(fname, []byte("square\n0 0\n1 0\n1 1\n0 1\n"), 0644))
		res, err := RunFile(fname, DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, 4, res.Panels.N)
		assert.Equal(t, DefaultResolution*DefaultResolution, len(res.Field.U))
		_, err = RunFile(filepath.Join(dir, "missing.dat"), DefaultConfig())
		var se *types.StageError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, types.StageLoad, se.Stage)
	}
}
