package VortexPanel2D

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/panelflow/types"
	"github.com/notargets/panelflow/utils"
)

const DefaultResolution = 200

// SamplingConfig is the rectangle and the number of grid points per axis at
// which the velocity field is evaluated. Bounds are included in the grid.
type SamplingConfig struct {
	XBounds    [2]float64
	YBounds    [2]float64
	Resolution int
}

func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		XBounds:    [2]float64{-0.5, 1.5},
		YBounds:    [2]float64{-0.5, 0.5},
		Resolution: DefaultResolution,
	}
}

// withDefaults fills an unset rectangle and an unset resolution from
// DefaultSamplingConfig.
func (sc SamplingConfig) withDefaults() SamplingConfig {
	def := DefaultSamplingConfig()
	if sc.XBounds == ([2]float64{}) && sc.YBounds == ([2]float64{}) {
		sc.XBounds, sc.YBounds = def.XBounds, def.YBounds
	}
	if sc.Resolution == 0 {
		sc.Resolution = def.Resolution
	}
	return sc
}

func (sc SamplingConfig) Validate() (err error) {
	check := func(name string, b [2]float64) error {
		for _, v := range b {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: %s bounds %v are not finite", types.ErrInvalidSampling, name, b)
			}
		}
		if !(b[0] < b[1]) {
			return fmt.Errorf("%w: %s bounds [%g, %g] are empty", types.ErrInvalidSampling, name, b[0], b[1])
		}
		return nil
	}
	if err = check("x", sc.XBounds); err != nil {
		return
	}
	if err = check("y", sc.YBounds); err != nil {
		return
	}
	if sc.Resolution < 2 {
		err = fmt.Errorf("%w: resolution %d, need at least 2 points per axis",
			types.ErrInvalidSampling, sc.Resolution)
	}
	return
}

/*
	VelocityField holds the sampled velocity on a Ny x Nx grid. Values are
	stored row major: the sample at column i (x) and row j (y) is at index
	j*Nx + i. Singular lists the indices of samples that landed exactly on a
	panel control point, where the induced velocity is unbounded; those
	entries hold Inf or NaN.
*/
type VelocityField struct {
	Sampling SamplingConfig
	Alpha    float64 // radians
	Nx, Ny   int
	X, Y     []float64 // grid axes, length Nx and Ny
	U, V     []float64
	Singular []int
}

func (vf *VelocityField) Index(i, j int) int { return j*vf.Nx + i }

func (vf *VelocityField) At(i, j int) (x, y, u, v float64) {
	ind := vf.Index(i, j)
	return vf.X[i], vf.Y[j], vf.U[ind], vf.V[ind]
}

/*
	ReconstructField superposes the free stream and the panel vortices at each
	grid point (x, y):

		u = cos(alpha) - sum_i G_i*(y - yc_i) / (2*pi*r_i^2)
		v = sin(alpha) + sum_i G_i*(x - xc_i) / (2*pi*r_i^2)

	with G_i = gamma_i * s_i the lumped circulation of panel i located at its
	control point. Rows of the grid are evaluated in parallel; each sample only
	depends on its own coordinates, so the result does not depend on ProcLimit.
*/
func ReconstructField(p *Panels, gamma mat.Vector, alpha float64, sc SamplingConfig,
	ProcLimit int) (vf *VelocityField, err error) {
	if err = sc.Validate(); err != nil {
		return
	}
	if gamma.Len() != p.N {
		err = fmt.Errorf("circulation vector has length %d for %d panels", gamma.Len(), p.N)
		return
	}
	var (
		N      = p.N
		circ   = make([]float64, N)
		Nx, Ny = sc.Resolution, sc.Resolution
	)
	for i := 0; i < N; i++ {
		g := gamma.AtVec(i)
		if math.IsNaN(g) || math.IsInf(g, 0) {
			err = &types.NumericDegeneracyError{
				Stage: types.StageReconstruct, I: i, J: -1, X: p.XC[i], Y: p.YC[i],
				Reason: fmt.Sprintf("non-finite circulation %g", g),
			}
			return
		}
		circ[i] = g * p.Length[i] / (2 * math.Pi)
	}
	vf = &VelocityField{
		Sampling: sc,
		Alpha:    alpha,
		Nx:       Nx,
		Ny:       Ny,
		X:        utils.Linspace(sc.XBounds[0], sc.XBounds[1], Nx),
		Y:        utils.Linspace(sc.YBounds[0], sc.YBounds[1], Ny),
		U:        make([]float64, Nx*Ny),
		V:        make([]float64, Nx*Ny),
	}
	var (
		uInf, vInf = math.Cos(alpha), math.Sin(alpha)
		pm         = utils.NewPartitionMap(utils.ParallelDegree(ProcLimit, Ny), Ny)
		singular   = make([][]int, pm.ParallelDegree)
	)
	pm.ForEach(func(bn, jMin, jMax int) {
		for j := jMin; j < jMax; j++ {
			y := vf.Y[j]
			for i := 0; i < Nx; i++ {
				var (
					x    = vf.X[i]
					u, v = uInf, vInf
				)
				for k := 0; k < N; k++ {
					dx, dy := x-p.XC[k], y-p.YC[k]
					r2 := dx*dx + dy*dy
					u -= circ[k] * dy / r2
					v += circ[k] * dx / r2
				}
				ind := j*Nx + i
				vf.U[ind], vf.V[ind] = u, v
				if math.IsNaN(u) || math.IsNaN(v) || math.IsInf(u, 0) || math.IsInf(v, 0) {
					singular[bn] = append(singular[bn], ind)
				}
			}
		}
	})
	for _, s := range singular {
		vf.Singular = append(vf.Singular, s...)
	}
	return
}

// WriteCSV writes one "x,y,u,v" row per sample, rows of constant y together.
func (vf *VelocityField) WriteCSV(w io.Writer) (err error) {
	var (
		cw  = csv.NewWriter(w)
		f   = func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
		rec = make([]string, 4)
	)
	if err = cw.Write([]string{"x", "y", "u", "v"}); err != nil {
		return
	}
	for j := 0; j < vf.Ny; j++ {
		for i := 0; i < vf.Nx; i++ {
			x, y, u, v := vf.At(i, j)
			rec[0], rec[1], rec[2], rec[3] = f(x), f(y), f(u), f(v)
			if err = cw.Write(rec); err != nil {
				return
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// Speed returns |V| at every sample.
func (vf *VelocityField) Speed() (s []float64) {
	s = make([]float64, len(vf.U))
	for i := range s {
		s[i] = math.Hypot(vf.U[i], vf.V[i])
	}
	return
}
