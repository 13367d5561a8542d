package VortexPanel2D

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/panelflow/types"
	"github.com/notargets/panelflow/utils"
)

// DefaultMaxCondition bounds the condition number accepted from a factorization.
const DefaultMaxCondition = 1.e12

// LinearSolver solves the dense system A x = b. Implementations must be
// deterministic and must fail with *types.SingularMatrixError rather than
// return a partial or non-finite solution.
type LinearSolver interface {
	Solve(A mat.Matrix, b mat.Vector) (x *mat.VecDense, err error)
}

// LUSolver factorizes with partial pivoting (LAPACK getrf via gonum).
type LUSolver struct {
	MaxCondition float64 // zero means DefaultMaxCondition
}

// QRSolver factorizes with Householder QR, slower than LU but more robust
// close to the condition limit.
type QRSolver struct {
	MaxCondition float64 // zero means DefaultMaxCondition
}

func (s LUSolver) Solve(A mat.Matrix, b mat.Vector) (x *mat.VecDense, err error) {
	var (
		N   int
		lu  mat.LU
		ceN float64
	)
	if N, err = checkSystem(A, b); err != nil {
		return
	}
	lu.Factorize(A)
	ceN = lu.Cond()
	if err = checkCondition(N, ceN, s.MaxCondition); err != nil {
		return
	}
	x = mat.NewVecDense(N, nil)
	if err = lu.SolveVecTo(x, false, b); err != nil {
		x, err = nil, solveError(N, ceN, err)
		return
	}
	return checkSolution(N, ceN, x)
}

func (s QRSolver) Solve(A mat.Matrix, b mat.Vector) (x *mat.VecDense, err error) {
	var (
		N   int
		qr  mat.QR
		ceN float64
	)
	if N, err = checkSystem(A, b); err != nil {
		return
	}
	qr.Factorize(A)
	ceN = qr.Cond()
	if err = checkCondition(N, ceN, s.MaxCondition); err != nil {
		return
	}
	x = mat.NewVecDense(N, nil)
	if err = qr.SolveVecTo(x, false, b); err != nil {
		x, err = nil, solveError(N, ceN, err)
		return
	}
	return checkSolution(N, ceN, x)
}

func checkSystem(A mat.Matrix, b mat.Vector) (N int, err error) {
	nr, nc := A.Dims()
	if nr != nc || nr == 0 {
		err = &types.SingularMatrixError{N: nr, Condition: math.Inf(1),
			Reason: fmt.Sprintf("matrix is %dx%d, need a non-empty square matrix", nr, nc)}
		return
	}
	if b.Len() != nr {
		err = fmt.Errorf("right hand side has length %d, matrix has %d rows", b.Len(), nr)
		return
	}
	N = nr
	return
}

func checkCondition(N int, ceN, maxCond float64) (err error) {
	if maxCond == 0 {
		maxCond = DefaultMaxCondition
	}
	if math.IsNaN(ceN) || math.IsInf(ceN, 0) || ceN > maxCond {
		err = &types.SingularMatrixError{N: N, Condition: ceN,
			Reason: fmt.Sprintf("condition number exceeds %g", maxCond)}
		return
	}
	log.WithFields(log.Fields{"n": N, "condition": ceN}).Debug("factorized")
	return
}

func solveError(N int, ceN float64, err error) error {
	var cond mat.Condition
	if errors.As(err, &cond) {
		return &types.SingularMatrixError{N: N, Condition: float64(cond), Reason: err.Error()}
	}
	return err
}

func checkSolution(N int, ceN float64, x *mat.VecDense) (*mat.VecDense, error) {
	if i := utils.FirstNonFinite(x.RawVector().Data); i >= 0 {
		return nil, &types.SingularMatrixError{N: N, Condition: ceN,
			Reason: fmt.Sprintf("non-finite solution component %d", i)}
	}
	return x, nil
}

// FreeStreamRHS returns b_i = -sigma*cos(beta_i - alpha), the free stream
// velocity along each panel that the panel vortices must cancel on the inner
// side of the surface. Alpha is in radians.
func FreeStreamRHS(p *Panels, alpha float64) (b *mat.VecDense) {
	b = mat.NewVecDense(p.N, nil)
	for i := 0; i < p.N; i++ {
		b.SetVec(i, -p.Orientation*math.Cos(p.Beta[i]-alpha))
	}
	return
}

// SolveCirculation solves A gamma = b for the panel circulation strengths.
// Zero tangential velocity just inside a closed surface makes the outer
// flow tangent to it, which is the impermeability condition. A nil solver
// means LUSolver.
func SolveCirculation(A mat.Matrix, p *Panels, alpha float64, solver LinearSolver) (gamma *mat.VecDense, err error) {
	if solver == nil {
		solver = LUSolver{}
	}
	if nr, _ := A.Dims(); nr != p.N {
		err = &types.SingularMatrixError{N: nr, Condition: math.Inf(1),
			Reason: fmt.Sprintf("matrix has %d rows for %d panels", nr, p.N)}
		return
	}
	return solver.Solve(A, FreeStreamRHS(p, alpha))
}
