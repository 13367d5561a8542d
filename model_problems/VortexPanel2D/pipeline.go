package VortexPanel2D

import (
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/panelflow/readfiles"
	"github.com/notargets/panelflow/types"
)

// Config holds the run parameters. A zero Sampling rectangle or resolution
// takes the DefaultSamplingConfig values, so Config{} samples 200 x 200.
type Config struct {
	AlphaDeg  float64 // angle of attack, degrees
	Sampling  SamplingConfig
	Solver    LinearSolver // nil means LUSolver
	ProcLimit int          // goroutines for assembly and reconstruction, 0 means NumCPU
	SkipField bool         // stop after the solve
}

func DefaultConfig() Config {
	return Config{Sampling: DefaultSamplingConfig()}
}

// Result is only returned when every requested stage succeeded.
type Result struct {
	Alpha     float64 // radians
	Panels    *Panels
	Influence *mat.Dense
	Gamma     *mat.VecDense
	Cp        []float64
	Field     *VelocityField // nil with Config.SkipField
}

// RunFile loads a coordinate file and runs the pipeline on it.
func RunFile(filename string, cfg Config) (res *Result, err error) {
	var (
		loop types.Loop
	)
	if loop, _, err = readfiles.ReadCoordinatesFile(filename); err != nil {
		err = types.NewStageError(types.StageLoad, err)
		return
	}
	return Run(loop, cfg)
}

/*
	Run executes Load -> Discretize -> BuildMatrix -> Solve -> Reconstruct.
	The loop is closed first if needed. The first failing stage aborts the run
	and its error is returned as a *types.StageError, never alongside a partial
	result. Run keeps no state between calls.
*/
func Run(loop types.Loop, cfg Config) (res *Result, err error) {
	var (
		closed    types.Loop
		p         *Panels
		A         *mat.Dense
		gamma     *mat.VecDense
		field     *VelocityField
		alpha     = cfg.AlphaDeg * math.Pi / 180.
		stage     types.Stage
		stageTime time.Time
	)
	begin := func(s types.Stage) {
		stage, stageTime = s, time.Now()
	}
	done := func(fields log.Fields) {
		fields["stage"] = stage.String()
		fields["elapsed"] = time.Since(stageTime)
		log.WithFields(fields).Debug("stage complete")
	}
	fail := func(e error) (*Result, error) {
		log.WithFields(log.Fields{"stage": stage.String()}).WithError(e).Debug("stage failed")
		return nil, types.NewStageError(stage, e)
	}

	begin(types.StageLoad)
	if closed, err = loop.Close(types.ClosureTolerance); err != nil {
		return fail(err)
	}
	done(log.Fields{"points": closed.Len(), "appended": closed.Len() - loop.Len()})

	begin(types.StageDiscretize)
	if p, err = NewPanels(closed); err != nil {
		return fail(err)
	}
	done(log.Fields{"panels": p.N, "orientation": p.Orientation})

	begin(types.StageBuildMatrix)
	if A, err = BuildInfluenceMatrix(p, cfg.ProcLimit); err != nil {
		return fail(err)
	}
	done(log.Fields{"rows": p.N})

	begin(types.StageSolve)
	if gamma, err = SolveCirculation(A, p, alpha, cfg.Solver); err != nil {
		return fail(err)
	}
	done(log.Fields{"alpha": cfg.AlphaDeg})

	res = &Result{
		Alpha:     alpha,
		Panels:    p,
		Influence: A,
		Gamma:     gamma,
		Cp:        SurfacePressure(gamma),
	}
	if cfg.SkipField {
		return
	}

	begin(types.StageReconstruct)
	if field, err = ReconstructField(p, gamma, alpha, cfg.Sampling.withDefaults(), cfg.ProcLimit); err != nil {
		return fail(err)
	}
	done(log.Fields{"nx": field.Nx, "ny": field.Ny, "singular": len(field.Singular)})
	res.Field = field
	return
}
