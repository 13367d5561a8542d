package sweep

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/panelflow/geometry2D"
	"github.com/notargets/panelflow/model_problems/VortexPanel2D"
	"github.com/notargets/panelflow/utils"
)

// Grid spans NACA 4-digit sections and angles of attack.
type Grid struct {
	Camber    []int // first digit, percent chord
	Position  []int // second digit, tenths of chord
	Thickness []int // last two digits, percent chord
	AlphaDeg  []float64
	NChord    int // chordwise intervals per surface
}

func DefaultGrid() Grid {
	g := Grid{
		Camber:    []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		Position:  []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		Thickness: []int{10, 15, 20, 25, 30, 35, 40},
		NChord:    40,
	}
	for a := 0; a <= 6; a++ {
		g.AlphaDeg = append(g.AlphaDeg, float64(a))
	}
	return g
}

type Case struct {
	Foil     geometry2D.NACA4
	AlphaDeg float64
}

// Cases enumerates the grid, angle of attack varying fastest.
func (g Grid) Cases() (cases []Case, err error) {
	for _, c := range g.Camber {
		for _, p := range g.Position {
			for _, t := range g.Thickness {
				var foil geometry2D.NACA4
				if foil, err = geometry2D.NewNACA4(c, p, t); err != nil {
					return nil, err
				}
				for _, a := range g.AlphaDeg {
					cases = append(cases, Case{Foil: foil, AlphaDeg: a})
				}
			}
		}
	}
	return
}

// Failure is a case the pipeline rejected.
type Failure struct {
	Case Case
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s at %g deg: %v", f.Case.Foil.Name(), f.Case.AlphaDeg, f.Err)
}

/*
	Run solves every case of the grid and records the suction peak, -Cp_min,
	of each successful run in res under the airfoil name. Cases are split into
	ProcLimit contiguous ranges, one goroutine each, and every run is solved
	serially inside its goroutine. Failed cases are returned and do not stop
	the sweep.
*/
func Run(g Grid, res *Results, ProcLimit int, solver VortexPanel2D.LinearSolver) (failures []Failure, err error) {
	var (
		cases []Case
	)
	if cases, err = g.Cases(); err != nil {
		return
	}
	if len(cases) == 0 {
		return
	}
	var (
		pm    = utils.NewPartitionMap(utils.ParallelDegree(ProcLimit, len(cases)), len(cases))
		peaks = make([]float64, len(cases))
		errs  = make([]error, len(cases))
		start = time.Now()
	)
	pm.ForEach(func(_, cMin, cMax int) {
		for i := cMin; i < cMax; i++ {
			peaks[i], errs[i] = SuctionPeak(cases[i], g.NChord, solver)
		}
	})
	// Recorded in case order so the collection does not depend on scheduling
	for i, c := range cases {
		if errs[i] != nil {
			failures = append(failures, Failure{Case: c, Err: errs[i]})
			log.WithError(errs[i]).WithField("airfoil", c.Foil.Name()).Debug("case failed")
			continue
		}
		res.Add(c.Foil.Name(), peaks[i])
	}
	log.WithFields(log.Fields{
		"cases":    len(cases),
		"failed":   len(failures),
		"elapsed":  time.Since(start),
		"parallel": pm.ParallelDegree,
	}).Info("sweep complete")
	return
}

// SuctionPeak solves a single case without the field stage and returns
// -Cp_min over the surface.
func SuctionPeak(c Case, nChord int, solver VortexPanel2D.LinearSolver) (peak float64, err error) {
	loop, err := c.Foil.Contour(nChord)
	if err != nil {
		return
	}
	r, err := VortexPanel2D.Run(loop, VortexPanel2D.Config{
		AlphaDeg:  c.AlphaDeg,
		Solver:    solver,
		ProcLimit: 1,
		SkipField: true,
	})
	if err != nil {
		return
	}
	CpMin, _ := VortexPanel2D.SuctionPeak(r.Cp)
	return -CpMin, nil
}
