package graphics2D

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/panelflow/readfiles"
	"github.com/notargets/panelflow/sweep"
)

func TestPlotCharts(t *testing.T) {
	dir := t.TempDir()
	saved := func(fname string) {
		fi, err := os.Stat(fname)
		require.NoError(t, err)
		assert.True(t, fi.Size() > 0)
	}
	{ // Ranking bars
		res := sweep.NewResults()
		for _, rec := range []sweep.Record{
			{Name: "NACA 2412", Value: 1.2}, {Name: "NACA 0012", Value: 0.8},
			{Name: "NACA 4415", Value: 1.5}, {Name: "NACA 2412", Value: 1.0},
		} {
			res.Add(rec.Name, rec.Value)
		}
		fname := filepath.Join(dir, "ranking.png")
		opts := DefaultPlotOptions()
		opts.Title = "mean suction peak"
		require.NoError(t, PlotRanking(res.Top(5), "-Cp min", opts, fname))
		saved(fname)
		assert.Error(t, PlotRanking(nil, "-Cp min", opts, fname))
	}
	{ // Lift curves, empty polars are skipped
		polars := []*readfiles.Polar{
			{Airfoil: "NACA 2412", Points: []readfiles.PolarPoint{
				{Alpha: 0, CL: 0.25, CD: 0.005}, {Alpha: 2, CL: 0.47, CD: 0.006}, {Alpha: 4, CL: 0.70, CD: 0.007},
			}},
			{Airfoil: "empty"},
			{Airfoil: "NACA 0012", Points: []readfiles.PolarPoint{{Alpha: 4, CL: 0.4, CD: 0.01}}},
		}
		fname := filepath.Join(dir, "lift.png")
		require.NoError(t, PlotPolars(polars, PlotOptions{}, fname))
		saved(fname)
		assert.Error(t, PlotPolars(polars[1:2], PlotOptions{}, fname))
		assert.Error(t, PlotPolars(nil, PlotOptions{}, fname))
	}
}
