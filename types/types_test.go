package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop(t *testing.T) {
	{ // Open square gets its first point appended
		l := NewLoop([]float64{0, 1, 1, 0}, []float64{0, 0, 1, 1})
		lc, err := l.Close(ClosureTolerance)
		require.NoError(t, err)
		assert.Equal(t, 5, lc.Len())
		assert.Equal(t, 4, l.Len()) // receiver untouched
		assert.Equal(t, []float64{0, 1, 1, 0, 0}, lc.X)
		assert.Equal(t, []float64{0, 0, 1, 1, 0}, lc.Y)
		assert.InDelta(t, 1., lc.SignedArea(), 1.e-15)
	}
	{ // Closed within tolerance is left alone
		l := NewLoop([]float64{0, 1, 1, 0, 1.e-12}, []float64{0, 0, 1, 1, 0})
		lc, err := l.Close(ClosureTolerance)
		require.NoError(t, err)
		assert.Equal(t, 5, lc.Len())
		assert.Equal(t, 1.e-12, lc.X[4])
	}
	{ // Clockwise ordering has negative area
		l := NewLoop([]float64{0, 0, 1, 1, 0}, []float64{0, 1, 1, 0, 0})
		assert.InDelta(t, -1., l.SignedArea(), 1.e-15)
	}
	{ // Degenerate loops
		var gErr *GeometryError
		_, err := Loop{}.Close(ClosureTolerance)
		assert.True(t, errors.As(err, &gErr))

		_, err = NewLoop([]float64{0, 1}, []float64{0, 1}).Close(ClosureTolerance)
		assert.True(t, errors.As(err, &gErr))

		// Collinear points close but enclose nothing
		_, err = NewLoop([]float64{0, 1, 2}, []float64{0, 1, 2}).Close(ClosureTolerance)
		require.True(t, errors.As(err, &gErr))
		assert.Contains(t, gErr.Error(), "no area")
	}
}

func TestErrors(t *testing.T) {
	{ // StageError unwraps to the typed error
		inner := &NumericDegeneracyError{Stage: StageBuildMatrix, I: 3, J: 4, X: 1, Y: 2,
			Reason: "coincident points"}
		err := NewStageError(StageBuildMatrix, inner)
		var nd *NumericDegeneracyError
		require.True(t, errors.As(err, &nd))
		assert.Equal(t, 3, nd.I)
		assert.Contains(t, err.Error(), "build-matrix")
		assert.Contains(t, err.Error(), "(3,4)")
		assert.Nil(t, NewStageError(StageLoad, nil))
	}
	{ // FormatError keeps the cause
		cause := fmt.Errorf("bad float")
		err := &FormatError{Line: 7, Text: "1.0 abc", Err: cause}
		assert.True(t, errors.Is(err, cause))
		assert.Contains(t, err.Error(), "line 7")
	}
	{
		assert.Equal(t, "solve", StageSolve.String())
		assert.Equal(t, "stage(42)", Stage(42).String())
	}
}
