//go:build cgo && netlib
// +build cgo,netlib

package utils

/*
#cgo CFLAGS: -march=native -mavx -mavx2
#cgo LDFLAGS: -lopenblas -llapacke -lgfortran -lm -lpthread
#include <cblas.h>
#include <lapacke.h>
*/
import "C"

import (
	log "github.com/sirupsen/logrus"

	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Built with -tags netlib, the dense solves run on OpenBLAS. Multithreaded
// BLAS can reorder reductions, so bit-identical circulation across runs is
// only guaranteed with OPENBLAS_NUM_THREADS=1.
func init() {
	blas64.Use(netblas.Implementation{})
	log.Info("Using netlib to accelerate BLAS")
}
