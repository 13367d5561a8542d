package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// PolarPoint is one operating point from an XFOIL polar accumulation file.
type PolarPoint struct {
	Alpha, CL, CD float64
}

// LiftToDrag returns CL/CD, or CL alone when the drag is not positive.
func (pp PolarPoint) LiftToDrag() float64 {
	if pp.CD > 0 {
		return pp.CL / pp.CD
	}
	return pp.CL
}

type Polar struct {
	Airfoil string // from the "Calculated polar for:" line, may be empty
	Points  []PolarPoint
}

func ReadPolarFile(filename string) (p *Polar, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return
	}
	defer file.Close()
	if p, err = ReadPolar(file); err != nil {
		err = fmt.Errorf("%s: %w", filename, err)
	}
	return
}

// ReadPolar reads rows after the dashed column separator of an XFOIL polar.
// Rows with fewer than three fields or non-numeric leading fields are skipped.
func ReadPolar(r io.Reader) (p *Polar, err error) {
	var (
		reader      = bufio.NewReader(r)
		line        string
		eof         bool
		dataStarted bool
	)
	p = &Polar{}
	for !eof {
		if line, eof, err = getLineEOF(reader); err != nil {
			return
		}
		trimmed := strings.TrimSpace(line)
		if ind := strings.Index(trimmed, "Calculated polar for:"); ind >= 0 {
			p.Airfoil = strings.TrimSpace(trimmed[ind+len("Calculated polar for:"):])
			continue
		}
		if strings.Contains(trimmed, "------") {
			dataStarted = true
			continue
		}
		if !dataStarted || len(trimmed) == 0 {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 3 {
			continue
		}
		var pp PolarPoint
		if pp.Alpha, err = strconv.ParseFloat(fields[0], 64); err != nil {
			err = nil
			continue
		}
		if pp.CL, err = strconv.ParseFloat(fields[1], 64); err != nil {
			err = nil
			continue
		}
		if pp.CD, err = strconv.ParseFloat(fields[2], 64); err != nil {
			err = nil
			continue
		}
		p.Points = append(p.Points, pp)
	}
	return
}

// Last returns the final operating point, which for a single-alpha run is the
// only one.
func (p *Polar) Last() (pp PolarPoint, ok bool) {
	if len(p.Points) == 0 {
		return
	}
	return p.Points[len(p.Points)-1], true
}
