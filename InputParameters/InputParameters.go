package InputParameters

import (
	"fmt"
	"io"
	"strings"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML case file
type PanelParameters struct {
	Title        string     `yaml:"Title"`
	Alpha        float64    `yaml:"Alpha"` // degrees
	GeometryFile string     `yaml:"GeometryFile"`
	NACA         string     `yaml:"NACA"`   // 4 digit code, used when no geometry file is given
	NChord       int        `yaml:"NChord"` // chordwise intervals per surface for NACA sections
	XBounds      [2]float64 `yaml:"XBounds"`
	YBounds      [2]float64 `yaml:"YBounds"`
	Resolution   int        `yaml:"Resolution"`
	ProcLimit    int        `yaml:"ProcLimit"`
	Solver       string     `yaml:"Solver"` // LU or QR
}

func (pp *PanelParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, pp)
}

// Validate checks the fields that do not have a usable zero value.
func (pp *PanelParameters) Validate() error {
	if len(pp.GeometryFile) == 0 && len(pp.NACA) == 0 {
		return fmt.Errorf("case %q needs a GeometryFile or a NACA code", pp.Title)
	}
	switch strings.ToUpper(pp.Solver) {
	case "", "LU", "QR":
	default:
		return fmt.Errorf("unknown solver %q, use LU or QR", pp.Solver)
	}
	return nil
}

func (pp *PanelParameters) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", pp.Title)
	fmt.Fprintf(w, "%8.5f\t\t= Alpha\n", pp.Alpha)
	if len(pp.GeometryFile) != 0 {
		fmt.Fprintf(w, "[%s]\t= Geometry File\n", pp.GeometryFile)
	} else {
		fmt.Fprintf(w, "[NACA %s]\t\t= Geometry, %d Chordwise Intervals\n", pp.NACA, pp.NChord)
	}
	fmt.Fprintf(w, "[%g, %g]x[%g, %g]\t= Sampling Bounds\n",
		pp.XBounds[0], pp.XBounds[1], pp.YBounds[0], pp.YBounds[1])
	fmt.Fprintf(w, "[%d]\t\t\t\t= Resolution\n", pp.Resolution)
	if len(pp.Solver) != 0 {
		fmt.Fprintf(w, "[%s]\t\t\t\t= Solver\n", pp.Solver)
	}
}
