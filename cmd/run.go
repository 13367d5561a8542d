/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/panelflow/InputParameters"
	"github.com/notargets/panelflow/geometry2D"
	"github.com/notargets/panelflow/graphics2D"
	"github.com/notargets/panelflow/model_problems/VortexPanel2D"
	"github.com/notargets/panelflow/readfiles"
	"github.com/notargets/panelflow/types"
)

type ModelPanel struct {
	GeometryFile string
	ICFile       string
	NACA         string
	NChord       int
	Alpha        float64
	XBounds      [2]float64
	YBounds      [2]float64
	Resolution   int
	Fit          float64 // pad the body bounding box by this fraction for sampling, 0 keeps the bounds
	Solver       string
	ProcLimit    int
	CSVFile      string
	PNGFile      string
	Profile      bool
}

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Solve the flow around one body and sample its velocity field",
	Long: `
Solves for the panel circulations on a closed contour read from a coordinate
file (-F) or generated from a NACA 4-digit code (--naca), then samples the
velocity field on a rectangular grid.

panelflow run -F naca2412.dat -a 4 --csv field.csv
panelflow run --naca 0012 -a 2 --fit 0.5 --png field.png
panelflow run -I case.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mp := &ModelPanel{}
		mp.GeometryFile, _ = cmd.Flags().GetString("geometryFile")
		mp.ICFile, _ = cmd.Flags().GetString("inputConditionsFile")
		mp.NACA, _ = cmd.Flags().GetString("naca")
		mp.NChord, _ = cmd.Flags().GetInt("nChord")
		mp.Alpha, _ = cmd.Flags().GetFloat64("alpha")
		mp.XBounds[0], _ = cmd.Flags().GetFloat64("xMin")
		mp.XBounds[1], _ = cmd.Flags().GetFloat64("xMax")
		mp.YBounds[0], _ = cmd.Flags().GetFloat64("yMin")
		mp.YBounds[1], _ = cmd.Flags().GetFloat64("yMax")
		mp.Resolution, _ = cmd.Flags().GetInt("resolution")
		mp.Fit, _ = cmd.Flags().GetFloat64("fit")
		mp.Solver, _ = cmd.Flags().GetString("solver")
		mp.CSVFile, _ = cmd.Flags().GetString("csv")
		mp.PNGFile, _ = cmd.Flags().GetString("png")
		mp.Profile, _ = cmd.Flags().GetBool("profile")
		mp.ProcLimit = viper.GetInt("procLimit")
		if len(mp.ICFile) != 0 {
			if err = mp.applyCaseFile(); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
		}
		if mp.Profile {
			defer profile.Start().Stop()
		}
		if err = RunPanel(mp); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(RunCmd)
	sc := VortexPanel2D.DefaultSamplingConfig()
	RunCmd.Flags().StringP("geometryFile", "F", "", "coordinate file, a header line then x y rows")
	RunCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML case file, overrides the geometry, angle and sampling flags")
	RunCmd.Flags().String("naca", "", "NACA 4-digit code, used when no coordinate file is given")
	RunCmd.Flags().Int("nChord", 80, "chordwise intervals per surface for NACA sections")
	RunCmd.Flags().Float64P("alpha", "a", 0, "angle of attack, degrees")
	RunCmd.Flags().Float64("xMin", sc.XBounds[0], "sampling window")
	RunCmd.Flags().Float64("xMax", sc.XBounds[1], "sampling window")
	RunCmd.Flags().Float64("yMin", sc.YBounds[0], "sampling window")
	RunCmd.Flags().Float64("yMax", sc.YBounds[1], "sampling window")
	RunCmd.Flags().IntP("resolution", "r", sc.Resolution, "sample points per axis")
	RunCmd.Flags().Float64("fit", 0, "sample the body bounding box padded by this fraction of its size instead of the window")
	RunCmd.Flags().String("solver", "LU", "linear solver, LU or QR")
	RunCmd.Flags().String("csv", "", "write the sampled field as x,y,u,v rows")
	RunCmd.Flags().String("png", "", "render the speed, velocity arrows and contour to an image")
	RunCmd.Flags().Bool("profile", false, "write a CPU profile")
}

func (mp *ModelPanel) applyCaseFile() (err error) {
	var (
		data []byte
		pp   InputParameters.PanelParameters
	)
	if data, err = os.ReadFile(mp.ICFile); err != nil {
		return
	}
	if err = pp.Parse(data); err != nil {
		return fmt.Errorf("%s: %w", mp.ICFile, err)
	}
	if err = pp.Validate(); err != nil {
		return fmt.Errorf("%s: %w", mp.ICFile, err)
	}
	pp.Print(os.Stdout)
	mp.GeometryFile, mp.NACA, mp.Alpha = pp.GeometryFile, pp.NACA, pp.Alpha
	if pp.NChord != 0 {
		mp.NChord = pp.NChord
	}
	if pp.XBounds != [2]float64{} {
		mp.XBounds = pp.XBounds
	}
	if pp.YBounds != [2]float64{} {
		mp.YBounds = pp.YBounds
	}
	if pp.Resolution != 0 {
		mp.Resolution = pp.Resolution
	}
	if pp.ProcLimit != 0 {
		mp.ProcLimit = pp.ProcLimit
	}
	if len(pp.Solver) != 0 {
		mp.Solver = pp.Solver
	}
	return
}

// Geometry loads or generates the body contour.
func (mp *ModelPanel) Geometry() (loop types.Loop, title string, err error) {
	switch {
	case len(mp.GeometryFile) != 0:
		if loop, title, err = readfiles.ReadCoordinatesFile(mp.GeometryFile); err != nil {
			err = types.NewStageError(types.StageLoad, err)
		}
		if len(title) == 0 {
			title = mp.GeometryFile
		}
	case len(mp.NACA) != 0:
		var foil geometry2D.NACA4
		if foil, err = geometry2D.ParseNACA4(mp.NACA); err != nil {
			return
		}
		loop, err = foil.Contour(mp.NChord)
		title = foil.Name()
	default:
		err = fmt.Errorf("must supply a coordinate file (-F, --geometryFile) or a NACA code (--naca)")
	}
	return
}

func (mp *ModelPanel) Config(loop types.Loop) (cfg VortexPanel2D.Config, err error) {
	cfg = VortexPanel2D.Config{
		AlphaDeg:  mp.Alpha,
		ProcLimit: mp.ProcLimit,
		Sampling: VortexPanel2D.SamplingConfig{
			XBounds:    mp.XBounds,
			YBounds:    mp.YBounds,
			Resolution: mp.Resolution,
		},
	}
	if cfg.Solver, err = NewSolver(mp.Solver); err != nil {
		return
	}
	if mp.Fit > 0 {
		if bb := geometry2D.NewBoundingBox(loop); bb != nil {
			bb = bb.Pad(mp.Fit)
			cfg.Sampling.XBounds = [2]float64{bb.XMin[0], bb.XMax[0]}
			cfg.Sampling.YBounds = [2]float64{bb.XMin[1], bb.XMax[1]}
		}
	}
	return
}

func NewSolver(name string) (s VortexPanel2D.LinearSolver, err error) {
	switch strings.ToUpper(name) {
	case "", "LU":
		s = VortexPanel2D.LUSolver{}
	case "QR":
		s = VortexPanel2D.QRSolver{}
	default:
		err = fmt.Errorf("unknown solver %q, use LU or QR", name)
	}
	return
}

func RunPanel(mp *ModelPanel) (err error) {
	var (
		loop  types.Loop
		title string
		cfg   VortexPanel2D.Config
		res   *VortexPanel2D.Result
	)
	if loop, title, err = mp.Geometry(); err != nil {
		return
	}
	if cfg, err = mp.Config(loop); err != nil {
		return
	}
	window := &geometry2D.BoundingBox{
		XMin: [2]float64{cfg.Sampling.XBounds[0], cfg.Sampling.YBounds[0]},
		XMax: [2]float64{cfg.Sampling.XBounds[1], cfg.Sampling.YBounds[1]},
	}
	for i := range loop.X {
		if !window.PointInside(loop.X[i], loop.Y[i]) {
			log.WithFields(log.Fields{"x": loop.X[i], "y": loop.Y[i]}).
				Warn("body extends outside the sampling window")
			break
		}
	}
	if bb := geometry2D.NewBoundingBox(loop); bb != nil {
		log.WithFields(log.Fields{"centroid": bb.Centroid(), "min": bb.XMin, "max": bb.XMax}).Debug("body extent")
	}
	fmt.Printf("%s, %d points, alpha = %g deg\n", title, loop.Len(), mp.Alpha)
	if res, err = VortexPanel2D.Run(loop, cfg); err != nil {
		return
	}
	CpMin, panel := VortexPanel2D.SuctionPeak(res.Cp)
	fmt.Printf("%d panels, perimeter %8.5f\n", res.Panels.N, res.Panels.Perimeter())
	fmt.Printf("Cp min = %8.5f at (%8.5f, %8.5f)\n", CpMin, res.Panels.XC[panel], res.Panels.YC[panel])
	fmt.Printf("%dx%d samples, %d singular\n", res.Field.Nx, res.Field.Ny, len(res.Field.Singular))
	if len(mp.CSVFile) != 0 {
		if err = writeFieldCSV(res.Field, mp.CSVFile); err != nil {
			return
		}
	}
	if len(mp.PNGFile) != 0 {
		opts := graphics2D.DefaultPlotOptions()
		opts.Title = fmt.Sprintf("%s, alpha = %g deg", title, mp.Alpha)
		if err = graphics2D.PlotField(res.Field, loop, opts, mp.PNGFile); err != nil {
			return
		}
	}
	return
}

func writeFieldCSV(vf *VortexPanel2D.VelocityField, filename string) (err error) {
	var (
		file *os.File
	)
	if file, err = os.Create(filename); err != nil {
		return
	}
	if err = vf.WriteCSV(file); err != nil {
		file.Close()
		return
	}
	return file.Close()
}
