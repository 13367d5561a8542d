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

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/panelflow/graphics2D"
	"github.com/notargets/panelflow/sweep"
	"github.com/notargets/panelflow/utils"
)

// SweepCmd represents the sweep command
var SweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Rank NACA 4-digit sections by mean suction peak over a range of angles",
	Long: `
Solves every combination of camber, camber position, thickness and angle of
attack, records the suction peak -Cp_min of each run, averages it per section
and prints the best sections.

panelflow sweep --camber 0,2,4 --position 2,4 --thickness 12,15 --alpha 0,2,4,6`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
			g   = sweep.DefaultGrid()
		)
		g.Camber, _ = cmd.Flags().GetIntSlice("camber")
		g.Position, _ = cmd.Flags().GetIntSlice("position")
		g.Thickness, _ = cmd.Flags().GetIntSlice("thickness")
		g.AlphaDeg, _ = cmd.Flags().GetFloat64Slice("alpha")
		g.NChord, _ = cmd.Flags().GetInt("nChord")
		top, _ := cmd.Flags().GetInt("top")
		solverName, _ := cmd.Flags().GetString("solver")
		pngFile, _ := cmd.Flags().GetString("png")
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start().Stop()
		}
		if err = RunSweep(g, solverName, top, viper.GetInt("procLimit"), pngFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(SweepCmd)
	g := sweep.DefaultGrid()
	SweepCmd.Flags().IntSlice("camber", g.Camber, "maximum camber digits, percent chord")
	SweepCmd.Flags().IntSlice("position", g.Position, "camber position digits, tenths of chord")
	SweepCmd.Flags().IntSlice("thickness", g.Thickness, "thickness, percent chord")
	SweepCmd.Flags().Float64Slice("alpha", g.AlphaDeg, "angles of attack, degrees")
	SweepCmd.Flags().Int("nChord", g.NChord, "chordwise intervals per surface")
	SweepCmd.Flags().Int("top", 5, "number of sections to print")
	SweepCmd.Flags().String("solver", "LU", "linear solver, LU or QR")
	SweepCmd.Flags().String("png", "", "draw the ranking as a bar chart")
	SweepCmd.Flags().Bool("profile", false, "write a CPU profile")
}

func RunSweep(g sweep.Grid, solverName string, top, ProcLimit int, pngFile string) (err error) {
	solver, err := NewSolver(solverName)
	if err != nil {
		return
	}
	res := sweep.NewResults()
	failures, err := sweep.Run(g, res, ProcLimit, solver)
	if err != nil {
		return
	}
	for _, f := range failures {
		log.Warn(f.Error())
	}
	log.Debug(utils.GetMemUsage())
	fmt.Printf("%d runs, %d failed\n", res.Len()+len(failures), len(failures))
	ranked := res.Top(top)
	sweep.Print(os.Stdout, "Mean suction peak -Cp_min", ranked)
	if len(pngFile) != 0 {
		opts := graphics2D.DefaultPlotOptions()
		opts.Title = fmt.Sprintf("NACA 4-digit sections over %d angles of attack", len(g.AlphaDeg))
		err = graphics2D.PlotRanking(ranked, "mean suction peak -Cp_min", opts, pngFile)
	}
	return
}
