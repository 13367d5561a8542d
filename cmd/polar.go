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
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notargets/panelflow/graphics2D"
	"github.com/notargets/panelflow/readfiles"
	"github.com/notargets/panelflow/sweep"
)

// PolarCmd represents the polar command
var PolarCmd = &cobra.Command{
	Use:   "polar [polar files]",
	Short: "Rank XFOIL polar files by mean lift to drag ratio",
	Long: `
Reads XFOIL polar accumulation files, computes CL/CD for every operating point
(CL alone when CD is not positive) and ranks the airfoils by their mean.

panelflow polar polars/*.txt`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		top, _ := cmd.Flags().GetInt("top")
		last, _ := cmd.Flags().GetBool("last")
		pngFile, _ := cmd.Flags().GetString("png")
		liftFile, _ := cmd.Flags().GetString("liftCurve")
		res, polars, err := RankPolars(args, last)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		ranked := res.Top(top)
		sweep.Print(os.Stdout, "Mean L/D", ranked)
		if err = PlotPolarResults(ranked, polars, pngFile, liftFile); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(PolarCmd)
	PolarCmd.Flags().Int("top", 5, "number of airfoils to print")
	PolarCmd.Flags().Bool("last", false, "use only the last operating point of each file")
	PolarCmd.Flags().String("png", "", "draw the ranking as a bar chart")
	PolarCmd.Flags().String("liftCurve", "", "draw CL over alpha for every polar")
}

// RankPolars collects the L/D of each file under its airfoil name, or the
// file name when the polar does not carry one. Files without data rows are
// skipped with a warning. The returned polars carry the name they were
// ranked under.
func RankPolars(files []string, last bool) (res *sweep.Results, polars []*readfiles.Polar, err error) {
	res = sweep.NewResults()
	for _, fname := range files {
		var p *readfiles.Polar
		if p, err = readfiles.ReadPolarFile(fname); err != nil {
			return nil, nil, err
		}
		name := p.Airfoil
		if len(name) == 0 {
			name = strings.TrimSuffix(filepath.Base(fname), filepath.Ext(fname))
			p.Airfoil = name
		}
		if len(p.Points) == 0 {
			log.WithField("file", fname).Warn("no operating points")
			continue
		}
		polars = append(polars, p)
		if last {
			pp, _ := p.Last()
			res.Add(name, pp.LiftToDrag())
			continue
		}
		for _, pp := range p.Points {
			res.Add(name, pp.LiftToDrag())
		}
	}
	return
}

// PlotPolarResults draws the ranking and the lift curves, skipping either
// when its file name is empty.
func PlotPolarResults(ranked []sweep.Ranked, polars []*readfiles.Polar, pngFile, liftFile string) (err error) {
	opts := graphics2D.DefaultPlotOptions()
	if len(pngFile) != 0 {
		opts.Title = "Mean L/D of XFOIL polars"
		if err = graphics2D.PlotRanking(ranked, "L/D", opts, pngFile); err != nil {
			return
		}
	}
	if len(liftFile) != 0 {
		opts.Title = "Lift Curve"
		err = graphics2D.PlotPolars(polars, opts, liftFile)
	}
	return
}
