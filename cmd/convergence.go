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
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/panelflow/model_problems/VortexPanel2D"
)

// ConvergenceCmd represents the convergence command
var ConvergenceCmd = &cobra.Command{
	Use:   "convergence",
	Short: "Measure the circulation error on a unit circle against the exact solution",
	Long: `
Solves the flow around a unit circle for each panel count and compares the
panel circulations with the exact surface speed 2|sin(theta)|. The results
are written as CSV for tools/convOrder.

panelflow convergence -n 12,24,48,96 -o cylinder.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		Ns, _ := cmd.Flags().GetIntSlice("panels")
		outFile, _ := cmd.Flags().GetString("output")
		var (
			w   io.Writer = os.Stdout
			err error
		)
		if len(outFile) != 0 {
			var file *os.File
			if file, err = os.Create(outFile); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			defer file.Close()
			w = file
		}
		if err = RunConvergence(w, Ns, viper.GetInt("procLimit")); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(ConvergenceCmd)
	ConvergenceCmd.Flags().IntSliceP("panels", "n", []int{12, 24, 36, 72, 144}, "panel counts")
	ConvergenceCmd.Flags().StringP("output", "o", "", "CSV output file, stdout when empty")
}

func RunConvergence(w io.Writer, Ns []int, ProcLimit int) (err error) {
	studies := make([]VortexPanel2D.CylinderError, 0, len(Ns))
	for _, N := range Ns {
		var ce VortexPanel2D.CylinderError
		if ce, err = VortexPanel2D.CylinderStudy(N, ProcLimit); err != nil {
			return fmt.Errorf("%d panels: %w", N, err)
		}
		studies = append(studies, ce)
	}
	return VortexPanel2D.WriteConvergenceCSV(w, "cylinder", studies)
}
