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

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "panelflow",
	Short: "Two dimensional inviscid flow around closed bodies with a vortex panel method",
	Long: `
Discretizes a closed body contour into straight vortex panels, solves for the
panel circulations that make the surface a streamline and reconstructs the
velocity field on a rectangular grid.

panelflow run -F naca2412.dat -a 4 --csv field.csv --png field.png`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.panelflow.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging of every pipeline stage")
	rootCmd.PersistentFlags().Int("procLimit", 0, "maximum goroutines per stage, 0 uses all CPUs")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("procLimit", rootCmd.PersistentFlags().Lookup("procLimit"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".panelflow" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".panelflow")
	}

	viper.SetEnvPrefix("PANELFLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	readErr := viper.ReadInConfig()

	if lvl := viper.GetString("log-level"); len(lvl) != 0 {
		level, err := log.ParseLevel(lvl)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		log.SetLevel(level)
	}
	if viper.GetBool("verbose") {
		log.SetLevel(log.DebugLevel)
	}
	if readErr == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}
