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

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/femesh/logger"
)

var cfgFile string

// profiler is the running profile, if any, between PreRun and PostRun
var profiler interface{ Stop() }

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "femesh",
		Short: "Convert FEA result reports into a packed mesh document",
		Long: `
Reads the coordinate, displacement, stress, connectivity and palette reports
of a finite element analysis export and writes a compact mesh document for a
web viewer, with vertices renumbered densely in the order elements use them.

femesh convert -I job.yaml
femesh summary -I job.yaml`,
		SilenceUsage:       true,
		PersistentPreRunE:  startRun,
		PersistentPostRunE: stopRun,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.femesh.yaml)")
	rootCmd.PersistentFlags().String("logLevel", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("logFile", "", "also write JSON logs to this file, rotated")
	rootCmd.PersistentFlags().String("profile", "", "write a cpu or mem profile to the working directory")
	for _, key := range []string{"logLevel", "logFile", "profile"} {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
	rootCmd.AddCommand(newConvertCmd(), newSummaryCmd())
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
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
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".femesh" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".femesh")
	}

	viper.SetEnvPrefix("FEMESH")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func startRun(cmd *cobra.Command, args []string) (err error) {
	if err = logger.Init(viper.GetString("logLevel"), viper.GetString("logFile")); err != nil {
		return
	}
	switch mode := viper.GetString("profile"); mode {
	case "":
	case "cpu":
		profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
	case "mem":
		profiler = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet)
	default:
		return fmt.Errorf("unknown profile mode %q, use cpu or mem", mode)
	}
	return
}

func stopRun(cmd *cobra.Command, args []string) (err error) {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
	logger.Sync()
	return
}
