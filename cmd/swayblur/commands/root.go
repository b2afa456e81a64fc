// Package commands wires the swayblur CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "swayblur",
		Short: "swayblur - workspace-aware wallpaper blurring for sway",
		Long: `swayblur animates a progressive blur of each monitor's wallpaper
whenever the focused workspace on that monitor has windows, and unblurs it
again when the workspace empties.

Blurred frames are pre-rendered with ImageMagick into a per-wallpaper cache
and painted through oguri, so animations are just a handful of background
swaps per focus change.`,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/swayblur/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Int("status-port", 0, "port for the HTTP status server (0 disables it)")
	rootCmd.PersistentFlags().Bool("pretty", false, "human-friendly console log output")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("status_port", rootCmd.PersistentFlags().Lookup("status-port"))
	viper.BindPFlag("pretty", rootCmd.PersistentFlags().Lookup("pretty"))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}
