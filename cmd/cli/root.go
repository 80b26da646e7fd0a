package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serverAddr string

var rootCmd = &cobra.Command{
	Use:   "ryzl-cli",
	Short: "ryzl-cli is the command-line interface for the ryzl review service.",
	Long:  `A CLI for interacting with the ryzl review service, allowing diffs to be submitted for review and job results to be inspected.`,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&serverAddr, "server", "s", "http://localhost:8080", "Base URL of the ryzl server")
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("RYZL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if addr := viper.GetString("SERVER_ADDR"); addr != "" && !rootCmd.PersistentFlags().Changed("server") {
		serverAddr = addr
	}
}
