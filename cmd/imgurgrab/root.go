package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	verbosity  int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "imgurgrab",
	Short: "Download imgur albums, recursively if you like",
	Long: `imgurgrab downloads imgur albums to disk: every image and video in
listing order, together with titles and descriptions.

With --recursive it also follows album links found in image and album
descriptions, crawling the whole reachable album graph while visiting
each album only once. Output is either plain files per item or a single
HTML page per album.

An imgur API client ID is required; register one at
https://api.imgur.com/oauth2/addclient and store it with
'imgurgrab auth set'.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.config/imgurgrab/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.SetVersionTemplate(`imgurgrab {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// effectiveLogLevel folds -v verbosity into the configured log level.
func effectiveLogLevel() string {
	if verbosity > 0 {
		return "debug"
	}
	return logLevel
}
