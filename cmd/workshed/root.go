// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for workshed.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug-level resolution traces
	verbose bool
	// cacheDir overrides the local artifact cache root
	cacheDir string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "workshed",
		Short: "A workspace-aware artifact resolver for multi-module builds",
		Long: TitleStyle.Render("workshed") + SubtitleStyle.Render(" - a workspace-aware artifact resolver") + `

workshed inspects a multi-module workspace and answers artifact queries
from the workspace's own build outputs instead of a package cache. Every
module directory carries a workmod.cue descriptor declaring its identity,
version and packaging.

` + SubtitleStyle.Render("Examples:") + `
  workshed workspace show             List the modules of the workspace in .
  workshed workspace show --toml      Export the workspace snapshot as TOML
  workshed resolve io.acme:core:1.0   Dry-run resolution of a coordinate`,
	}
)

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "local artifact cache root (default is $HOME/.workshed/cache)")

	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(resolveCmd)
}

// initLogging routes the library's slog output through charmbracelet/log.
func initLogging() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	slog.SetDefault(slog.New(logger))
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
