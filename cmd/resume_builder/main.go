// Package main provides the resume_builder CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Resume Builder PDF generator",
	Long: `Resume Builder turns structured resume JSON into a one-page PDF with
section dividers, optionally correcting spelling and grammar first.

Configuration is layered: command-line flags override the --config file, which
overrides environment variables, which override built-in defaults.`,
	SilenceUsage: true,
}

var (
	rootConfigPath string
	rootVerbose    bool
	rootDataDir    string
	rootGradient   string
	rootProvider   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Path to config.json file")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
	rootCmd.PersistentFlags().StringVar(&rootDataDir, "data-dir", "", "Directory holding resumes.json and generated PDFs")
	rootCmd.PersistentFlags().StringVar(&rootGradient, "gradient", "", "Divider fill: auto, on or off")
	rootCmd.PersistentFlags().StringVar(&rootProvider, "correction-provider", "", "Correction backend: languagetool, gemini or none")
}

// resolveConfig applies the persistent flags that were set on top of the
// config file, environment and defaults.
func resolveConfig() (config.Config, error) {
	var overrides config.Config
	flags := rootCmd.PersistentFlags()
	if flags.Changed("data-dir") {
		overrides.DataDir = rootDataDir
	}
	if flags.Changed("gradient") {
		overrides.Gradient = rootGradient
	}
	if flags.Changed("correction-provider") {
		overrides.CorrectionProvider = rootProvider
	}
	if flags.Changed("verbose") {
		overrides.Verbose = rootVerbose
	}
	return overrides.Resolve(rootConfigPath)
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
