package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/carousel/internal/cli"
	"github.com/aretw0/carousel/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "carousel",
	Short: "Carousel rotates web pages on a kiosk screen",
	Long: `Carousel shows a list of web pages one at a time in a full-screen kiosk,
switching between them on a fixed interval with a configurable transition.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (env CAROUSEL_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file (env CAROUSEL_LOG_FILE)")
}

// commandLogger builds the logger from flags, falling back to the environment.
func commandLogger(cmd *cobra.Command, fallback slog.Level, fallbackFile string) (*slog.Logger, func() error, error) {
	level := fallback
	if s, _ := cmd.Flags().GetString("log-level"); s != "" {
		l, err := logging.ParseLevel(s)
		if err != nil {
			return nil, nil, err
		}
		level = l
	}
	file, _ := cmd.Flags().GetString("log-file")
	if file == "" {
		file = fallbackFile
	}
	return cli.CreateLogger(cli.LogOptions{Level: level, File: file})
}
