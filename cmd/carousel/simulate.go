package main

import (
	"log/slog"

	"github.com/aretw0/carousel/internal/cli"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <show.yaml>",
	Short: "Dry-run a show on a virtual clock",
	Long: `Runs the show headless on a virtual clock for --ticks timer firings and prints
every rendering operation with its time offset. Nothing waits on the wall clock.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := commandLogger(cmd, slog.LevelWarn, "")
		if err != nil {
			return err
		}
		defer closeLog()

		ticks, _ := cmd.Flags().GetInt("ticks")
		return cli.RunSimulate(cmd.OutOrStdout(), args[0], ticks, logger)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().IntP("ticks", "n", 5, "Number of timer ticks to simulate")
}
