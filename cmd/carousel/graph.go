package main

import (
	"log/slog"

	"github.com/aretw0/carousel/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <show.yaml>",
	Short: "Export the rotation cycle visualization",
	Long:  `Outputs a Mermaid diagram (graph LR) of the rotation cycle, one edge per transition.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := commandLogger(cmd, slog.LevelWarn, "")
		if err != nil {
			return err
		}
		defer closeLog()
		return cli.RunGraph(cmd.OutOrStdout(), args[0], logger)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
