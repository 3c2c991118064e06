package main

import (
	"log/slog"
	"os"

	"github.com/aretw0/carousel/internal/cli"
	"github.com/aretw0/carousel/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <show.yaml>",
	Short: "Summarize a show",
	Long:  `Prints the effective configuration and slot list of a show, rendered as markdown.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := commandLogger(cmd, slog.LevelWarn, "")
		if err != nil {
			return err
		}
		defer closeLog()

		plain, _ := cmd.Flags().GetBool("plain")
		opts := cli.InspectOptions{Plain: plain || !tui.IsTerminal(os.Stdout)}
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			opts.Width = w
		}
		return cli.RunInspect(cmd.OutOrStdout(), args[0], opts, logger)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("plain", false, "Print raw markdown (default when not on a terminal)")
}
