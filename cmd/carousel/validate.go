package main

import (
	"github.com/aretw0/carousel/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <show.yaml>",
	Short: "Check a show file for problems",
	Long:  `Reports every problem in the show file: URLs, timings, the transition name and its options.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunValidate(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
