package main

import (
	"github.com/aretw0/carousel/internal/cli"
	"github.com/spf13/cobra"
)

var transitionsCmd = &cobra.Command{
	Use:   "transitions",
	Short: "List the built-in transitions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunTransitions(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(transitionsCmd)
}
