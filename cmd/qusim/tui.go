package main

import (
	"github.com/spf13/cobra"

	"qusim/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive circuit explorer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run()
	},
}
