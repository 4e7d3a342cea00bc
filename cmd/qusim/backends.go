package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qusim"
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List available simulation backends",
	Run: func(cmd *cobra.Command, args []string) {
		for _, info := range qusim.NewBackendSelector().KnownBackends() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", info.Name, info.Description)
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s cost: %s\n", "", info.CostScaling)
		}
	},
}
