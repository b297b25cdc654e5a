package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"devtracker/internal/tracker"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace all tracker data with the example data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("reset discards all data, pass --yes to confirm")
		}
		return withStore(cmd.Context(), func(store *tracker.Store) error {
			return store.Reset(cmd.Context())
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm the reset")
}
