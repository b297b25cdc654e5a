package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"devtracker/internal/service"
	"devtracker/internal/tracker"
)

var digestDate string

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Print the daily digest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now()
		if digestDate != "" {
			d, ok := service.ParseCalendarDate(digestDate, time.Local)
			if !ok {
				return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", digestDate)
			}
			day = d
		}
		return withStore(cmd.Context(), func(store *tracker.Store) error {
			fmt.Println(service.NewDigestService(store).Daily(day))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(digestCmd)
	digestCmd.Flags().StringVar(&digestDate, "date", "", "Day to summarize (YYYY-MM-DD), today by default")
}
