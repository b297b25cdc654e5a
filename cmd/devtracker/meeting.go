package main

import (
	"strings"

	"github.com/spf13/cobra"

	"devtracker/internal/tracker"
)

var (
	meetingDate      string
	meetingStart     string
	meetingEnd       string
	meetingAttendees []string
	meetingActions   []string
)

var meetingCmd = &cobra.Command{
	Use:   "meeting",
	Short: "Manage meetings",
}

var meetingAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Schedule a meeting",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := tracker.MeetingInput{
			Title:     strings.Join(args, " "),
			Date:      meetingDate,
			StartTime: meetingStart,
			EndTime:   meetingEnd,
			Attendees: meetingAttendees,
		}
		for _, task := range meetingActions {
			input.ActionItems = append(input.ActionItems, tracker.ActionItemInput{Task: task})
		}
		return withStore(cmd.Context(), func(store *tracker.Store) error {
			_, err := store.AddMeeting(cmd.Context(), input)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(meetingCmd)
	meetingCmd.AddCommand(meetingAddCmd)
	meetingAddCmd.Flags().StringVar(&meetingDate, "date", "", "Meeting day (YYYY-MM-DD)")
	meetingAddCmd.Flags().StringVar(&meetingStart, "start", "", "Start time (HH:MM)")
	meetingAddCmd.Flags().StringVar(&meetingEnd, "end", "", "End time (HH:MM)")
	meetingAddCmd.Flags().StringSliceVar(&meetingAttendees, "attendee", nil, "Attendee, repeatable")
	meetingAddCmd.Flags().StringSliceVar(&meetingActions, "action", nil, "Action item, repeatable")
}
