package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"devtracker/internal/service"
	"devtracker/internal/tracker"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Track learning progress",
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills with their numbers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store *tracker.Store) error {
			for i, item := range service.NewBoardService(store).Skills() {
				fmt.Printf("%2d. %-24s %3d%%  %d resources, %d notes\n", i+1, item.Skill, item.Progress, len(item.Resources), len(item.Notes))
			}
			return nil
		})
	},
}

var skillAddCmd = &cobra.Command{
	Use:   "add [skill]",
	Short: "Start tracking a skill",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store *tracker.Store) error {
			_, err := service.NewBoardService(store).AddSkill(cmd.Context(), strings.Join(args, " "))
			return err
		})
	},
}

var skillProgressCmd = &cobra.Command{
	Use:   "progress [n] [percent]",
	Short: "Set the progress of skill n",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("skill number: %w", err)
		}
		pct, err := strconv.Atoi(strings.TrimSuffix(args[1], "%"))
		if err != nil {
			return fmt.Errorf("percent: %w", err)
		}
		return withStore(cmd.Context(), func(store *tracker.Store) error {
			_, err := service.NewBoardService(store).SetSkillProgress(cmd.Context(), n, pct)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(skillCmd)
	skillCmd.AddCommand(skillListCmd, skillAddCmd, skillProgressCmd)
}
