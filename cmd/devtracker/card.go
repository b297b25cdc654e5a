package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"devtracker/internal/service"
	"devtracker/internal/tracker"
)

var cardPriority string

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Manage the scrum board",
}

var cardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards with their numbers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store *tracker.Store) error {
			for i, card := range service.NewBoardService(store).Cards() {
				fmt.Printf("%2d. %-10s %-6s %s\n", i+1, card.Status, card.Priority, card.Title)
			}
			return nil
		})
	},
}

var cardAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a card to the To do column",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store *tracker.Store) error {
			_, err := service.NewBoardService(store).AddCard(cmd.Context(), strings.Join(args, " "), service.ParsePriority(cardPriority))
			return err
		})
	},
}

var cardMoveCmd = &cobra.Command{
	Use:   "move [n] [todo|inProgress|done]",
	Short: "Move card n to another column",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("card number: %w", err)
		}
		status, err := service.ParseCardStatus(args[1])
		if err != nil {
			return err
		}
		return withStore(cmd.Context(), func(store *tracker.Store) error {
			_, err := service.NewBoardService(store).MoveCard(cmd.Context(), n, status)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(cardCmd)
	cardCmd.AddCommand(cardListCmd, cardAddCmd, cardMoveCmd)
	cardAddCmd.Flags().StringVarP(&cardPriority, "priority", "p", "medium", "Priority: low, medium or high")
}
