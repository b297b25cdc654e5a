package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"devtracker/internal/model"
	"devtracker/internal/service"
	"devtracker/internal/tracker"
)

var (
	taskLongTerm    bool
	taskDescription string
	taskDue         string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage daily tasks and long-term plans",
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks with their numbers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store *tracker.Store) error {
			for i, task := range service.NewTaskService(store).List(taskSection()) {
				mark := " "
				if task.Completed {
					mark = "x"
				}
				fmt.Printf("%2d. [%s] %s\n", i+1, mark, task.Title)
			}
			return nil
		})
	},
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(store *tracker.Store) error {
			_, err := service.NewTaskService(store).CreateTask(cmd.Context(), taskSection(), tracker.TaskInput{
				Title:       strings.Join(args, " "),
				Description: taskDescription,
				DueDate:     taskDue,
			})
			return err
		})
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [n]",
	Short: "Mark task n as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTaskAt(cmd, args[0], func(svc *service.TaskService, task model.Task) error {
			return svc.CompleteTask(cmd.Context(), taskSection(), task.ID)
		})
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm [n]",
	Short: "Delete task n",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withTaskAt(cmd, args[0], func(svc *service.TaskService, task model.Task) error {
			return svc.DeleteTask(cmd.Context(), taskSection(), task.ID)
		})
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskListCmd, taskAddCmd, taskDoneCmd, taskRmCmd)
	taskCmd.PersistentFlags().BoolVar(&taskLongTerm, "plan", false, "Work on long-term plans instead of daily tasks")
	taskAddCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "Task description")
	taskAddCmd.Flags().StringVar(&taskDue, "due", "", "Due date (YYYY-MM-DD)")
}

func taskSection() model.Section {
	if taskLongTerm {
		return model.SectionLongTerm
	}
	return model.SectionDaily
}

func withTaskAt(cmd *cobra.Command, arg string, fn func(*service.TaskService, model.Task) error) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("task number: %w", err)
	}
	return withStore(cmd.Context(), func(store *tracker.Store) error {
		svc := service.NewTaskService(store)
		task, err := svc.TaskAt(taskSection(), n)
		if err != nil {
			return err
		}
		return fn(svc, task)
	})
}
