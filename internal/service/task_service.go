package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devtracker/internal/model"
	"devtracker/internal/tracker"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrNoSuchItem    = errors.New("no item with that number")
)

// TaskService wraps task-related flows shared by the bot and the CLI.
type TaskService struct {
	store *tracker.Store
}

func NewTaskService(store *tracker.Store) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) CreateTask(ctx context.Context, section model.Section, input tracker.TaskInput) (model.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return model.Task{}, ErrTitleRequired
	}
	return s.store.AddTask(ctx, section, input)
}

func (s *TaskService) List(section model.Section) []model.Task {
	return s.store.Snapshot().Tasks(section)
}

// TaskAt resolves a 1-based list position as shown to the user.
func (s *TaskService) TaskAt(section model.Section, n int) (model.Task, error) {
	tasks := s.List(section)
	if n < 1 || n > len(tasks) {
		return model.Task{}, fmt.Errorf("%w: %d", ErrNoSuchItem, n)
	}
	return tasks[n-1], nil
}

func (s *TaskService) CompleteTask(ctx context.Context, section model.Section, id string) error {
	done := true
	return s.store.UpdateTask(ctx, section, id, tracker.TaskPatch{Completed: &done})
}

func (s *TaskService) DeleteTask(ctx context.Context, section model.Section, id string) error {
	return s.store.DeleteTask(ctx, section, id)
}

// AddProjectTask adds a task and then re-syncs the project's stored progress,
// the way the project views expect.
func (s *TaskService) AddProjectTask(ctx context.Context, projectID string, input tracker.TaskInput) (model.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return model.Task{}, ErrTitleRequired
	}
	task, err := s.store.AddProjectTask(ctx, projectID, input)
	if err != nil || task.ID == "" {
		return task, err
	}
	return task, s.store.SyncProjectProgress(ctx, projectID)
}

// ToggleProjectTask flips a project task and re-syncs the stored progress.
func (s *TaskService) ToggleProjectTask(ctx context.Context, projectID, taskID string) error {
	var project model.Project
	for _, p := range s.store.Snapshot().Projects {
		if p.ID == projectID {
			project = p
			break
		}
	}
	for _, task := range project.Tasks {
		if task.ID != taskID {
			continue
		}
		flipped := !task.Completed
		if err := s.store.UpdateProjectTask(ctx, projectID, taskID, tracker.TaskPatch{Completed: &flipped}); err != nil {
			return err
		}
		return s.store.SyncProjectProgress(ctx, projectID)
	}
	return nil
}
