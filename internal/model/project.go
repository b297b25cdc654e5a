package model

import "time"

type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not-started"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
)

// Project owns its task list and resource list.
type Project struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	Tasks       []Task        `json:"tasks"`
	Resources   []Resource    `json:"resources"`
	// Progress is stored as set by the caller; it is not recomputed when
	// Tasks change. See DerivedProgress.
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"createdAt"`
}

func (p Project) RecordID() string { return p.ID }

// DerivedProgress computes the completion percentage from the task list.
func (p Project) DerivedProgress() int {
	return CompletionPercent(p.Tasks)
}
