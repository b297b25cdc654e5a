package model

import "time"

// LearningItem tracks progress on a single skill.
type LearningItem struct {
	ID        string     `json:"id"`
	Skill     string     `json:"skill"`
	Progress  int        `json:"progress"`
	Resources []Resource `json:"resources"`
	Notes     []Note     `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (l LearningItem) RecordID() string { return l.ID }

// Resource is a link attached to a skill or a project.
type Resource struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r Resource) RecordID() string { return r.ID }

type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n Note) RecordID() string { return n.ID }
