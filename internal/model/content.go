package model

import "time"

type ContentStatus string

const (
	ContentIdeaStatus ContentStatus = "idea"
	ContentDraft      ContentStatus = "draft"
	ContentPublished  ContentStatus = "published"
)

type ContentIdea struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Platform    string        `json:"platform,omitempty"`
	Status      ContentStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}

func (c ContentIdea) RecordID() string { return c.ID }
