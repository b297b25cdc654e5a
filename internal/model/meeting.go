package model

import "time"

// Meeting is a calendar entry. Date, StartTime (HH:MM) and EndTime are
// caller-supplied calendar data.
type Meeting struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Date        string       `json:"date"`
	StartTime   string       `json:"startTime"`
	EndTime     string       `json:"endTime"`
	Attendees   []string     `json:"attendees"`
	Preparation []string     `json:"preparation"`
	Notes       string       `json:"notes,omitempty"`
	MoM         string       `json:"mom,omitempty"`
	ActionItems []ActionItem `json:"actionItems"`
	CreatedAt   time.Time    `json:"createdAt"`
}

func (m Meeting) RecordID() string { return m.ID }

type ActionItem struct {
	ID        string `json:"id"`
	Task      string `json:"task"`
	Assignee  string `json:"assignee,omitempty"`
	DueDate   string `json:"dueDate,omitempty"`
	Completed bool   `json:"completed"`
}

func (a ActionItem) RecordID() string { return a.ID }
