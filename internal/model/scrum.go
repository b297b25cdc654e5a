package model

import "time"

// CardStatus doubles as the board column.
type CardStatus string

const (
	CardTodo       CardStatus = "todo"
	CardInProgress CardStatus = "inProgress"
	CardDone       CardStatus = "done"
)

// CardStatuses lists board columns in display order.
var CardStatuses = []CardStatus{CardTodo, CardInProgress, CardDone}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type ScrumCard struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      CardStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (c ScrumCard) RecordID() string { return c.ID }
