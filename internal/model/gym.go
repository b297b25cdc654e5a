package model

import "time"

// GymEntryTypeOther is the type assigned when the caller gives none.
const GymEntryTypeOther = "other"

// GymEntry is one fitness journal record. Duration is in minutes.
type GymEntry struct {
	ID        string    `json:"id"`
	Activity  string    `json:"activity"`
	Workout   string    `json:"workout,omitempty"`
	Type      string    `json:"type,omitempty"`
	Duration  *int      `json:"duration,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g GymEntry) RecordID() string { return g.ID }
