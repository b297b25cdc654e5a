package model

// Internship groups the internship todo list and its progress log.
type Internship struct {
	Todos   []Task             `json:"todos"`
	Updates []InternshipUpdate `json:"updates"`
}

// InternshipUpdate is a dated log entry. Date is caller supplied.
type InternshipUpdate struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
	Completed   bool     `json:"completed,omitempty"`
}

func (u InternshipUpdate) RecordID() string { return u.ID }
