package model

import "time"

// Section names a flat task list of the tracker.
type Section string

const (
	SectionDaily    Section = "dailyTasks"
	SectionLongTerm Section = "longTermPlans"
)

// Task is a checklist item. The same shape backs daily tasks, long-term plans,
// internship todos and project tasks.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	DueDate     string    `json:"dueDate,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (t Task) RecordID() string { return t.ID }

// CompletionPercent returns round(done/total*100), or 0 for an empty list.
func CompletionPercent(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, task := range tasks {
		if task.Completed {
			done++
		}
	}
	// Integer half-up rounding of done*100/total.
	return (done*200 + len(tasks)) / (2 * len(tasks))
}
