package service

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"devtracker/internal/model"
)

// SnapshotSource is the read side of the tracker store.
type SnapshotSource interface {
	Snapshot() *model.Tracker
}

// DigestService builds human-readable summaries of the tracker.
type DigestService struct {
	store SnapshotSource
}

func NewDigestService(store SnapshotSource) *DigestService {
	return &DigestService{store: store}
}

// Daily renders the HTML digest for the day containing now.
func (s *DigestService) Daily(now time.Time) string {
	data := s.store.Snapshot()

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily digest</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("02.01.2006")))

	builder.WriteString("🔥 <b>Today's tasks</b>\n")
	pending := openTasks(data.DailyTasks, now.Location())
	if len(pending) == 0 {
		builder.WriteString("— nothing open\n")
	} else {
		for _, task := range pending {
			builder.WriteString(formatTask(task, now))
		}
	}

	builder.WriteString("\n📅 <b>Meetings</b>\n")
	meetings := MeetingsOn(data.Meetings, now)
	if len(meetings) == 0 {
		builder.WriteString("— no meetings today\n")
	} else {
		for _, m := range meetings {
			builder.WriteString(formatMeeting(m))
		}
	}

	builder.WriteString("\n🗂 <b>Board</b>\n")
	counts := ColumnCounts(data.ScrumBoard)
	for _, status := range model.CardStatuses {
		builder.WriteString(fmt.Sprintf("• %s: %d\n", columnLabel(status), counts[status]))
	}

	if len(data.Projects) > 0 {
		builder.WriteString("\n🛠 <b>Projects</b>\n")
		for _, p := range data.Projects {
			builder.WriteString(formatProject(p))
		}
	}

	if len(data.Learning) > 0 {
		builder.WriteString("\n📚 <b>Skills</b>\n")
		for _, item := range data.Learning {
			builder.WriteString(fmt.Sprintf("• %s — %d%%\n", html.EscapeString(strings.TrimSpace(item.Skill)), item.Progress))
		}
	}

	return strings.TrimSpace(builder.String())
}

func openTasks(tasks []model.Task, loc *time.Location) []model.Task {
	var pending []model.Task
	for _, task := range tasks {
		if !task.Completed {
			pending = append(pending, task)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		di, iok := ParseCalendarDate(pending[i].DueDate, loc)
		dj, jok := ParseCalendarDate(pending[j].DueDate, loc)
		switch {
		case !iok:
			return false
		case !jok:
			return true
		default:
			return di.Before(dj)
		}
	})
	return pending
}

// MeetingsOn returns meetings whose date falls on the day of now, ordered by
// start time.
func MeetingsOn(meetings []model.Meeting, now time.Time) []model.Meeting {
	day := now.Format("2006-01-02")
	var out []model.Meeting
	for _, m := range meetings {
		if d, ok := ParseCalendarDate(m.Date, now.Location()); ok && d.Format("2006-01-02") == day {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

// ColumnCounts counts cards per board column.
func ColumnCounts(cards []model.ScrumCard) map[model.CardStatus]int {
	counts := make(map[model.CardStatus]int, len(model.CardStatuses))
	for _, card := range cards {
		counts[card.Status]++
	}
	return counts
}

// ParseCalendarDate accepts the date layouts stored by the tracker: plain
// dates and RFC 3339 timestamps. It returns midnight of the calendar day in
// loc; timestamps are converted to loc first.
func ParseCalendarDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		y, m, d := ts.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), true
	}
	if len(raw) >= len("2006-01-02") {
		if d, err := time.ParseInLocation("2006-01-02", raw[:10], loc); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func formatTask(task model.Task, now time.Time) string {
	var sb strings.Builder

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	due, hasDue := ParseCalendarDate(task.DueDate, now.Location())

	icon := "🟢"
	if hasDue {
		switch {
		case due.Before(today):
			icon = "⚠️"
		case due.Sub(today) <= 48*time.Hour:
			icon = "⏳"
		}
	}

	sb.WriteString(fmt.Sprintf("%s %s", icon, html.EscapeString(strings.TrimSpace(task.Title))))

	if hasDue {
		if due.Before(today) {
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s — <b>overdue</b>", due.Format("2006-01-02")))
		} else {
			daysLeft := int(due.Sub(today).Hours() / 24)
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · %d d left", due.Format("2006-01-02"), daysLeft))
		}
	}

	if task.Description != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(strings.TrimSpace(task.Description))))
	}

	sb.WriteByte('\n')
	return sb.String()
}

func formatMeeting(m model.Meeting) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🕘 %s–%s %s", m.StartTime, m.EndTime, html.EscapeString(strings.TrimSpace(m.Title))))
	for _, item := range m.ActionItems {
		if item.Completed {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n   ☐ %s", html.EscapeString(item.Task)))
		if item.Assignee != "" {
			sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(item.Assignee)))
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}

func formatProject(p model.Project) string {
	line := fmt.Sprintf("• %s — %d%%", html.EscapeString(strings.TrimSpace(p.Title)), p.Progress)
	if derived := p.DerivedProgress(); len(p.Tasks) > 0 && derived != p.Progress {
		line += fmt.Sprintf(" <i>(tasks say %d%%)</i>", derived)
	}
	return line + "\n"
}

func columnLabel(status model.CardStatus) string {
	switch status {
	case model.CardTodo:
		return "To do"
	case model.CardInProgress:
		return "In progress"
	case model.CardDone:
		return "Done"
	default:
		return string(status)
	}
}
