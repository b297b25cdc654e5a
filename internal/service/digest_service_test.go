package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"devtracker/internal/model"
)

func digestFixture() *model.Tracker {
	return &model.Tracker{
		DailyTasks: []model.Task{
			{ID: "t1", Title: "Later", DueDate: "2024-05-10"},
			{ID: "t2", Title: "Overdue <b>", DueDate: "2024-05-01T00:00:00.000Z"},
			{ID: "t3", Title: "Done already", Completed: true},
			{ID: "t4", Title: "Whenever"},
		},
		Meetings: []model.Meeting{
			{ID: "m1", Title: "Retro", Date: "2024-05-03", StartTime: "15:00", EndTime: "16:00",
				ActionItems: []model.ActionItem{
					{ID: "a1", Task: "collect notes", Assignee: "Ana"},
					{ID: "a2", Task: "closed", Completed: true},
				}},
			{ID: "m2", Title: "Standup", Date: "2024-05-03T00:00:00Z", StartTime: "09:00", EndTime: "09:15"},
			{ID: "m3", Title: "Tomorrow", Date: "2024-05-04", StartTime: "08:00", EndTime: "09:00"},
		},
		ScrumBoard: []model.ScrumCard{
			{ID: "c1", Status: model.CardTodo},
			{ID: "c2", Status: model.CardTodo},
			{ID: "c3", Status: model.CardDone},
		},
		Projects: []model.Project{{
			ID: "p1", Title: "CLI", Progress: 0,
			Tasks: []model.Task{{ID: "pt1", Completed: true}, {ID: "pt2"}},
		}},
		Learning: []model.LearningItem{{ID: "l1", Skill: "Go", Progress: 40}},
	}
}

func TestDailyDigest(t *testing.T) {
	svc := NewDigestService(openStore(t, digestFixture()))

	text := svc.Daily(may3)

	assert.Contains(t, text, "03.05.2024")
	assert.Contains(t, text, "⚠️ Overdue &lt;b&gt;")
	assert.Contains(t, text, "<b>overdue</b>")
	assert.Contains(t, text, "🟢 Later")
	assert.NotContains(t, text, "Done already")
	assert.Less(t, strings.Index(text, "Overdue"), strings.Index(text, "Later"))
	assert.Less(t, strings.Index(text, "Later"), strings.Index(text, "Whenever"))

	assert.Less(t, strings.Index(text, "Standup"), strings.Index(text, "Retro"))
	assert.Contains(t, text, "☐ collect notes <i>(Ana)</i>")
	assert.NotContains(t, text, "closed")
	assert.NotContains(t, text, "Tomorrow")

	assert.Contains(t, text, "To do: 2")
	assert.Contains(t, text, "In progress: 0")
	assert.Contains(t, text, "Done: 1")
	assert.Contains(t, text, "CLI — 0% <i>(tasks say 50%)</i>")
	assert.Contains(t, text, "Go — 40%")
}

func TestDailyDigestEmpty(t *testing.T) {
	text := NewDigestService(openStore(t, nil)).Daily(may3)

	assert.Contains(t, text, "nothing open")
	assert.Contains(t, text, "no meetings today")
	assert.NotContains(t, text, "Projects")
}

func TestParseCalendarDate(t *testing.T) {
	for _, raw := range []string{"2024-05-03", "2024-05-03T23:59:00.000Z", " 2024-05-03T10:00:00+02:00 "} {
		d, ok := ParseCalendarDate(raw, time.UTC)
		require.True(t, ok, raw)
		assert.Equal(t, "2024-05-03", d.Format("2006-01-02"))
	}
	for _, raw := range []string{"", "tomorrow", "05/03/2024"} {
		_, ok := ParseCalendarDate(raw, time.UTC)
		assert.False(t, ok, raw)
	}

	east := time.FixedZone("UTC+2", 2*60*60)
	d, ok := ParseCalendarDate("2024-05-02T22:30:00.000Z", east)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 3, 0, 0, 0, 0, east), d)

	d, ok = ParseCalendarDate("2024-05-03", east)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 5, 3, 0, 0, 0, 0, east), d)
}

func TestMeetingsOnUsesLocalDay(t *testing.T) {
	east := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2024, 5, 3, 8, 0, 0, 0, east)
	meetings := []model.Meeting{
		{ID: "late", Title: "Early call", Date: "2024-05-02T22:30:00Z", StartTime: "00:30"},
		{ID: "next", Title: "Next day", Date: "2024-05-03T23:30:00Z", StartTime: "01:30"},
		{ID: "plain", Title: "Plain", Date: "2024-05-03", StartTime: "10:00"},
	}

	var ids []string
	for _, m := range MeetingsOn(meetings, now) {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"late", "plain"}, ids)
}

type stubSender struct {
	texts []string
	err   error
}

func (s *stubSender) SendDigest(_ context.Context, text string) error {
	s.texts = append(s.texts, text)
	return s.err
}

func TestDigestJob(t *testing.T) {
	svc := NewDigestService(openStore(t, nil))

	ok := &stubSender{}
	svc.Job(ok, zap.NewNop(), time.Second)()
	require.Len(t, ok.texts, 1)
	assert.Contains(t, ok.texts[0], "Daily digest")

	failing := &stubSender{err: errors.New("chat unreachable")}
	assert.NotPanics(t, svc.Job(failing, zap.NewNop(), time.Second))
	assert.Len(t, failing.texts, 1)
}
