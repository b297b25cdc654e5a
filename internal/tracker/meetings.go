package tracker

import (
	"context"

	"devtracker/internal/model"
)

// MeetingInput carries the caller fields of a meeting. Action items given
// here receive ids like those added later.
type MeetingInput struct {
	Title       string
	Description string
	Date        string
	StartTime   string
	EndTime     string
	Attendees   []string
	Preparation []string
	Notes       string
	MoM         string
	ActionItems []ActionItemInput
}

type MeetingPatch struct {
	Title       *string
	Description *string
	Date        *string
	StartTime   *string
	EndTime     *string
	Attendees   *[]string
	Preparation *[]string
	Notes       *string
	MoM         *string
}

func (p MeetingPatch) apply(m model.Meeting) model.Meeting {
	set(&m.Title, p.Title)
	set(&m.Description, p.Description)
	set(&m.Date, p.Date)
	set(&m.StartTime, p.StartTime)
	set(&m.EndTime, p.EndTime)
	setList(&m.Attendees, p.Attendees)
	setList(&m.Preparation, p.Preparation)
	set(&m.Notes, p.Notes)
	set(&m.MoM, p.MoM)
	return m
}

type ActionItemInput struct {
	Task      string
	Assignee  string
	DueDate   string
	Completed bool
}

type ActionItemPatch struct {
	Task      *string
	Assignee  *string
	DueDate   *string
	Completed *bool
}

func (p ActionItemPatch) apply(a model.ActionItem) model.ActionItem {
	set(&a.Task, p.Task)
	set(&a.Assignee, p.Assignee)
	set(&a.DueDate, p.DueDate)
	set(&a.Completed, p.Completed)
	return a
}

func (s *Store) newActionItem(in ActionItemInput) model.ActionItem {
	return model.ActionItem{
		ID:        s.newID(),
		Task:      in.Task,
		Assignee:  in.Assignee,
		DueDate:   in.DueDate,
		Completed: in.Completed,
	}
}

func (s *Store) AddMeeting(ctx context.Context, in MeetingInput) (model.Meeting, error) {
	var meeting model.Meeting
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		meeting = model.Meeting{
			ID:          s.newID(),
			Title:       in.Title,
			Description: in.Description,
			Date:        in.Date,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			Attendees:   append([]string{}, in.Attendees...),
			Preparation: append([]string{}, in.Preparation...),
			Notes:       in.Notes,
			MoM:         in.MoM,
			ActionItems: make([]model.ActionItem, 0, len(in.ActionItems)),
			CreatedAt:   s.now(),
		}
		for _, a := range in.ActionItems {
			meeting.ActionItems = append(meeting.ActionItems, s.newActionItem(a))
		}
		next := *cur
		next.Meetings = appended(cur.Meetings, meeting)
		return &next, mutation{op: OpAdd, coll: CollMeetings, id: meeting.ID, title: meeting.Title}, true
	})
	return meeting, err
}

func (s *Store) UpdateMeeting(ctx context.Context, id string, p MeetingPatch) error {
	m := mutation{op: OpUpdate, coll: CollMeetings, id: id}
	return s.editMeeting(ctx, id, m, func(mt model.Meeting) (model.Meeting, bool) {
		return p.apply(mt), true
	})
}

// DeleteMeeting removes the meeting and its action items.
func (s *Store) DeleteMeeting(ctx context.Context, id string) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpDelete, coll: CollMeetings, id: id}
		mt, found := find(cur.Meetings, id)
		if !found {
			return cur, m, false
		}
		m.title = mt.Title
		next := *cur
		next.Meetings, _ = removed(cur.Meetings, id)
		return &next, m, true
	})
}

// AddMeetingActionItem appends an action item. A missing meeting is a no-op
// returning the zero ActionItem.
func (s *Store) AddMeetingActionItem(ctx context.Context, meetingID string, in ActionItemInput) (model.ActionItem, error) {
	var item model.ActionItem
	var added bool
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		item = s.newActionItem(in)
		m := mutation{op: OpAdd, coll: CollActionItems, id: item.ID, parentID: meetingID, title: item.Task}
		next := *cur
		next.Meetings, added = replaced(cur.Meetings, meetingID, func(mt model.Meeting) model.Meeting {
			mt.ActionItems = appended(mt.ActionItems, item)
			return mt
		})
		return &next, m, added
	})
	if err != nil || !added {
		return model.ActionItem{}, err
	}
	return item, nil
}

func (s *Store) UpdateMeetingActionItem(ctx context.Context, meetingID, itemID string, p ActionItemPatch) error {
	m := mutation{op: OpUpdate, coll: CollActionItems, id: itemID, parentID: meetingID}
	return s.editMeeting(ctx, meetingID, m, func(mt model.Meeting) (model.Meeting, bool) {
		var ok bool
		mt.ActionItems, ok = replaced(mt.ActionItems, itemID, p.apply)
		return mt, ok
	})
}

func (s *Store) DeleteMeetingActionItem(ctx context.Context, meetingID, itemID string) error {
	m := mutation{op: OpDelete, coll: CollActionItems, id: itemID, parentID: meetingID}
	return s.editMeeting(ctx, meetingID, m, func(mt model.Meeting) (model.Meeting, bool) {
		var ok bool
		mt.ActionItems, ok = removed(mt.ActionItems, itemID)
		return mt, ok
	})
}

func (s *Store) editMeeting(ctx context.Context, meetingID string, m mutation, fn func(model.Meeting) (model.Meeting, bool)) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		mt, found := find(cur.Meetings, meetingID)
		if !found {
			return cur, m, false
		}
		updated, ok := fn(mt)
		if !ok {
			return cur, m, false
		}
		if m.parentID == "" {
			m.title = updated.Title
		}
		next := *cur
		next.Meetings, _ = replaced(cur.Meetings, meetingID, func(model.Meeting) model.Meeting {
			return updated
		})
		return &next, m, true
	})
}
