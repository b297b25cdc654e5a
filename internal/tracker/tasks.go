package tracker

import (
	"context"

	"devtracker/internal/model"
)

// TaskInput carries the caller fields of a task in any task list.
type TaskInput struct {
	Title       string
	Description string
	Completed   bool
	DueDate     string
}

type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *string
}

func (p TaskPatch) apply(t model.Task) model.Task {
	set(&t.Title, p.Title)
	set(&t.Description, p.Description)
	set(&t.Completed, p.Completed)
	set(&t.DueDate, p.DueDate)
	return t
}

func (s *Store) newTask(in TaskInput) model.Task {
	return model.Task{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		DueDate:     in.DueDate,
		CreatedAt:   s.now(),
	}
}

// sectionList gives access to the task list of a section. ok is false for
// unknown sections.
func sectionList(t *model.Tracker, section model.Section) (list *[]model.Task, ok bool) {
	switch section {
	case model.SectionDaily:
		return &t.DailyTasks, true
	case model.SectionLongTerm:
		return &t.LongTermPlans, true
	default:
		return nil, false
	}
}

// AddTask appends a task to the daily or long-term list. Unknown sections
// are a no-op returning the zero Task.
func (s *Store) AddTask(ctx context.Context, section model.Section, in TaskInput) (model.Task, error) {
	var task model.Task
	var added bool
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpAdd, coll: Collection(section)}
		next := *cur
		list, ok := sectionList(&next, section)
		if !ok {
			return cur, m, false
		}
		task = s.newTask(in)
		*list = appended(*list, task)
		m.id, m.title = task.ID, task.Title
		added = true
		return &next, m, true
	})
	if err != nil || !added {
		return model.Task{}, err
	}
	return task, nil
}

func (s *Store) UpdateTask(ctx context.Context, section model.Section, id string, p TaskPatch) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpUpdate, coll: Collection(section), id: id}
		next := *cur
		list, ok := sectionList(&next, section)
		if !ok {
			return cur, m, false
		}
		*list, ok = replaced(*list, id, func(t model.Task) model.Task {
			t = p.apply(t)
			m.title = t.Title
			return t
		})
		return &next, m, ok
	})
}

func (s *Store) DeleteTask(ctx context.Context, section model.Section, id string) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpDelete, coll: Collection(section), id: id}
		next := *cur
		list, ok := sectionList(&next, section)
		if !ok {
			return cur, m, false
		}
		if t, found := find(*list, id); found {
			m.title = t.Title
		}
		*list, ok = removed(*list, id)
		return &next, m, ok
	})
}
