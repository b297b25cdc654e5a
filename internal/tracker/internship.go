package tracker

import (
	"context"

	"devtracker/internal/model"
)

type InternshipUpdateInput struct {
	Title       string
	Description string
	Date        string
	Tags        []string
	Completed   bool
}

type InternshipUpdatePatch struct {
	Title       *string
	Description *string
	Date        *string
	Tags        *[]string
	Completed   *bool
}

func (p InternshipUpdatePatch) apply(u model.InternshipUpdate) model.InternshipUpdate {
	set(&u.Title, p.Title)
	set(&u.Description, p.Description)
	set(&u.Date, p.Date)
	setList(&u.Tags, p.Tags)
	set(&u.Completed, p.Completed)
	return u
}

func (s *Store) AddInternshipTask(ctx context.Context, in TaskInput) (model.Task, error) {
	var task model.Task
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		task = s.newTask(in)
		next := *cur
		next.Internship.Todos = appended(cur.Internship.Todos, task)
		return &next, mutation{op: OpAdd, coll: CollInternshipTodos, id: task.ID, title: task.Title}, true
	})
	return task, err
}

func (s *Store) UpdateInternshipTask(ctx context.Context, id string, p TaskPatch) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpUpdate, coll: CollInternshipTodos, id: id}
		next := *cur
		var ok bool
		next.Internship.Todos, ok = replaced(cur.Internship.Todos, id, func(t model.Task) model.Task {
			t = p.apply(t)
			m.title = t.Title
			return t
		})
		return &next, m, ok
	})
}

func (s *Store) DeleteInternshipTask(ctx context.Context, id string) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpDelete, coll: CollInternshipTodos, id: id}
		if t, found := find(cur.Internship.Todos, id); found {
			m.title = t.Title
		}
		next := *cur
		var ok bool
		next.Internship.Todos, ok = removed(cur.Internship.Todos, id)
		return &next, m, ok
	})
}

func (s *Store) AddInternshipUpdate(ctx context.Context, in InternshipUpdateInput) (model.InternshipUpdate, error) {
	var update model.InternshipUpdate
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		tags := append([]string{}, in.Tags...)
		update = model.InternshipUpdate{
			ID:          s.newID(),
			Title:       in.Title,
			Description: in.Description,
			Date:        in.Date,
			Tags:        tags,
			Completed:   in.Completed,
		}
		next := *cur
		next.Internship.Updates = appended(cur.Internship.Updates, update)
		return &next, mutation{op: OpAdd, coll: CollInternshipUpdates, id: update.ID, title: update.Title}, true
	})
	return update, err
}

func (s *Store) UpdateInternshipUpdate(ctx context.Context, id string, p InternshipUpdatePatch) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpUpdate, coll: CollInternshipUpdates, id: id}
		next := *cur
		var ok bool
		next.Internship.Updates, ok = replaced(cur.Internship.Updates, id, func(u model.InternshipUpdate) model.InternshipUpdate {
			u = p.apply(u)
			m.title = u.Title
			return u
		})
		return &next, m, ok
	})
}

func (s *Store) DeleteInternshipUpdate(ctx context.Context, id string) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpDelete, coll: CollInternshipUpdates, id: id}
		if u, found := find(cur.Internship.Updates, id); found {
			m.title = u.Title
		}
		next := *cur
		var ok bool
		next.Internship.Updates, ok = removed(cur.Internship.Updates, id)
		return &next, m, ok
	})
}
