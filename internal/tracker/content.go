package tracker

import (
	"context"

	"devtracker/internal/model"
)

type ContentIdeaInput struct {
	Title       string
	Description string
	Platform    string
	Status      model.ContentStatus
}

type ContentIdeaPatch struct {
	Title       *string
	Description *string
	Platform    *string
	Status      *model.ContentStatus
}

func (p ContentIdeaPatch) apply(c model.ContentIdea) model.ContentIdea {
	set(&c.Title, p.Title)
	set(&c.Description, p.Description)
	set(&c.Platform, p.Platform)
	set(&c.Status, p.Status)
	return c
}

func (s *Store) AddContentIdea(ctx context.Context, in ContentIdeaInput) (model.ContentIdea, error) {
	var idea model.ContentIdea
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		idea = model.ContentIdea{
			ID:          s.newID(),
			Title:       in.Title,
			Description: in.Description,
			Platform:    in.Platform,
			Status:      in.Status,
			CreatedAt:   s.now(),
		}
		next := *cur
		next.ContentCreation = appended(cur.ContentCreation, idea)
		return &next, mutation{op: OpAdd, coll: CollContent, id: idea.ID, title: idea.Title}, true
	})
	return idea, err
}

func (s *Store) UpdateContentIdea(ctx context.Context, id string, p ContentIdeaPatch) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpUpdate, coll: CollContent, id: id}
		next := *cur
		var ok bool
		next.ContentCreation, ok = replaced(cur.ContentCreation, id, func(c model.ContentIdea) model.ContentIdea {
			c = p.apply(c)
			m.title = c.Title
			return c
		})
		return &next, m, ok
	})
}

func (s *Store) DeleteContentIdea(ctx context.Context, id string) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpDelete, coll: CollContent, id: id}
		if c, found := find(cur.ContentCreation, id); found {
			m.title = c.Title
		}
		next := *cur
		var ok bool
		next.ContentCreation, ok = removed(cur.ContentCreation, id)
		return &next, m, ok
	})
}
