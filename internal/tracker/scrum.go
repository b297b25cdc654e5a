package tracker

import (
	"context"

	"devtracker/internal/model"
)

type ScrumCardInput struct {
	Title       string
	Description string
	Status      model.CardStatus
	Priority    model.Priority
}

type ScrumCardPatch struct {
	Title       *string
	Description *string
	Status      *model.CardStatus
	Priority    *model.Priority
}

func (p ScrumCardPatch) apply(c model.ScrumCard) model.ScrumCard {
	set(&c.Title, p.Title)
	set(&c.Description, p.Description)
	set(&c.Status, p.Status)
	set(&c.Priority, p.Priority)
	return c
}

func (s *Store) AddScrumCard(ctx context.Context, in ScrumCardInput) (model.ScrumCard, error) {
	var card model.ScrumCard
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		card = model.ScrumCard{
			ID:          s.newID(),
			Title:       in.Title,
			Description: in.Description,
			Status:      in.Status,
			Priority:    in.Priority,
			CreatedAt:   s.now(),
		}
		next := *cur
		next.ScrumBoard = appended(cur.ScrumBoard, card)
		return &next, mutation{op: OpAdd, coll: CollScrum, id: card.ID, title: card.Title}, true
	})
	return card, err
}

func (s *Store) UpdateScrumCard(ctx context.Context, id string, p ScrumCardPatch) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpUpdate, coll: CollScrum, id: id}
		next := *cur
		var ok bool
		next.ScrumBoard, ok = replaced(cur.ScrumBoard, id, func(c model.ScrumCard) model.ScrumCard {
			c = p.apply(c)
			m.title = c.Title
			return c
		})
		return &next, m, ok
	})
}

// UpdateScrumCardStatus moves a card to another board column.
func (s *Store) UpdateScrumCardStatus(ctx context.Context, id string, status model.CardStatus) error {
	return s.UpdateScrumCard(ctx, id, ScrumCardPatch{Status: &status})
}

func (s *Store) DeleteScrumCard(ctx context.Context, id string) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpDelete, coll: CollScrum, id: id}
		if c, found := find(cur.ScrumBoard, id); found {
			m.title = c.Title
		}
		next := *cur
		var ok bool
		next.ScrumBoard, ok = removed(cur.ScrumBoard, id)
		return &next, m, ok
	})
}
