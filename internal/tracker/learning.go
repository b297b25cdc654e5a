package tracker

import (
	"context"

	"devtracker/internal/model"
)

// LearningItemInput carries the caller fields of a new skill.
type LearningItemInput struct {
	Skill     string
	Progress  int
	Resources []ResourceInput
	Notes     []NoteInput
}

// LearningItemPatch is merged field by field; nil fields are left alone.
// Resources and notes change only through their own operations, which
// assign their ids.
type LearningItemPatch struct {
	Skill    *string
	Progress *int
}

func (p LearningItemPatch) apply(item model.LearningItem) model.LearningItem {
	set(&item.Skill, p.Skill)
	set(&item.Progress, p.Progress)
	return item
}

type ResourceInput struct {
	Title       string
	URL         string
	Description string
}

type ResourcePatch struct {
	Title       *string
	URL         *string
	Description *string
}

func (p ResourcePatch) apply(r model.Resource) model.Resource {
	set(&r.Title, p.Title)
	set(&r.URL, p.URL)
	set(&r.Description, p.Description)
	return r
}

type NoteInput struct {
	Content string
}

type NotePatch struct {
	Content *string
}

func (p NotePatch) apply(n model.Note) model.Note {
	set(&n.Content, p.Content)
	return n
}

func (s *Store) newResource(in ResourceInput) model.Resource {
	return model.Resource{
		ID:          s.newID(),
		Title:       in.Title,
		URL:         in.URL,
		Description: in.Description,
		CreatedAt:   s.now(),
	}
}

func (s *Store) newNote(in NoteInput) model.Note {
	return model.Note{ID: s.newID(), Content: in.Content, CreatedAt: s.now()}
}

func (s *Store) AddLearningItem(ctx context.Context, in LearningItemInput) (model.LearningItem, error) {
	var item model.LearningItem
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		now := s.now()
		item = model.LearningItem{
			ID:        s.newID(),
			Skill:     in.Skill,
			Progress:  in.Progress,
			Resources: make([]model.Resource, 0, len(in.Resources)),
			Notes:     make([]model.Note, 0, len(in.Notes)),
			CreatedAt: now,
			UpdatedAt: now,
		}
		for _, r := range in.Resources {
			item.Resources = append(item.Resources, s.newResource(r))
		}
		for _, n := range in.Notes {
			item.Notes = append(item.Notes, s.newNote(n))
		}
		next := *cur
		next.Learning = appended(cur.Learning, item)
		return &next, mutation{op: OpAdd, coll: CollLearning, id: item.ID, title: item.Skill}, true
	})
	return item, err
}

// UpdateLearningItem merges p into the skill and re-stamps UpdatedAt.
func (s *Store) UpdateLearningItem(ctx context.Context, id string, p LearningItemPatch) error {
	return s.updateLearning(ctx, id, mutation{op: OpUpdate, coll: CollLearning, id: id}, func(item model.LearningItem) model.LearningItem {
		return p.apply(item)
	})
}

// DeleteLearningItem removes the skill together with its resources and notes.
func (s *Store) DeleteLearningItem(ctx context.Context, id string) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpDelete, coll: CollLearning, id: id}
		item, found := find(cur.Learning, id)
		if !found {
			return cur, m, false
		}
		m.title = item.Skill
		next := *cur
		next.Learning, _ = removed(cur.Learning, id)
		return &next, m, true
	})
}

// AddResource appends a resource to a skill. When the skill does not exist
// nothing is stored and the zero Resource is returned.
func (s *Store) AddResource(ctx context.Context, learningID string, in ResourceInput) (model.Resource, error) {
	var res model.Resource
	var added bool
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		res = s.newResource(in)
		m := mutation{op: OpAdd, coll: CollLearningResources, id: res.ID, parentID: learningID, title: res.Title}
		next := *cur
		next.Learning, added = replaced(cur.Learning, learningID, func(item model.LearningItem) model.LearningItem {
			item.Resources = appended(item.Resources, res)
			return item
		})
		return &next, m, added
	})
	if err != nil || !added {
		return model.Resource{}, err
	}
	return res, nil
}

func (s *Store) UpdateResource(ctx context.Context, learningID, resourceID string, p ResourcePatch) error {
	m := mutation{op: OpUpdate, coll: CollLearningResources, id: resourceID, parentID: learningID}
	return s.updateLearningChild(ctx, learningID, m, func(item model.LearningItem) (model.LearningItem, bool) {
		var ok bool
		item.Resources, ok = replaced(item.Resources, resourceID, p.apply)
		return item, ok
	})
}

func (s *Store) DeleteResource(ctx context.Context, learningID, resourceID string) error {
	m := mutation{op: OpDelete, coll: CollLearningResources, id: resourceID, parentID: learningID}
	return s.updateLearningChild(ctx, learningID, m, func(item model.LearningItem) (model.LearningItem, bool) {
		var ok bool
		item.Resources, ok = removed(item.Resources, resourceID)
		return item, ok
	})
}

func (s *Store) AddNote(ctx context.Context, learningID string, in NoteInput) (model.Note, error) {
	var note model.Note
	var added bool
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		note = s.newNote(in)
		m := mutation{op: OpAdd, coll: CollLearningNotes, id: note.ID, parentID: learningID}
		next := *cur
		next.Learning, added = replaced(cur.Learning, learningID, func(item model.LearningItem) model.LearningItem {
			item.Notes = appended(item.Notes, note)
			return item
		})
		return &next, m, added
	})
	if err != nil || !added {
		return model.Note{}, err
	}
	return note, nil
}

func (s *Store) UpdateNote(ctx context.Context, learningID, noteID string, p NotePatch) error {
	m := mutation{op: OpUpdate, coll: CollLearningNotes, id: noteID, parentID: learningID}
	return s.updateLearningChild(ctx, learningID, m, func(item model.LearningItem) (model.LearningItem, bool) {
		var ok bool
		item.Notes, ok = replaced(item.Notes, noteID, p.apply)
		return item, ok
	})
}

func (s *Store) DeleteNote(ctx context.Context, learningID, noteID string) error {
	m := mutation{op: OpDelete, coll: CollLearningNotes, id: noteID, parentID: learningID}
	return s.updateLearningChild(ctx, learningID, m, func(item model.LearningItem) (model.LearningItem, bool) {
		var ok bool
		item.Notes, ok = removed(item.Notes, noteID)
		return item, ok
	})
}

// updateLearning replaces one skill via fn and stamps UpdatedAt.
func (s *Store) updateLearning(ctx context.Context, id string, m mutation, fn func(model.LearningItem) model.LearningItem) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		next := *cur
		var ok bool
		next.Learning, ok = replaced(cur.Learning, id, func(item model.LearningItem) model.LearningItem {
			item = fn(item)
			item.UpdatedAt = s.stamp(item.CreatedAt)
			m.title = item.Skill
			return item
		})
		return &next, m, ok
	})
}

// updateLearningChild edits a child list of one skill. fn reports whether the
// child matched; a miss on either level is a no-op.
func (s *Store) updateLearningChild(ctx context.Context, learningID string, m mutation, fn func(model.LearningItem) (model.LearningItem, bool)) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		item, found := find(cur.Learning, learningID)
		if !found {
			return cur, m, false
		}
		updated, ok := fn(item)
		if !ok {
			return cur, m, false
		}
		next := *cur
		next.Learning, _ = replaced(cur.Learning, learningID, func(model.LearningItem) model.LearningItem {
			return updated
		})
		return &next, m, true
	})
}
