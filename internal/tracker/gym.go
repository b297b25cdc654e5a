package tracker

import (
	"context"

	"devtracker/internal/model"
)

// GymEntryInput carries the caller fields of a journal entry. Workout
// defaults to Activity and Type to "other" when empty.
type GymEntryInput struct {
	Activity string
	Workout  string
	Type     string
	Duration *int
	Notes    string
	Date     string
}

type GymEntryPatch struct {
	Activity *string
	Workout  *string
	Type     *string
	// Duration replaces the stored pointer when set; a pointer to nil clears it.
	Duration **int
	Notes    *string
	Date     *string
}

func (p GymEntryPatch) apply(g model.GymEntry) model.GymEntry {
	set(&g.Activity, p.Activity)
	set(&g.Workout, p.Workout)
	set(&g.Type, p.Type)
	set(&g.Duration, p.Duration)
	set(&g.Notes, p.Notes)
	set(&g.Date, p.Date)
	return g
}

func (s *Store) AddGymEntry(ctx context.Context, in GymEntryInput) (model.GymEntry, error) {
	var entry model.GymEntry
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		now := s.now()
		entry = model.GymEntry{
			ID:        s.newID(),
			Activity:  in.Activity,
			Workout:   in.Workout,
			Type:      in.Type,
			Notes:     in.Notes,
			Date:      in.Date,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if in.Duration != nil {
			d := *in.Duration
			entry.Duration = &d
		}
		if entry.Workout == "" {
			entry.Workout = in.Activity
		}
		if entry.Type == "" {
			entry.Type = model.GymEntryTypeOther
		}
		next := *cur
		next.GymLife = appended(cur.GymLife, entry)
		return &next, mutation{op: OpAdd, coll: CollGym, id: entry.ID, title: entry.Activity}, true
	})
	return entry, err
}

// UpdateGymEntry merges p and re-stamps UpdatedAt.
func (s *Store) UpdateGymEntry(ctx context.Context, id string, p GymEntryPatch) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpUpdate, coll: CollGym, id: id}
		next := *cur
		var ok bool
		next.GymLife, ok = replaced(cur.GymLife, id, func(g model.GymEntry) model.GymEntry {
			g = p.apply(g)
			g.UpdatedAt = s.stamp(g.CreatedAt)
			m.title = g.Activity
			return g
		})
		return &next, m, ok
	})
}

func (s *Store) DeleteGymEntry(ctx context.Context, id string) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpDelete, coll: CollGym, id: id}
		if g, found := find(cur.GymLife, id); found {
			m.title = g.Activity
		}
		next := *cur
		var ok bool
		next.GymLife, ok = removed(cur.GymLife, id)
		return &next, m, ok
	})
}
