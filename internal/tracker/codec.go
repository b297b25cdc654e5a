package tracker

import (
	"encoding/json"
	"fmt"

	"devtracker/internal/model"
)

// Encode serializes the aggregate into the stored JSON layout.
func Encode(data *model.Tracker) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode tracker: %w", err)
	}
	return raw, nil
}

// Decode parses and validates a stored blob. Missing collections decode as
// empty lists.
func Decode(raw []byte) (*model.Tracker, error) {
	var data model.Tracker
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidData, err)
	}
	normalize(&data)
	if err := validate(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func normalize(d *model.Tracker) {
	d.Learning = nonNil(d.Learning)
	for i := range d.Learning {
		d.Learning[i].Resources = nonNil(d.Learning[i].Resources)
		d.Learning[i].Notes = nonNil(d.Learning[i].Notes)
	}
	d.DailyTasks = nonNil(d.DailyTasks)
	d.LongTermPlans = nonNil(d.LongTermPlans)
	d.Projects = nonNil(d.Projects)
	for i := range d.Projects {
		d.Projects[i].Tasks = nonNil(d.Projects[i].Tasks)
		d.Projects[i].Resources = nonNil(d.Projects[i].Resources)
	}
	d.Internship.Todos = nonNil(d.Internship.Todos)
	d.Internship.Updates = nonNil(d.Internship.Updates)
	for i := range d.Internship.Updates {
		d.Internship.Updates[i].Tags = nonNil(d.Internship.Updates[i].Tags)
	}
	d.ContentCreation = nonNil(d.ContentCreation)
	d.GymLife = nonNil(d.GymLife)
	d.ScrumBoard = nonNil(d.ScrumBoard)
	d.Meetings = nonNil(d.Meetings)
	for i := range d.Meetings {
		d.Meetings[i].Attendees = nonNil(d.Meetings[i].Attendees)
		d.Meetings[i].Preparation = nonNil(d.Meetings[i].Preparation)
		d.Meetings[i].ActionItems = nonNil(d.Meetings[i].ActionItems)
	}
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

// validate checks that every entity has an id and that ids are unique
// across the whole aggregate.
func validate(d *model.Tracker) error {
	seen := make(map[string]string)
	for _, e := range entries(d) {
		if e.id == "" {
			return fmt.Errorf("%w: %s entry without id", ErrInvalidData, e.where)
		}
		if prev, ok := seen[e.id]; ok {
			return fmt.Errorf("%w: id %q used by %s and %s", ErrInvalidData, e.id, prev, e.where)
		}
		seen[e.id] = e.where
	}
	return nil
}

type entry struct {
	where string
	id    string
}

func entries(d *model.Tracker) []entry {
	var out []entry
	add := func(where Collection, id string) {
		out = append(out, entry{where: string(where), id: id})
	}
	for _, item := range d.Learning {
		add(CollLearning, item.ID)
		for _, r := range item.Resources {
			add(CollLearningResources, r.ID)
		}
		for _, n := range item.Notes {
			add(CollLearningNotes, n.ID)
		}
	}
	for _, t := range d.DailyTasks {
		add(CollDailyTasks, t.ID)
	}
	for _, t := range d.LongTermPlans {
		add(CollLongTermPlans, t.ID)
	}
	for _, p := range d.Projects {
		add(CollProjects, p.ID)
		for _, t := range p.Tasks {
			add(CollProjectTasks, t.ID)
		}
		for _, r := range p.Resources {
			add(CollProjectResources, r.ID)
		}
	}
	for _, t := range d.Internship.Todos {
		add(CollInternshipTodos, t.ID)
	}
	for _, u := range d.Internship.Updates {
		add(CollInternshipUpdates, u.ID)
	}
	for _, c := range d.ContentCreation {
		add(CollContent, c.ID)
	}
	for _, g := range d.GymLife {
		add(CollGym, g.ID)
	}
	for _, c := range d.ScrumBoard {
		add(CollScrum, c.ID)
	}
	for _, m := range d.Meetings {
		add(CollMeetings, m.ID)
		for _, a := range m.ActionItems {
			add(CollActionItems, a.ID)
		}
	}
	return out
}
