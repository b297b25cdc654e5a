package model

// Tracker is the aggregate holding every collection. Values reachable from a
// published Tracker are never modified; mutations build new slices.
type Tracker struct {
	Learning        []LearningItem `json:"learning"`
	DailyTasks      []Task         `json:"dailyTasks"`
	LongTermPlans   []Task         `json:"longTermPlans"`
	Projects        []Project      `json:"projects"`
	Internship      Internship     `json:"internship"`
	ContentCreation []ContentIdea  `json:"contentCreation"`
	GymLife         []GymEntry     `json:"gymLife"`
	ScrumBoard      []ScrumCard    `json:"scrumBoard"`
	Meetings        []Meeting      `json:"meetings"`
}

// Tasks returns the task list for a section, or nil for an unknown section.
func (t *Tracker) Tasks(section Section) []Task {
	switch section {
	case SectionDaily:
		return t.DailyTasks
	case SectionLongTerm:
		return t.LongTermPlans
	default:
		return nil
	}
}

// Clone returns a deep copy that shares no slices with t.
func (t *Tracker) Clone() *Tracker {
	out := &Tracker{
		Learning:      make([]LearningItem, len(t.Learning)),
		DailyTasks:    append([]Task{}, t.DailyTasks...),
		LongTermPlans: append([]Task{}, t.LongTermPlans...),
		Projects:      make([]Project, len(t.Projects)),
		Internship: Internship{
			Todos:   append([]Task{}, t.Internship.Todos...),
			Updates: make([]InternshipUpdate, len(t.Internship.Updates)),
		},
		ContentCreation: append([]ContentIdea{}, t.ContentCreation...),
		GymLife:         make([]GymEntry, len(t.GymLife)),
		ScrumBoard:      append([]ScrumCard{}, t.ScrumBoard...),
		Meetings:        make([]Meeting, len(t.Meetings)),
	}
	for i, item := range t.Learning {
		item.Resources = append([]Resource{}, item.Resources...)
		item.Notes = append([]Note{}, item.Notes...)
		out.Learning[i] = item
	}
	for i, p := range t.Projects {
		p.Tasks = append([]Task{}, p.Tasks...)
		p.Resources = append([]Resource{}, p.Resources...)
		out.Projects[i] = p
	}
	for i, u := range t.Internship.Updates {
		u.Tags = append([]string{}, u.Tags...)
		out.Internship.Updates[i] = u
	}
	for i, g := range t.GymLife {
		if g.Duration != nil {
			d := *g.Duration
			g.Duration = &d
		}
		out.GymLife[i] = g
	}
	for i, m := range t.Meetings {
		m.Attendees = append([]string{}, m.Attendees...)
		m.Preparation = append([]string{}, m.Preparation...)
		m.ActionItems = append([]ActionItem{}, m.ActionItems...)
		out.Meetings[i] = m
	}
	return out
}
