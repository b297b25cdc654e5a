package tracker

import (
	"context"

	"devtracker/internal/model"
)

// ProjectInput carries the caller fields of a new project. Tasks and
// resources start empty and are added through the child operations.
type ProjectInput struct {
	Title       string
	Description string
	Status      model.ProjectStatus
	Progress    int
}

// ProjectPatch has no Tasks or Resources fields; child lists
// change only through the project task and resource operations.
type ProjectPatch struct {
	Title       *string
	Description *string
	Status      *model.ProjectStatus
	Progress    *int
}

func (p ProjectPatch) apply(pr model.Project) model.Project {
	set(&pr.Title, p.Title)
	set(&pr.Description, p.Description)
	set(&pr.Status, p.Status)
	set(&pr.Progress, p.Progress)
	return pr
}

func (s *Store) AddProject(ctx context.Context, in ProjectInput) (model.Project, error) {
	var project model.Project
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		project = model.Project{
			ID:          s.newID(),
			Title:       in.Title,
			Description: in.Description,
			Status:      in.Status,
			Tasks:       []model.Task{},
			Resources:   []model.Resource{},
			Progress:    in.Progress,
			CreatedAt:   s.now(),
		}
		next := *cur
		next.Projects = appended(cur.Projects, project)
		return &next, mutation{op: OpAdd, coll: CollProjects, id: project.ID, title: project.Title}, true
	})
	return project, err
}

func (s *Store) UpdateProject(ctx context.Context, id string, p ProjectPatch) error {
	m := mutation{op: OpUpdate, coll: CollProjects, id: id}
	return s.editProject(ctx, id, m, func(pr model.Project) (model.Project, bool) {
		return p.apply(pr), true
	})
}

// DeleteProject removes the project together with its tasks and resources.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		m := mutation{op: OpDelete, coll: CollProjects, id: id}
		pr, found := find(cur.Projects, id)
		if !found {
			return cur, m, false
		}
		m.title = pr.Title
		next := *cur
		next.Projects, _ = removed(cur.Projects, id)
		return &next, m, true
	})
}

// SyncProjectProgress stores the completion percentage computed from the
// project's task list. Child task operations never do this on their own.
func (s *Store) SyncProjectProgress(ctx context.Context, id string) error {
	m := mutation{op: OpUpdate, coll: CollProjects, id: id}
	return s.editProject(ctx, id, m, func(pr model.Project) (model.Project, bool) {
		pr.Progress = pr.DerivedProgress()
		return pr, true
	})
}

// AddProjectTask appends a task to a project. A missing project is a no-op
// returning the zero Task. The stored progress is not touched.
func (s *Store) AddProjectTask(ctx context.Context, projectID string, in TaskInput) (model.Task, error) {
	var task model.Task
	var added bool
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		task = s.newTask(in)
		m := mutation{op: OpAdd, coll: CollProjectTasks, id: task.ID, parentID: projectID, title: task.Title}
		next := *cur
		next.Projects, added = replaced(cur.Projects, projectID, func(pr model.Project) model.Project {
			pr.Tasks = appended(pr.Tasks, task)
			return pr
		})
		return &next, m, added
	})
	if err != nil || !added {
		return model.Task{}, err
	}
	return task, nil
}

func (s *Store) UpdateProjectTask(ctx context.Context, projectID, taskID string, p TaskPatch) error {
	m := mutation{op: OpUpdate, coll: CollProjectTasks, id: taskID, parentID: projectID}
	return s.editProject(ctx, projectID, m, func(pr model.Project) (model.Project, bool) {
		var ok bool
		pr.Tasks, ok = replaced(pr.Tasks, taskID, p.apply)
		return pr, ok
	})
}

func (s *Store) DeleteProjectTask(ctx context.Context, projectID, taskID string) error {
	m := mutation{op: OpDelete, coll: CollProjectTasks, id: taskID, parentID: projectID}
	return s.editProject(ctx, projectID, m, func(pr model.Project) (model.Project, bool) {
		var ok bool
		pr.Tasks, ok = removed(pr.Tasks, taskID)
		return pr, ok
	})
}

func (s *Store) AddProjectResource(ctx context.Context, projectID string, in ResourceInput) (model.Resource, error) {
	var res model.Resource
	var added bool
	err := s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		res = s.newResource(in)
		m := mutation{op: OpAdd, coll: CollProjectResources, id: res.ID, parentID: projectID, title: res.Title}
		next := *cur
		next.Projects, added = replaced(cur.Projects, projectID, func(pr model.Project) model.Project {
			pr.Resources = appended(pr.Resources, res)
			return pr
		})
		return &next, m, added
	})
	if err != nil || !added {
		return model.Resource{}, err
	}
	return res, nil
}

func (s *Store) DeleteProjectResource(ctx context.Context, projectID, resourceID string) error {
	m := mutation{op: OpDelete, coll: CollProjectResources, id: resourceID, parentID: projectID}
	return s.editProject(ctx, projectID, m, func(pr model.Project) (model.Project, bool) {
		var ok bool
		pr.Resources, ok = removed(pr.Resources, resourceID)
		return pr, ok
	})
}

// editProject rewrites one project through fn. fn reports whether anything
// inside the project matched.
func (s *Store) editProject(ctx context.Context, projectID string, m mutation, fn func(model.Project) (model.Project, bool)) error {
	return s.commit(ctx, func(cur *model.Tracker) (*model.Tracker, mutation, bool) {
		pr, found := find(cur.Projects, projectID)
		if !found {
			return cur, m, false
		}
		updated, ok := fn(pr)
		if !ok {
			return cur, m, false
		}
		if m.parentID == "" {
			m.title = updated.Title
		}
		next := *cur
		next.Projects, _ = replaced(cur.Projects, projectID, func(model.Project) model.Project {
			return updated
		})
		return &next, m, true
	})
}
