package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtracker/internal/model"
	"devtracker/internal/tracker"
)

func TestTaskServiceCreateAndComplete(t *testing.T) {
	ctx := context.Background()
	svc := NewTaskService(openStore(t, nil))

	_, err := svc.CreateTask(ctx, model.SectionDaily, tracker.TaskInput{Title: "   "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	first, err := svc.CreateTask(ctx, model.SectionDaily, tracker.TaskInput{Title: " Review PRs "})
	require.NoError(t, err)
	assert.Equal(t, "Review PRs", first.Title)
	_, err = svc.CreateTask(ctx, model.SectionDaily, tracker.TaskInput{Title: "Inbox zero"})
	require.NoError(t, err)

	got, err := svc.TaskAt(model.SectionDaily, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = svc.TaskAt(model.SectionDaily, 3)
	assert.ErrorIs(t, err, ErrNoSuchItem)
	_, err = svc.TaskAt(model.SectionDaily, 0)
	assert.ErrorIs(t, err, ErrNoSuchItem)

	require.NoError(t, svc.CompleteTask(ctx, model.SectionDaily, first.ID))
	assert.True(t, svc.List(model.SectionDaily)[0].Completed)

	require.NoError(t, svc.DeleteTask(ctx, model.SectionDaily, first.ID))
	assert.Len(t, svc.List(model.SectionDaily), 1)
	assert.Empty(t, svc.List(model.SectionLongTerm))
}

func TestTaskServiceKeepsProjectProgressInSync(t *testing.T) {
	ctx := context.Background()
	store := openStore(t, nil)
	svc := NewTaskService(store)

	project, err := store.AddProject(ctx, tracker.ProjectInput{Title: "Site"})
	require.NoError(t, err)

	a, err := svc.AddProjectTask(ctx, project.ID, tracker.TaskInput{Title: "a"})
	require.NoError(t, err)
	_, err = svc.AddProjectTask(ctx, project.ID, tracker.TaskInput{Title: "b"})
	require.NoError(t, err)
	assert.Equal(t, 0, store.Snapshot().Projects[0].Progress)

	require.NoError(t, svc.ToggleProjectTask(ctx, project.ID, a.ID))
	assert.Equal(t, 50, store.Snapshot().Projects[0].Progress)

	require.NoError(t, svc.ToggleProjectTask(ctx, project.ID, a.ID))
	assert.Equal(t, 0, store.Snapshot().Projects[0].Progress)

	require.NoError(t, svc.ToggleProjectTask(ctx, project.ID, "missing"))
	missing, err := svc.AddProjectTask(ctx, "missing", tracker.TaskInput{Title: "x"})
	require.NoError(t, err)
	assert.Empty(t, missing.ID)
}
