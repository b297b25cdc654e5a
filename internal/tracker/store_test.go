package tracker

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devtracker/internal/model"
	"devtracker/internal/repository"
)

func TestOpenSeedsWhenSlotEmpty(t *testing.T) {
	slot := repository.NewMemorySlot()
	store, result := Open(context.Background(), slot)

	assert.True(t, result.Seeded)
	assert.False(t, result.Recovered)

	data := store.Snapshot()
	assert.NotEmpty(t, data.Learning)
	assert.NotEmpty(t, data.DailyTasks)
	assert.NotEmpty(t, data.LongTermPlans)
	assert.NotEmpty(t, data.Projects)
	assert.NotEmpty(t, data.Internship.Todos)
	assert.NotEmpty(t, data.Internship.Updates)
	assert.NotEmpty(t, data.ContentCreation)
	assert.NotEmpty(t, data.GymLife)
	assert.NotEmpty(t, data.ScrumBoard)
	assert.NotEmpty(t, data.Meetings)
	require.NoError(t, validate(data))

	// Seed data is not written until the first mutation.
	_, err := slot.Load(context.Background(), repository.DataKey)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOpenRecoversFromCorruptData(t *testing.T) {
	ctx := context.Background()
	slot := repository.NewMemorySlot()
	require.NoError(t, slot.Save(ctx, repository.DataKey, []byte("{not json")))

	store, result := Open(ctx, slot)

	assert.True(t, result.Seeded)
	assert.True(t, result.Recovered)
	assert.ErrorIs(t, result.Cause, ErrInvalidData)
	assert.NotEmpty(t, store.Snapshot().Learning)

	backup, err := slot.Load(ctx, repository.DataKey+".corrupt")
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(backup))
}

func TestOpenRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	slot := repository.NewMemorySlot()
	raw := `{"dailyTasks":[{"id":"a","title":"one"}],"scrumBoard":[{"id":"a","title":"two"}]}`
	require.NoError(t, slot.Save(ctx, repository.DataKey, []byte(raw)))

	_, result := Open(ctx, slot)

	assert.True(t, result.Recovered)
	assert.ErrorIs(t, result.Cause, ErrInvalidData)
}

func TestOpenLoadsSavedData(t *testing.T) {
	ctx := context.Background()
	store, slot, _ := newEmptyStore(t)

	task, err := store.AddTask(ctx, model.SectionDaily, TaskInput{Title: "Write report"})
	require.NoError(t, err)

	reopened, result := Open(ctx, slot)
	assert.Equal(t, LoadResult{}, result)
	if diff := cmp.Diff(store.Snapshot(), reopened.Snapshot(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("reloaded aggregate mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, task.ID, reopened.Snapshot().DailyTasks[0].ID)
}

func TestUnreadableSlotIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{MemorySlot: repository.NewMemorySlot()}
	raw, err := Encode(&model.Tracker{DailyTasks: []model.Task{{ID: "t1", Title: "existing"}}})
	require.NoError(t, err)
	require.NoError(t, slot.MemorySlot.Save(ctx, repository.DataKey, raw))

	slot.readFailing = true
	notifier := &recordingNotifier{}
	store, result := Open(ctx, slot, WithNotifier(notifier))
	require.True(t, result.Recovered)
	assert.ErrorIs(t, result.Cause, errSlotBusy)

	_, err = store.AddTask(ctx, model.SectionDaily, TaskInput{Title: "new"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Zero(t, slot.saves)
	assert.Empty(t, notifier.notices)

	slot.readFailing = false
	_, err = store.AddTask(ctx, model.SectionDaily, TaskInput{Title: "new"})
	require.NoError(t, err)
	assert.Len(t, notifier.notices, 1)

	reopened, result := Open(ctx, slot)
	require.False(t, result.Seeded)
	var titles []string
	for _, task := range reopened.Snapshot().DailyTasks {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"existing", "new"}, titles)
	assert.Empty(t, reopened.Snapshot().Learning)
}

func TestReloadOnWriteKeepsOtherWriters(t *testing.T) {
	ctx := context.Background()
	server, slot, _ := newEmptyStore(t, WithReloadOnWrite())
	oneShot, result := Open(ctx, slot)
	require.False(t, result.Seeded)

	_, err := oneShot.AddTask(ctx, model.SectionDaily, TaskInput{Title: "from cli"})
	require.NoError(t, err)
	_, err = server.AddTask(ctx, model.SectionDaily, TaskInput{Title: "from server"})
	require.NoError(t, err)

	reopened, _ := Open(ctx, slot)
	var titles []string
	for _, task := range reopened.Snapshot().DailyTasks {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"from cli", "from server"}, titles)
	assert.Len(t, server.Snapshot().DailyTasks, 2)
}

func TestPersistFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store, slot, notifier := newEmptyStore(t)

	var changes int
	store.Subscribe(func(Change) { changes++ })

	before := store.Snapshot()
	slot.failing = true

	_, err := store.AddScrumCard(ctx, ScrumCardInput{Title: "X", Status: model.CardTodo})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersist)
	assert.ErrorIs(t, err, errDiskFull)

	assert.Same(t, before, store.Snapshot())
	assert.Empty(t, store.Snapshot().ScrumBoard)
	assert.Zero(t, changes)
	assert.Empty(t, notifier.notices)

	slot.failing = false
	_, err = store.AddScrumCard(ctx, ScrumCardInput{Title: "X", Status: model.CardTodo})
	require.NoError(t, err)
	assert.Len(t, store.Snapshot().ScrumBoard, 1)
	assert.Equal(t, 1, changes)
	assert.Len(t, notifier.notices, 1)
}

func TestSubscribeReceivesOneChangePerMutation(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newEmptyStore(t)

	var got []Change
	cancel := store.Subscribe(func(c Change) { got = append(got, c) })

	idea, err := store.AddContentIdea(ctx, ContentIdeaInput{Title: "Go generics", Status: model.ContentIdeaStatus})
	require.NoError(t, err)
	require.NoError(t, store.UpdateContentIdea(ctx, idea.ID, ContentIdeaPatch{Status: ptr(model.ContentDraft)}))
	require.NoError(t, store.DeleteContentIdea(ctx, idea.ID))

	require.Len(t, got, 3)
	assert.Equal(t, []Op{OpAdd, OpUpdate, OpDelete}, []Op{got[0].Op, got[1].Op, got[2].Op})
	for _, c := range got {
		assert.Equal(t, CollContent, c.Collection)
		assert.Equal(t, idea.ID, c.ID)
	}
	assert.Len(t, got[0].Snapshot.ContentCreation, 1)
	assert.Equal(t, model.ContentDraft, got[1].Snapshot.ContentCreation[0].Status)
	assert.Empty(t, got[2].Snapshot.ContentCreation)
	assert.Same(t, store.Snapshot(), got[2].Snapshot)

	cancel()
	cancel()
	_, err = store.AddContentIdea(ctx, ContentIdeaInput{Title: "later"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestNoOpsDoNotPersistOrNotify(t *testing.T) {
	ctx := context.Background()
	store, slot, notifier := newEmptyStore(t)

	var changes int
	store.Subscribe(func(Change) { changes++ })
	before := store.Snapshot()

	require.NoError(t, store.UpdateTask(ctx, model.SectionDaily, "missing", TaskPatch{Title: ptr("x")}))
	require.NoError(t, store.DeleteTask(ctx, model.SectionLongTerm, "missing"))
	require.NoError(t, store.DeleteProject(ctx, "missing"))
	require.NoError(t, store.DeleteNote(ctx, "missing", "missing"))
	require.NoError(t, store.UpdateMeetingActionItem(ctx, "missing", "missing", ActionItemPatch{}))
	require.NoError(t, store.UpdateScrumCardStatus(ctx, "missing", model.CardDone))

	res, err := store.AddResource(ctx, "missing", ResourceInput{Title: "docs"})
	require.NoError(t, err)
	assert.Empty(t, res.ID)

	task, err := store.AddTask(ctx, model.Section("weekly"), TaskInput{Title: "x"})
	require.NoError(t, err)
	assert.Empty(t, task.ID)

	assert.Same(t, before, store.Snapshot())
	assert.Zero(t, slot.saves)
	assert.Zero(t, changes)
	assert.Empty(t, notifier.notices)
}

func TestNotifierFiresOncePerCommittedMutation(t *testing.T) {
	ctx := context.Background()
	store, _, notifier := newEmptyStore(t)

	card, err := store.AddScrumCard(ctx, ScrumCardInput{Title: "Ship", Status: model.CardTodo})
	require.NoError(t, err)
	require.NoError(t, store.UpdateScrumCardStatus(ctx, card.ID, model.CardDone))
	require.NoError(t, store.DeleteScrumCard(ctx, card.ID))
	require.NoError(t, store.DeleteScrumCard(ctx, card.ID))

	require.Len(t, notifier.notices, 3)
	assert.Equal(t, Notice{Op: OpAdd, Collection: CollScrum, ID: card.ID, Title: "Ship"}, notifier.notices[0])
	assert.Equal(t, "Card added: Ship", notifier.notices[0].String())
	assert.Equal(t, OpUpdate, notifier.notices[1].Op)
	assert.Equal(t, "Card deleted: Ship", notifier.notices[2].String())
}

func TestSnapshotsAreNotModifiedByLaterMutations(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newEmptyStore(t)

	task, err := store.AddTask(ctx, model.SectionDaily, TaskInput{Title: "a"})
	require.NoError(t, err)
	old := store.Snapshot()
	frozen := old.Clone()

	require.NoError(t, store.UpdateTask(ctx, model.SectionDaily, task.ID, TaskPatch{Completed: ptr(true)}))
	_, err = store.AddTask(ctx, model.SectionDaily, TaskInput{Title: "b"})
	require.NoError(t, err)

	assert.NotSame(t, old, store.Snapshot())
	if diff := cmp.Diff(frozen, old, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("old snapshot changed (-want +got):\n%s", diff)
	}
}

func TestPatchedListsDoNotAliasCallerSlices(t *testing.T) {
	ctx := context.Background()
	store, _, notifier := newEmptyStore(t)

	meeting, err := store.AddMeeting(ctx, MeetingInput{Title: "Sync"})
	require.NoError(t, err)
	update, err := store.AddInternshipUpdate(ctx, InternshipUpdateInput{Title: "Week 1"})
	require.NoError(t, err)

	attendees := []string{"ana", "bo"}
	prep := []string{"agenda"}
	tags := []string{"backend"}
	require.NoError(t, store.UpdateMeeting(ctx, meeting.ID, MeetingPatch{Attendees: &attendees, Preparation: &prep}))
	require.NoError(t, store.UpdateInternshipUpdate(ctx, update.ID, InternshipUpdatePatch{Tags: &tags}))
	frozen := store.Snapshot().Clone()
	notices := len(notifier.notices)

	attendees[0] = "mutated"
	prep[0] = "mutated"
	tags[0] = "mutated"

	if diff := cmp.Diff(frozen, store.Snapshot(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("snapshot changed through caller slices (-want +got):\n%s", diff)
	}
	assert.Equal(t, notices, len(notifier.notices))
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newEmptyStore(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		card, err := store.AddScrumCard(ctx, ScrumCardInput{Title: "c"})
		require.NoError(t, err)
		require.Len(t, card.ID, 36)
		require.False(t, seen[card.ID], "duplicate id %s", card.ID)
		seen[card.ID] = true
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	store, _, notifier := newEmptyStore(t)

	require.NoError(t, store.Reset(ctx))

	assert.NotEmpty(t, store.Snapshot().Learning)
	require.Len(t, notifier.notices, 1)
	assert.Equal(t, OpReset, notifier.notices[0].Op)
}
