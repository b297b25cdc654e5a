package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"devtracker/internal/model"
	"devtracker/internal/repository"
)

var (
	errDiskFull = errors.New("disk full")
	errSlotBusy = errors.New("database is locked")
)

// stepClock advances one second on every reading.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func newStepClock() *stepClock {
	return &stepClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type recordingNotifier struct {
	notices []Notice
}

func (r *recordingNotifier) Notify(_ context.Context, n Notice) {
	r.notices = append(r.notices, n)
}

// flakySlot wraps a MemorySlot and fails writes while failing is set and
// reads while readFailing is set.
type flakySlot struct {
	*repository.MemorySlot
	failing     bool
	readFailing bool
	saves       int
}

func (f *flakySlot) Load(ctx context.Context, key string) ([]byte, error) {
	if f.readFailing {
		return nil, errSlotBusy
	}
	return f.MemorySlot.Load(ctx, key)
}

func (f *flakySlot) Save(ctx context.Context, key string, value []byte) error {
	if f.failing {
		return errDiskFull
	}
	f.saves++
	return f.MemorySlot.Save(ctx, key, value)
}

// newEmptyStore opens a store whose slot already holds an empty aggregate.
func newEmptyStore(t *testing.T, opts ...Option) (*Store, *flakySlot, *recordingNotifier) {
	t.Helper()

	slot := &flakySlot{MemorySlot: repository.NewMemorySlot()}
	raw, err := Encode(&model.Tracker{})
	require.NoError(t, err)
	require.NoError(t, slot.MemorySlot.Save(context.Background(), repository.DataKey, raw))

	notifier := &recordingNotifier{}
	clock := newStepClock()
	opts = append([]Option{WithClock(clock.Now), WithNotifier(notifier)}, opts...)
	store, result := Open(context.Background(), slot, opts...)
	require.False(t, result.Seeded)
	return store, slot, notifier
}

func ptr[T any](v T) *T { return &v }
