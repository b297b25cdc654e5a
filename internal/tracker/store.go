package tracker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"devtracker/internal/metrics"
	"devtracker/internal/model"
	"devtracker/internal/repository"
)

// Store owns the tracker aggregate. Every mutation is persisted to the slot
// before it becomes visible; readers get immutable snapshots.
type Store struct {
	slot     repository.Slot
	key      string
	log      *zap.Logger
	now      func() time.Time
	newID    func() string
	notifier Notifier
	// reloadOnWrite re-reads the slot before every mutation.
	reloadOnWrite bool

	mu sync.Mutex
	// seen is the last blob read from or written to the slot.
	seen []byte
	// unread holds the error that kept Open from reading the slot. While it
	// is set nothing is written over the data that could not be read.
	unread    error
	current   atomic.Pointer[model.Tracker]
	listeners []listenerEntry
	nextSub   int
}

type listenerEntry struct {
	id int
	fn Listener
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithKey overrides the slot key, repository.DataKey by default.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithReloadOnWrite makes every mutation start from the slot's current
// contents, so writes from other processes sharing the slot are kept.
// Changes picked up this way are not published to listeners.
func WithReloadOnWrite() Option {
	return func(s *Store) { s.reloadOnWrite = true }
}

// LoadResult reports where the initial aggregate came from.
type LoadResult struct {
	// Seeded is true when the slot held no usable data.
	Seeded bool
	// Recovered is true when stored data existed but could not be used.
	Recovered bool
	// Cause holds the read, parse or validation error behind Recovered.
	Cause error
}

// Open loads the aggregate from slot, falling back to the seed data when the
// key is absent or its value cannot be read, decoded or validated.
func Open(ctx context.Context, slot repository.Slot, opts ...Option) (*Store, LoadResult) {
	s := &Store{
		slot:  slot,
		key:   repository.DataKey,
		log:   zap.NewNop(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = LogNotifier{Log: s.log}
	}

	data, result := s.load(ctx)
	s.current.Store(data)
	return s, result
}

func (s *Store) load(ctx context.Context) (*model.Tracker, LoadResult) {
	raw, err := s.slot.Load(ctx, s.key)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Info("no saved tracker data, starting from seed", zap.String("key", s.key))
		return Seed(s.now(), s.newID), LoadResult{Seeded: true}
	}
	if err != nil {
		s.log.Warn("read tracker data failed, starting from seed", zap.String("key", s.key), zap.Error(err))
		s.unread = err
		return Seed(s.now(), s.newID), LoadResult{Seeded: true, Recovered: true, Cause: err}
	}

	s.seen = raw
	data, err := Decode(raw)
	if err != nil {
		s.log.Warn("saved tracker data unusable, starting from seed", zap.String("key", s.key), zap.Error(err))
		s.backup(ctx, raw)
		return Seed(s.now(), s.newID), LoadResult{Seeded: true, Recovered: true, Cause: err}
	}
	return data, LoadResult{}
}

func (s *Store) backup(ctx context.Context, raw []byte) {
	key := s.key + ".corrupt"
	if err := s.slot.Save(ctx, key, raw); err != nil {
		s.log.Warn("back up unusable tracker data", zap.String("key", key), zap.Error(err))
		return
	}
	s.log.Info("unusable tracker data kept", zap.String("key", key))
}

// refresh re-reads the slot and adopts its contents when they changed
// since the last read or write. Callers hold s.mu.
func (s *Store) refresh(ctx context.Context) error {
	raw, err := s.slot.Load(ctx, s.key)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		s.unread = nil
		return nil
	case err != nil:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	s.unread = nil
	if bytes.Equal(raw, s.seen) {
		return nil
	}
	s.seen = raw

	data, err := Decode(raw)
	if err != nil {
		s.log.Warn("slot holds unusable tracker data, keeping current state", zap.String("key", s.key), zap.Error(err))
		s.backup(ctx, raw)
		return nil
	}
	s.current.Store(data)
	s.log.Info("picked up tracker data written elsewhere", zap.String("key", s.key))
	return nil
}

// Snapshot returns the current aggregate. Callers must treat it as read-only.
func (s *Store) Snapshot() *model.Tracker {
	return s.current.Load()
}

// Subscribe registers fn for every subsequent change. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			kept := make([]listenerEntry, 0, len(s.listeners))
			for _, l := range s.listeners {
				if l.id != id {
					kept = append(kept, l)
				}
			}
			s.listeners = kept
		})
	}
}

// Reset replaces the whole aggregate with fresh seed data.
func (s *Store) Reset(ctx context.Context) error {
	return s.commit(ctx, func(*model.Tracker) (*model.Tracker, mutation, bool) {
		return Seed(s.now(), s.newID), mutation{op: OpReset, coll: CollAll}, true
	})
}

// mutation describes one logical change.
type mutation struct {
	op       Op
	coll     Collection
	id       string
	parentID string
	title    string
}

// commit applies build to the current aggregate. build returns false when
// nothing matched, in which case nothing is written or published.
func (s *Store) commit(ctx context.Context, build func(cur *model.Tracker) (*model.Tracker, mutation, bool)) error {
	s.mu.Lock()

	if s.unread != nil || s.reloadOnWrite {
		if err := s.refresh(ctx); err != nil {
			s.mu.Unlock()
			s.log.Warn("tracker change refused, stored data unreadable", zap.Error(err))
			return err
		}
	}

	next, m, ok := build(s.current.Load())
	if !ok {
		s.mu.Unlock()
		s.log.Debug("mutation matched nothing", zap.String("collection", string(m.coll)), zap.String("op", string(m.op)), zap.String("id", m.id))
		return nil
	}

	if err := s.persist(ctx, next); err != nil {
		s.mu.Unlock()
		s.log.Warn("tracker change not saved",
			zap.String("collection", string(m.coll)),
			zap.String("op", string(m.op)),
			zap.String("id", m.id),
			zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.current.Store(next)
	metrics.IncrementMutation(string(m.coll), string(m.op))
	s.log.Debug("tracker changed", zap.String("collection", string(m.coll)), zap.String("op", string(m.op)), zap.String("id", m.id))

	change := Change{Op: m.op, Collection: m.coll, ID: m.id, ParentID: m.parentID, Snapshot: next}
	for _, l := range s.listeners {
		l.fn(change)
	}
	s.mu.Unlock()

	s.notifier.Notify(ctx, Notice{Op: m.op, Collection: m.coll, ID: m.id, Title: m.title})
	return nil
}

func (s *Store) persist(ctx context.Context, data *model.Tracker) error {
	raw, err := Encode(data)
	if err != nil {
		return err
	}
	start := time.Now()
	err = s.slot.Save(ctx, s.key, raw)
	metrics.RecordPersist(time.Since(start), err)
	if err == nil {
		s.seen = raw
	}
	return err
}

// stamp returns the current time, never earlier than floor.
func (s *Store) stamp(floor time.Time) time.Time {
	now := s.now()
	if now.Before(floor) {
		return floor
	}
	return now
}
