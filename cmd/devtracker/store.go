package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"devtracker/internal/config"
	"devtracker/internal/repository"
	"devtracker/internal/tracker"
)

func openSlot(ctx context.Context) (repository.Slot, error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		return repository.NewMemorySlot(), nil
	case config.StorageRedis:
		slot := repository.NewRedisSlot(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := slot.Ping(ctx); err != nil {
			_ = slot.Close()
			return nil, err
		}
		return slot, nil
	default:
		db, err := repository.NewDB(cfg.Storage.DatabaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		return repository.NewSlotRepository(db), nil
	}
}

// openStore opens the configured slot and loads the tracker from it. The
// caller closes the returned slot.
func openStore(ctx context.Context, notifier tracker.Notifier, extra ...tracker.Option) (*tracker.Store, repository.Slot, error) {
	slot, err := openSlot(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts := []tracker.Option{tracker.WithLogger(logger.Named("tracker"))}
	if notifier != nil {
		opts = append(opts, tracker.WithNotifier(notifier))
	}
	if cfg.Storage.Key != "" {
		opts = append(opts, tracker.WithKey(cfg.Storage.Key))
	}
	opts = append(opts, extra...)

	store, result := tracker.Open(ctx, slot, opts...)
	if result.Recovered {
		logger.Warn("stored data could not be used, started from seed", zap.Error(result.Cause))
	}
	return store, slot, nil
}

// printNotices echoes confirmations for one-shot commands.
var printNotices = tracker.NotifierFunc(func(_ context.Context, n tracker.Notice) {
	fmt.Println("✔", n.String())
})

// withStore runs fn against a freshly opened store and closes the slot after.
func withStore(ctx context.Context, fn func(*tracker.Store) error) error {
	store, slot, err := openStore(ctx, printNotices)
	if err != nil {
		return err
	}
	defer slot.Close()
	return fn(store)
}
