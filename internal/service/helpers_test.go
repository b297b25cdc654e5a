package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"devtracker/internal/model"
	"devtracker/internal/repository"
	"devtracker/internal/tracker"
)

// openStore returns a store holding data, or an empty aggregate when nil.
func openStore(t *testing.T, data *model.Tracker) *tracker.Store {
	t.Helper()
	if data == nil {
		data = &model.Tracker{}
	}
	slot := repository.NewMemorySlot()
	raw, err := tracker.Encode(data)
	require.NoError(t, err)
	require.NoError(t, slot.Save(context.Background(), repository.DataKey, raw))

	store, result := tracker.Open(context.Background(), slot)
	require.False(t, result.Seeded)
	return store
}

var may3 = time.Date(2024, 5, 3, 7, 0, 0, 0, time.UTC)
