package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"devtracker/internal/repository"
	"devtracker/internal/tracker"
)

func TestExportFormats(t *testing.T) {
	store, result := tracker.Open(context.Background(), repository.NewMemorySlot())
	require.True(t, result.Seeded)

	var asJSON bytes.Buffer
	require.NoError(t, export(&asJSON, store, "json"))
	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(asJSON.Bytes(), &fromJSON))

	var asYAML bytes.Buffer
	require.NoError(t, export(&asYAML, store, "yaml"))
	var fromYAML map[string]any
	require.NoError(t, yaml.Unmarshal(asYAML.Bytes(), &fromYAML))

	for _, key := range []string{"learning", "dailyTasks", "longTermPlans", "projects", "internship", "contentCreation", "gymLife", "scrumBoard", "meetings"} {
		assert.Contains(t, fromJSON, key)
		assert.Contains(t, fromYAML, key)
	}

	assert.Error(t, export(&bytes.Buffer{}, store, "csv"))
}
