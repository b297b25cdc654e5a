package tracker

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	seed := Seed(time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC), sequentialIDs())

	raw, err := Encode(seed)
	require.NoError(t, err)
	decoded, err := Decode(raw)
	require.NoError(t, err)

	if diff := cmp.Diff(seed, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeUsesStoredLayout(t *testing.T) {
	raw, err := Encode(Seed(time.Now().UTC(), sequentialIDs()))
	require.NoError(t, err)

	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &top))
	for _, key := range []string{
		"learning", "dailyTasks", "longTermPlans", "projects", "internship",
		"contentCreation", "gymLife", "scrumBoard", "meetings",
	} {
		assert.Contains(t, top, key)
	}

	var internship map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(top["internship"], &internship))
	assert.Contains(t, internship, "todos")
	assert.Contains(t, internship, "updates")
}

func TestDecodeFillsMissingCollections(t *testing.T) {
	data, err := Decode([]byte(`{"learning":[{"id":"l1","skill":"Go","progress":10}],"internship":{}}`))
	require.NoError(t, err)

	assert.NotNil(t, data.DailyTasks)
	assert.NotNil(t, data.Meetings)
	assert.NotNil(t, data.Internship.Todos)
	assert.NotNil(t, data.Learning[0].Resources)
	assert.NotNil(t, data.Learning[0].Notes)

	raw, err := Encode(data)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"dailyTasks":[]`)
}

func TestDecodeRejectsMissingIDs(t *testing.T) {
	_, err := Decode([]byte(`{"meetings":[{"id":"m1","actionItems":[{"task":"x"}]}]}`))
	assert.ErrorIs(t, err, ErrInvalidData)
	assert.Contains(t, err.Error(), "meetings.actionItems")
}
