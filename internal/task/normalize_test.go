package task

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizer_Record(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name     string
		raw      map[string]any
		wantOK   bool
		wantID   string
		wantItem string
		wantDone bool
	}{
		{
			name:     "upstream field names",
			raw:      map[string]any{"id": "t1", "item": "Buy milk", "isDone": true, "userId": "u1"},
			wantOK:   true,
			wantID:   "t1",
			wantItem: "Buy milk",
			wantDone: true,
		},
		{
			name:     "canonical field names",
			raw:      map[string]any{"id": "t2", "title": "Walk dog", "completed": false, "userId": "u1"},
			wantOK:   true,
			wantID:   "t2",
			wantItem: "Walk dog",
		},
		{
			name:   "underscore id variant",
			raw:    map[string]any{"_id": "t3", "item": "Water plants"},
			wantOK: true,
			wantID: "t3",
		},
		{
			name:   "uuid id variant",
			raw:    map[string]any{"uuid": "t4", "title": "Pay rent"},
			wantOK: true,
			wantID: "t4",
		},
		{
			name:   "title without any id is dropped",
			raw:    map[string]any{"item": "orphan"},
			wantOK: false,
		},
		{
			name:   "id without any title is dropped",
			raw:    map[string]any{"id": "t5"},
			wantOK: false,
		},
		{
			name:   "empty strings count as missing",
			raw:    map[string]any{"id": "", "item": ""},
			wantOK: false,
		},
		{
			name:     "isDone wins over completed",
			raw:      map[string]any{"id": "t6", "item": "x", "isDone": true, "completed": false},
			wantOK:   true,
			wantID:   "t6",
			wantDone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := n.Record(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantID, got.ID)
			if tt.wantItem != "" {
				assert.Equal(t, tt.wantItem, got.Title)
			}
			assert.Equal(t, tt.wantDone, got.Completed)
		})
	}
}

func TestNormalizer_RecordDefaults(t *testing.T) {
	n := NewNormalizer(nil)

	got, ok := n.Record(map[string]any{"id": "t1", "item": "x"})
	require.True(t, ok)
	assert.Equal(t, UnknownUserID, got.UserID)
	assert.False(t, got.Completed)
	assert.False(t, got.CreatedAt.IsZero(), "createdAt defaults to now")
	assert.False(t, got.UpdatedAt.IsZero(), "updatedAt defaults to now")
}

func TestNormalizer_RecordOwnerName(t *testing.T) {
	n := NewNormalizer(nil)

	got, ok := n.Record(map[string]any{
		"id":   "t1",
		"item": "x",
		"user": map[string]any{"fullName": "Ayu Pratiwi"},
	})
	require.True(t, ok)
	assert.Equal(t, "Ayu Pratiwi", got.UserName)

	got, ok = n.Record(map[string]any{"id": "t2", "item": "y", "userName": "Bima"})
	require.True(t, ok)
	assert.Equal(t, "Bima", got.UserName)
}

func TestNormalizer_SingleEnvelopes(t *testing.T) {
	n := NewNormalizer(nil)

	bodies := map[string]string{
		"content wrapper": `{"content":{"id":"t1","item":"Buy milk","isDone":false},"message":"ok","errors":[]}`,
		"data wrapper":    `{"data":{"id":"t1","title":"Buy milk","completed":false}}`,
		"bare object":     `{"id":"t1","item":"Buy milk"}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			got, err := n.Single([]byte(body))
			require.NoError(t, err)
			assert.Equal(t, "t1", got.ID)
			assert.Equal(t, "Buy milk", got.Title)
			assert.False(t, got.Completed)
		})
	}
}

func TestNormalizer_SingleRejectsMissingID(t *testing.T) {
	n := NewNormalizer(nil)

	_, err := n.Single([]byte(`{"content":{"item":"no id here"}}`))
	assert.ErrorIs(t, err, ErrNoPayload)

	_, err = n.Single([]byte(`{}`))
	assert.ErrorIs(t, err, ErrNoPayload)
}

func TestNormalizer_ListEnvelopes(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name      string
		body      string
		wantLen   int
		wantTotal int
	}{
		{
			name:      "content.entries with counters",
			body:      `{"content":{"entries":[{"id":"a","item":"one"},{"id":"b","item":"two"}],"totalData":2,"totalPage":1},"message":"ok","errors":[]}`,
			wantLen:   2,
			wantTotal: 2,
		},
		{
			name:    "data array",
			body:    `{"data":[{"id":"a","title":"one"}]}`,
			wantLen: 1,
		},
		{
			name:    "bare array",
			body:    `[{"id":"a","item":"one"},{"id":"b","item":"two"},{"id":"c","item":"three"}]`,
			wantLen: 3,
		},
		{
			name:    "malformed entries are dropped, valid kept",
			body:    `{"content":{"entries":[{"id":"a","item":"one"},{"item":"no id"},{"id":"no-title"}]}}`,
			wantLen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, meta, err := n.List([]byte(tt.body))
			require.NoError(t, err)
			assert.Len(t, tasks, tt.wantLen)
			assert.Equal(t, tt.wantTotal, meta.TotalData)
		})
	}
}

// Normalizing an already-canonical task must be a no-op.
func TestNormalizer_Idempotent(t *testing.T) {
	n := NewNormalizer(nil)

	canonical, ok := n.Record(map[string]any{
		"id":        "t1",
		"item":      "Buy milk",
		"isDone":    true,
		"userId":    "u1",
		"createdAt": "2024-05-01T10:00:00Z",
		"updatedAt": "2024-05-02T10:00:00Z",
	})
	require.True(t, ok)

	payload, err := json.Marshal(canonical)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))

	again, ok := n.Record(raw)
	require.True(t, ok)
	assert.Equal(t, canonical, again)
}

func TestOwnerLabel(t *testing.T) {
	assert.Equal(t, "Ayu", Task{UserName: "Ayu", UserID: "abcdef123"}.OwnerLabel())
	assert.Equal(t, "User abcdef...", Task{UserID: "abcdef123"}.OwnerLabel())
	assert.Equal(t, "User abc...", Task{UserID: "abc"}.OwnerLabel())
	assert.Equal(t, "Unknown User", Task{}.OwnerLabel())
	assert.Equal(t, "Unknown User", Task{UserID: UnknownUserID}.OwnerLabel())
}
