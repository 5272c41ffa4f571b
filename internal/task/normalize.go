package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNoPayload is returned when a response body carries no recognizable
// task payload in any of the known envelope shapes.
var ErrNoPayload = errors.New("no task payload in response")

// ListMeta carries server-side pagination counters when the envelope
// provides them. Zero values mean the server sent none.
type ListMeta struct {
	TotalData int `json:"totalData"`
	TotalPage int `json:"totalPage"`
}

// Normalizer coerces the API's heterogeneous task payloads into canonical
// Tasks. The upstream API is not consistent across revisions: a record may
// arrive wrapped in content.*, data.*, or bare, and fields may be named
// item/title, isDone/completed, id/_id/uuid. All of that shape-sniffing
// lives here and nowhere else.
type Normalizer struct {
	logger *log.Logger
	now    func() time.Time
}

// NewNormalizer builds a normalizer that reports rejected records to logger.
// A nil logger silences rejection diagnostics.
func NewNormalizer(logger *log.Logger) *Normalizer {
	return &Normalizer{logger: logger, now: time.Now}
}

// Record normalizes one raw task-like record. The second return value is
// false when the record yields no usable id or title; such records are
// dropped and logged, never surfaced as errors.
func (n *Normalizer) Record(raw map[string]any) (Task, bool) {
	id := firstString(raw, "id", "_id", "uuid")
	title := firstString(raw, "item", "title")
	if id == "" || title == "" {
		n.warn("dropping malformed task record", "id", id, "title", title)
		return Task{}, false
	}

	completed, _ := firstBool(raw, "isDone", "completed")

	userID := firstString(raw, "userId")
	if userID == "" {
		userID = UnknownUserID
	}

	t := Task{
		ID:        id,
		Title:     title,
		Completed: completed,
		UserID:    userID,
		UserName:  ownerName(raw),
		CreatedAt: n.timestamp(raw, "createdAt"),
		UpdatedAt: n.timestamp(raw, "updatedAt"),
	}
	return t, true
}

// Single decodes a response body holding one task in any envelope shape.
// A missing or rejected record is an error here: single-record responses
// back create and update calls, where silently dropping the payload would
// leave the caller with nothing to reconcile.
func (n *Normalizer) Single(body []byte) (Task, error) {
	var outer map[string]any
	if err := json.Unmarshal(body, &outer); err != nil {
		return Task{}, fmt.Errorf("decode task response: %w", err)
	}

	record := unwrapRecord(outer)
	if record == nil {
		return Task{}, ErrNoPayload
	}
	t, ok := n.Record(record)
	if !ok {
		return Task{}, ErrNoPayload
	}
	return t, nil
}

// List decodes a response body holding a task collection in any envelope
// shape. Malformed entries are dropped, valid ones kept.
func (n *Normalizer) List(body []byte) ([]Task, ListMeta, error) {
	var meta ListMeta

	// Bare array is the simplest observed shape.
	var bare []map[string]any
	if err := json.Unmarshal(body, &bare); err == nil {
		return n.records(bare), meta, nil
	}

	var outer map[string]any
	if err := json.Unmarshal(body, &outer); err != nil {
		return nil, meta, fmt.Errorf("decode task list response: %w", err)
	}

	entries, found := unwrapEntries(outer, &meta)
	if !found {
		return nil, meta, ErrNoPayload
	}
	return n.records(entries), meta, nil
}

func (n *Normalizer) records(raws []map[string]any) []Task {
	tasks := make([]Task, 0, len(raws))
	for _, raw := range raws {
		if t, ok := n.Record(raw); ok {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

func (n *Normalizer) timestamp(raw map[string]any, key string) time.Time {
	if s := firstString(raw, key); s != "" {
		if ts, err := time.Parse(time.RFC3339, s); err == nil {
			return ts
		}
	}
	// Default-filled timestamps mean persisted ordering cannot be fully
	// trusted afterwards.
	return n.now()
}

func (n *Normalizer) warn(msg string, kv ...any) {
	if n.logger != nil {
		n.logger.Warn(msg, kv...)
	}
}

// unwrapRecord peels the envelope off a single-record response:
// content.* first, then data.*, then the bare object itself.
func unwrapRecord(outer map[string]any) map[string]any {
	for _, key := range []string{"content", "data"} {
		if inner, ok := outer[key].(map[string]any); ok {
			return inner
		}
	}
	if len(outer) == 0 {
		return nil
	}
	return outer
}

// unwrapEntries locates the record array in a list response. Observed
// shapes: content.entries (with totalData/totalPage counters), data as an
// array, or entries at the top level.
func unwrapEntries(outer map[string]any, meta *ListMeta) ([]map[string]any, bool) {
	if content, ok := outer["content"].(map[string]any); ok {
		meta.TotalData = intField(content, "totalData")
		meta.TotalPage = intField(content, "totalPage")
		if entries, ok := toRecords(content["entries"]); ok {
			return entries, true
		}
	}
	if entries, ok := toRecords(outer["data"]); ok {
		return entries, true
	}
	if entries, ok := toRecords(outer["entries"]); ok {
		return entries, true
	}
	return nil, false
}

func toRecords(v any) ([]map[string]any, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]any); ok {
			records = append(records, record)
		}
	}
	return records, true
}

// ownerName digs the owner display name out of the record: a nested
// user.fullName object when the admin listing includes one, otherwise a
// flat userName field.
func ownerName(raw map[string]any) string {
	if user, ok := raw["user"].(map[string]any); ok {
		if name := firstString(user, "fullName", "name"); name != "" {
			return name
		}
	}
	return firstString(raw, "userName")
}

// firstString returns the first non-empty string value among keys.
// Numeric ids are stringified so they survive normalization.
func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return formatNumber(v)
		case json.Number:
			return v.String()
		}
	}
	return ""
}

func firstBool(raw map[string]any, keys ...string) (bool, bool) {
	for _, key := range keys {
		if v, ok := raw[key].(bool); ok {
			return v, true
		}
	}
	return false, false
}

func intField(raw map[string]any, key string) int {
	switch v := raw[key].(type) {
	case float64:
		return int(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
	}
	return 0
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
