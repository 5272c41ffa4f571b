package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"taskboard/internal/task"
)

// Action is the verb sent to PUT /todos/:id/mark.
type Action string

const (
	ActionDone   Action = "DONE"
	ActionUndone Action = "UNDONE"
)

const maxTitleLen = 200

// FetchTasks loads the task list into the cache. The generation recorded
// before the request guards the write: if an optimistic mutation lands
// while the fetch is in flight, the stale response is discarded instead of
// overwriting the patched cache.
func (c *Client) FetchTasks(ctx context.Context) ([]task.Task, error) {
	gen := c.cache.Generation()

	body, err := c.do(ctx, http.MethodGet, "/todos", nil)
	if err != nil {
		return nil, err
	}
	tasks, _, err := c.norm.List(body)
	if err != nil {
		return nil, &APIError{Kind: KindUnknown, Message: fmt.Sprintf("unexpected task list shape: %v", err)}
	}

	if !c.cache.ReplaceIfCurrent(gen, tasks) {
		c.logger.Debug("discarding stale task list refetch")
		return c.cache.Snapshot(), nil
	}
	return tasks, nil
}

// CreateTask sends a new task and reconciles the cache with the server's
// answer. A creation response without a server-assigned id is a hard
// failure: a client-generated id could never be reconciled with later
// server operations.
func (c *Client) CreateTask(ctx context.Context, title string) (task.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxTitleLen {
		return task.Task{}, &APIError{Kind: KindValidation, Message: "title must be between 1 and 200 characters"}
	}

	body, err := c.do(ctx, http.MethodPost, "/todos", map[string]string{"item": title})
	if err != nil {
		return task.Task{}, err
	}

	created, err := c.norm.Single(body)
	if err != nil {
		return task.Task{}, &APIError{Kind: KindUnknown, Message: "server did not return a task id"}
	}

	c.cache.Upsert(created)
	c.refetch(ctx)
	return created, nil
}

// UpdateTask renames a task.
func (c *Client) UpdateTask(ctx context.Context, id, title string) (task.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxTitleLen {
		return task.Task{}, &APIError{Kind: KindValidation, Message: "title must be between 1 and 200 characters"}
	}

	body, err := c.do(ctx, http.MethodPut, "/todos/"+id, map[string]string{"item": title})
	if err != nil {
		return task.Task{}, err
	}

	updated, err := c.norm.Single(body)
	if err != nil {
		return task.Task{}, &APIError{Kind: KindUnknown, Message: "server did not return the updated task"}
	}

	c.cache.Upsert(updated)
	c.refetch(ctx)
	return updated, nil
}

// MarkTask flips a task done or undone. The flip is applied optimistically
// for parity with the delete flow, but unlike delete it rolls back on
// failure: a wrong completion flag is confusing in a way a lingering
// deleted row is not.
func (c *Client) MarkTask(ctx context.Context, id string, action Action) (task.Task, error) {
	if action != ActionDone && action != ActionUndone {
		return task.Task{}, &APIError{Kind: KindValidation, Message: "action must be DONE or UNDONE"}
	}

	prev, _ := c.cache.SetCompleted(id, action == ActionDone)

	body, err := c.do(ctx, http.MethodPut, "/todos/"+id+"/mark", map[string]string{"action": string(action)})
	if err != nil {
		c.cache.Restore(prev)
		return task.Task{}, err
	}

	marked, err := c.norm.Single(body)
	if err != nil {
		// Some revisions answer mark with a bare status body. The
		// optimistic flip already holds; reconcile via refetch.
		c.refetch(ctx)
		for _, t := range c.cache.Snapshot() {
			if t.ID == id {
				return t, nil
			}
		}
		return task.Task{}, &APIError{Kind: KindUnknown, Message: "marked task no longer present"}
	}

	c.cache.Upsert(marked)
	c.refetch(ctx)
	return marked, nil
}

// DeleteTask removes one task. The removal is optimistic: the task leaves
// the cache before the request is issued. Under the default no-rollback
// policy the operation reports success even when the server call fails; a
// lingering row comes back on the next full refetch.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	prev := c.cache.Remove(id)

	_, err := c.do(ctx, http.MethodDelete, "/todos/"+id, nil)
	return c.settleDelete(ctx, prev, err)
}

// BulkDeleteTasks removes several tasks. The requests go out as parallel
// individual deletes rather than one bulk call; each call is independent,
// so one failure never blocks the others. Under the no-rollback policy a
// partial failure still reads as success, the same trade-off single
// deletes make.
func (c *Client) BulkDeleteTasks(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	prev := c.cache.Remove(ids...)

	var wg sync.WaitGroup
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			_, errs[i] = c.do(ctx, http.MethodDelete, "/todos/"+id, nil)
		}(i, id)
	}
	wg.Wait()

	var firstErr error
	for _, err := range errs {
		if err != nil {
			firstErr = err
			break
		}
	}
	return c.settleDelete(ctx, prev, firstErr)
}

func (c *Client) settleDelete(ctx context.Context, prev []task.Task, err error) error {
	switch c.deletePolicy {
	case task.DeletePolicyRollbackOnError:
		if err != nil {
			c.cache.Restore(prev)
			return err
		}
	default:
		if err != nil {
			// Keep the optimistic removal and swallow the failure; the
			// local view diverges from the server until the next refetch.
			c.logger.Warn("delete request failed, keeping optimistic removal", "err", err)
			return nil
		}
	}
	c.refetch(ctx)
	return nil
}

// refetch reconciles the cache with server truth after a mutation.
// Best-effort: the mutation already succeeded, a failed refetch only means
// the cache stays on its optimistic view a little longer.
func (c *Client) refetch(ctx context.Context) {
	if _, err := c.FetchTasks(ctx); err != nil {
		c.logger.Debug("post-mutation refetch failed", "err", err)
	}
}
