package client

import (
	"context"
	"fmt"
	"net/http"

	"taskboard/internal/task"
)

// Owner is one distinct task owner extracted from the aggregation, used by
// the admin view's user filter.
type Owner struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// FetchAllTasks pulls the full cross-user task list for the admin view.
// The server paginates by page only; combined status+text filtering happens
// client-side in task.Apply.
func (c *Client) FetchAllTasks(ctx context.Context) ([]task.Task, task.ListMeta, error) {
	body, err := c.do(ctx, http.MethodGet, "/todos", nil)
	if err != nil {
		return nil, task.ListMeta{}, err
	}
	tasks, meta, err := c.norm.List(body)
	if err != nil {
		return nil, meta, &APIError{Kind: KindUnknown, Message: fmt.Sprintf("unexpected task list shape: %v", err)}
	}
	return tasks, meta, nil
}

// AdminPage fetches the aggregation and applies the local status/search
// filter and client-side pagination.
func (c *Client) AdminPage(ctx context.Context, f task.Filter) (task.Page, error) {
	tasks, _, err := c.FetchAllTasks(ctx)
	if err != nil {
		return task.Page{}, err
	}
	return task.Apply(tasks, f), nil
}

// AdminOwners returns the distinct owners present in the aggregation, in
// first-seen order. The API exposes no user listing, so owners are derived
// from the tasks themselves.
func (c *Client) AdminOwners(ctx context.Context) ([]Owner, error) {
	tasks, _, err := c.FetchAllTasks(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(tasks))
	owners := make([]Owner, 0, len(tasks))
	for _, t := range tasks {
		if t.UserID == "" || t.UserID == task.UnknownUserID || seen[t.UserID] {
			continue
		}
		seen[t.UserID] = true
		owners = append(owners, Owner{ID: t.UserID, Label: t.OwnerLabel()})
	}
	return owners, nil
}
