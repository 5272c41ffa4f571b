package task

import "sync"

// DeletePolicy names how the client reconciles a failed delete with the
// optimistic removal it already applied. Making the policy an explicit
// value keeps the trade-off visible at the call site instead of buried in
// an error handler.
type DeletePolicy int

const (
	// DeletePolicyOptimisticNoRollback keeps the optimistic removal and
	// reports success even when the server call fails. The local view can
	// diverge from server state until the next full refetch; the product
	// accepts that in exchange for an always-instant delete.
	DeletePolicyOptimisticNoRollback DeletePolicy = iota
	// DeletePolicyRollbackOnError restores the snapshot and surfaces the
	// failure.
	DeletePolicyRollbackOnError
)

// Cache is the single shared in-memory task store for one client session.
// Optimistic mutations bump a generation counter; a list refetch started
// before the bump is considered stale and its write is discarded, so a slow
// response cannot resurrect tasks the user already removed.
type Cache struct {
	mu    sync.Mutex
	tasks []Task
	gen   uint64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Snapshot returns a copy of the cached tasks.
func (c *Cache) Snapshot() []Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Task(nil), c.tasks...)
}

// Len returns the number of cached tasks.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// Contains reports whether a task with the given id is cached.
func (c *Cache) Contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Generation returns the current mutation generation. Callers record it
// before starting a list fetch and pass it back to ReplaceIfCurrent.
func (c *Cache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// ReplaceIfCurrent installs a fetched list unless an optimistic mutation
// landed after the fetch began. Returns false when the write was discarded
// as stale.
func (c *Cache) ReplaceIfCurrent(gen uint64, tasks []Task) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.tasks = append([]Task(nil), tasks...)
	return true
}

// Replace installs a list unconditionally. Used by post-mutation refetches
// that reconcile with server truth.
func (c *Cache) Replace(tasks []Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = append([]Task(nil), tasks...)
	c.gen++
}

// Remove optimistically drops the given ids and returns the prior snapshot
// for a potential rollback.
func (c *Cache) Remove(ids ...string) []Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := append([]Task(nil), c.tasks...)
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := c.tasks[:0]
	for _, t := range c.tasks {
		if !drop[t.ID] {
			kept = append(kept, t)
		}
	}
	c.tasks = kept
	c.gen++
	return prev
}

// Restore reinstates a snapshot taken before an optimistic mutation.
func (c *Cache) Restore(tasks []Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = append([]Task(nil), tasks...)
	c.gen++
}

// SetCompleted optimistically flips the completion flag on one task.
// Returns the prior snapshot for rollback and whether the id was found.
func (c *Cache) SetCompleted(id string, completed bool) ([]Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := append([]Task(nil), c.tasks...)
	found := false
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i].Completed = completed
			found = true
			break
		}
	}
	if found {
		c.gen++
	}
	return prev, found
}

// Upsert replaces a cached task by id or appends it when absent.
func (c *Cache) Upsert(t Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.tasks {
		if c.tasks[i].ID == t.ID {
			c.tasks[i] = t
			c.gen++
			return
		}
	}
	c.tasks = append(c.tasks, t)
	c.gen++
}
