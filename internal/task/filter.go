package task

import "strings"

// Status filter values for the admin aggregation view.
const (
	StatusAll     = "all"
	StatusSuccess = "success"
	StatusPending = "pending"
)

// Filter is the ephemeral admin view state: never persisted, page resets to
// 1 whenever status or search changes.
type Filter struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// DefaultFilter returns the initial admin view state.
func DefaultFilter() Filter {
	return Filter{Page: 1, Limit: 20, Status: StatusAll}
}

// WithStatus returns a copy with the status changed and the page reset.
func (f Filter) WithStatus(status string) Filter {
	f.Status = status
	f.Page = 1
	return f
}

// WithSearch returns a copy with the search term changed and the page reset.
func (f Filter) WithSearch(search string) Filter {
	f.Search = search
	f.Page = 1
	return f
}

// Page is one client-side page of the filtered aggregation.
type Page struct {
	Tasks      []Task
	TotalData  int
	TotalPages int
	Page       int
}

// Apply filters and paginates the full aggregated task list locally. The
// backend admin listing does not reliably support combined status+text
// filtering server-side, so the client fetches broadly and narrows here.
// Acceptable at small data volumes; a scalability ceiling at large ones.
func Apply(tasks []Task, f Filter) Page {
	filtered := filterStatus(tasks, f.Status)
	filtered = filterSearch(filtered, f.Search)

	if f.Limit <= 0 {
		f.Limit = DefaultFilter().Limit
	}

	total := len(filtered)
	totalPages := (total + f.Limit - 1) / f.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	// A filter change can strand the view past the last page; clamp back
	// to the first.
	page := f.Page
	if page < 1 || page > totalPages {
		page = 1
	}

	start := (page - 1) * f.Limit
	end := start + f.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Tasks:      filtered[start:end],
		TotalData:  total,
		TotalPages: totalPages,
		Page:       page,
	}
}

func filterStatus(tasks []Task, status string) []Task {
	switch status {
	case StatusSuccess:
		return keep(tasks, func(t Task) bool { return t.Completed })
	case StatusPending:
		return keep(tasks, func(t Task) bool { return !t.Completed })
	default:
		return tasks
	}
}

// filterSearch matches the term case-insensitively against the task title,
// the resolved owner display name, and the status label itself, so typing
// "pending" surfaces every pending task.
func filterSearch(tasks []Task, search string) []Task {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return tasks
	}
	return keep(tasks, func(t Task) bool {
		return strings.Contains(strings.ToLower(t.Title), term) ||
			strings.Contains(strings.ToLower(t.OwnerLabel()), term) ||
			strings.Contains(t.StatusLabel(), term)
	})
}

func keep(tasks []Task, pred func(Task) bool) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}
