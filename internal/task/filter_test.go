package task

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTasks() []Task {
	return []Task{
		{ID: "1", Title: "Buy milk", Completed: true, UserID: "user-aaa111", UserName: "Ayu Pratiwi"},
		{ID: "2", Title: "Walk the dog", Completed: false, UserID: "user-aaa111", UserName: "Ayu Pratiwi"},
		{ID: "3", Title: "File taxes", Completed: false, UserID: "user-bbb222"},
		{ID: "4", Title: "Buy stamps", Completed: true, UserID: "user-ccc333", UserName: "Bima Santoso"},
		{ID: "5", Title: "Clean garage", Completed: false, UserID: "user-ccc333", UserName: "Bima Santoso"},
	}
}

func TestApply_StatusFilter(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		status string
		want   int
	}{
		{StatusAll, 5},
		{StatusSuccess, 2},
		{StatusPending, 3},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			page := Apply(tasks, Filter{Page: 1, Limit: 10, Status: tt.status})
			assert.Equal(t, tt.want, page.TotalData)
			for _, got := range page.Tasks {
				if tt.status == StatusSuccess {
					assert.True(t, got.Completed)
				}
				if tt.status == StatusPending {
					assert.False(t, got.Completed)
				}
			}
		})
	}
}

func TestApply_Search(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"title substring", "buy", []string{"1", "4"}},
		{"case insensitive", "BUY", []string{"1", "4"}},
		{"owner name", "ayu", []string{"1", "2"}},
		{"truncated owner placeholder", "user-b", []string{"3"}},
		{"status label matches pending tasks", "pending", []string{"2", "3", "5"}},
		{"status label matches completed tasks", "success", []string{"1", "4"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Apply(tasks, Filter{Page: 1, Limit: 10, Status: StatusAll, Search: tt.search})
			ids := make([]string, 0, len(page.Tasks))
			for _, got := range page.Tasks {
				ids = append(ids, got.ID)
			}
			if tt.want == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.want, ids)
			}
		})
	}
}

func TestApply_Pagination(t *testing.T) {
	tasks := make([]Task, 0, 25)
	for i := 0; i < 25; i++ {
		tasks = append(tasks, Task{ID: fmt.Sprintf("t%d", i), Title: fmt.Sprintf("task %d", i)})
	}

	page := Apply(tasks, Filter{Page: 2, Limit: 10, Status: StatusAll})
	assert.Equal(t, 25, page.TotalData)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Tasks, 10)
	assert.Equal(t, "t10", page.Tasks[0].ID)

	last := Apply(tasks, Filter{Page: 3, Limit: 10, Status: StatusAll})
	assert.Len(t, last.Tasks, 5)
}

// A filter change that shrinks the result set clamps the view back to
// page 1 instead of showing an empty out-of-range page.
func TestApply_ClampsOutOfRangePage(t *testing.T) {
	tasks := sampleTasks()

	page := Apply(tasks, Filter{Page: 9, Limit: 2, Status: StatusSuccess})
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Tasks, 2)
}

func TestApply_Invariants(t *testing.T) {
	tasks := sampleTasks()

	for _, status := range []string{StatusAll, StatusSuccess, StatusPending} {
		for _, search := range []string{"", "buy", "pending", "ayu", "zzz"} {
			for page := 1; page <= 4; page++ {
				f := Filter{Page: page, Limit: 2, Status: status, Search: search}
				got := Apply(tasks, f)
				assert.LessOrEqual(t, got.TotalData, len(tasks), "filtered count never exceeds fetched count")
				assert.LessOrEqual(t, len(got.Tasks), f.Limit, "page never exceeds limit")
				assert.GreaterOrEqual(t, got.TotalPages, 1)
			}
		}
	}
}

func TestApply_EmptyList(t *testing.T) {
	page := Apply(nil, DefaultFilter())
	assert.Equal(t, 0, page.TotalData)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Tasks)
}

func TestFilter_Resets(t *testing.T) {
	f := Filter{Page: 7, Limit: 10, Status: StatusAll}

	f = f.WithStatus(StatusPending)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, StatusPending, f.Status)

	f.Page = 4
	f = f.WithSearch("milk")
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, "milk", f.Search)
}
