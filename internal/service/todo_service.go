package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard/internal/cache"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const (
	todoListCacheTTL = 30 * time.Second
	maxItemLen       = 200
)

// ParseUserID parses the user id claim carried by tokens.
func ParseUserID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// TodoListing is a todo page plus the counters the envelope reports.
type TodoListing struct {
	Todos     []model.Todo `json:"entries"`
	TotalData int64        `json:"totalData"`
	TotalPage int          `json:"totalPage"`
}

// TodoService handles todo operations. Regular users are scoped to their
// own todos; admins see and manage everyone's.
type TodoService interface {
	Create(ctx context.Context, user *model.User, item string) (*model.Todo, error)
	List(ctx context.Context, user *model.User, page, limit int) (*TodoListing, error)
	Update(ctx context.Context, user *model.User, id uuid.UUID, item string) (*model.Todo, error)
	Mark(ctx context.Context, user *model.User, id uuid.UUID, action model.MarkAction) (*model.Todo, error)
	Delete(ctx context.Context, user *model.User, id uuid.UUID) error
	BulkDelete(ctx context.Context, user *model.User, ids []uuid.UUID) (int64, error)
}

type todoService struct {
	repo  repository.TodoRepository
	cache *cache.Client
}

// NewTodoService creates a new todo service.
func NewTodoService(repo repository.TodoRepository, cache *cache.Client) TodoService {
	return &todoService{repo: repo, cache: cache}
}

func listCacheKey(user *model.User) string {
	if user.IsAdmin() {
		return "todos:all"
	}
	return fmt.Sprintf("todos:user:%s", user.ID)
}

// invalidate drops the cached listings a mutation can affect: the owner's
// list and the admin aggregation.
func (s *todoService) invalidate(ctx context.Context, ownerID uuid.UUID) {
	_ = s.cache.Delete(ctx, fmt.Sprintf("todos:user:%s", ownerID))
	_ = s.cache.Delete(ctx, "todos:all")
}

// Create stores a new todo for the user.
func (s *todoService) Create(ctx context.Context, user *model.User, item string) (*model.Todo, error) {
	item = strings.TrimSpace(item)
	if item == "" || len(item) > maxItemLen {
		return nil, apperrors.ErrInvalidTitle
	}

	todo := &model.Todo{
		Item:   item,
		UserID: user.ID,
	}
	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	s.invalidate(ctx, user.ID)
	return todo, nil
}

// List returns a page of todos. Unpaginated requests are served from the
// redis cache when possible, the same advisory-cache pattern used for the
// listing counters.
func (s *todoService) List(ctx context.Context, user *model.User, page, limit int) (*TodoListing, error) {
	unpaginated := limit <= 0
	key := listCacheKey(user)

	if unpaginated {
		var cached TodoListing
		if s.cache.GetJSON(ctx, key, &cached) {
			return &cached, nil
		}
	}

	q := repository.ListQuery{Page: page, Limit: limit}
	if !user.IsAdmin() {
		id := user.ID
		q.UserID = &id
	}

	todos, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	totalPage := 1
	if limit > 0 {
		totalPage = int((total + int64(limit) - 1) / int64(limit))
		if totalPage == 0 {
			totalPage = 1
		}
	}

	listing := &TodoListing{Todos: todos, TotalData: total, TotalPage: totalPage}
	if unpaginated {
		s.cache.SetJSON(ctx, key, listing, todoListCacheTTL)
	}
	return listing, nil
}

// Update renames a todo, enforcing ownership for non-admins.
func (s *todoService) Update(ctx context.Context, user *model.User, id uuid.UUID, item string) (*model.Todo, error) {
	item = strings.TrimSpace(item)
	if item == "" || len(item) > maxItemLen {
		return nil, apperrors.ErrInvalidTitle
	}

	todo, err := s.authorized(ctx, user, id)
	if err != nil {
		return nil, err
	}

	todo.Item = item
	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}

	s.invalidate(ctx, todo.UserID)
	return todo, nil
}

// Mark flips a todo done or undone.
func (s *todoService) Mark(ctx context.Context, user *model.User, id uuid.UUID, action model.MarkAction) (*model.Todo, error) {
	if !action.Valid() {
		return nil, apperrors.ErrInvalidAction
	}

	todo, err := s.authorized(ctx, user, id)
	if err != nil {
		return nil, err
	}

	todo.IsDone = action == model.MarkDone
	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("mark todo: %w", err)
	}

	s.invalidate(ctx, todo.UserID)
	return todo, nil
}

// Delete removes a todo.
func (s *todoService) Delete(ctx context.Context, user *model.User, id uuid.UUID) error {
	todo, err := s.authorized(ctx, user, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrTodoNotFound
		}
		return fmt.Errorf("delete todo: %w", err)
	}

	s.invalidate(ctx, todo.UserID)
	return nil
}

// BulkDelete removes the caller's todos matching ids in one statement and
// reports how many existed. Ids that are already gone or owned by someone
// else are skipped rather than failing the batch.
func (s *todoService) BulkDelete(ctx context.Context, user *model.User, ids []uuid.UUID) (int64, error) {
	deleted, err := s.repo.DeleteByIDs(ctx, user.ID, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk delete todos: %w", err)
	}

	s.invalidate(ctx, user.ID)
	return deleted, nil
}

// authorized loads a todo and checks the caller may act on it.
func (s *todoService) authorized(ctx context.Context, user *model.User, id uuid.UUID) (*model.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	if !user.IsAdmin() && todo.UserID != user.ID {
		return nil, apperrors.ErrForbidden
	}
	return todo, nil
}
