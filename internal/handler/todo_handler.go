package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// TodoHandler handles todo endpoints.
type TodoHandler struct {
	todoService service.TodoService
}

// NewTodoHandler creates a new todo handler.
func NewTodoHandler(todoService service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// CreateTodoRequest accepts either field name clients have historically
// sent for the title.
type CreateTodoRequest struct {
	Item  string `json:"item"`
	Title string `json:"title"`
}

func (r CreateTodoRequest) item() string {
	if r.Item != "" {
		return r.Item
	}
	return r.Title
}

// MarkTodoRequest carries the DONE/UNDONE verb.
type MarkTodoRequest struct {
	Action model.MarkAction `json:"action"`
}

// BulkDeleteRequest lists the ids to remove.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// List godoc
// @Summary List todos
// @Description Regular users get their own todos, admins get everyone's.
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size, omit for all"
// @Success 200 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return fail(c, http.StatusUnauthorized, "invalid token")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	listing, err := h.todoService.List(c.Request().Context(), user, page, limit)
	if err != nil {
		return h.serviceError(c, err)
	}
	return respond(c, http.StatusOK, listing, "Todos fetched")
}

// Create godoc
// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTodoRequest true "Todo payload"
// @Success 201 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Router /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return fail(c, http.StatusUnauthorized, "invalid token")
	}

	var req CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	todo, err := h.todoService.Create(c.Request().Context(), user, req.item())
	if err != nil {
		return h.serviceError(c, err)
	}
	return respond(c, http.StatusCreated, todo, "Todo created")
}

// Update godoc
// @Summary Rename a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Param request body CreateTodoRequest true "Todo payload"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return fail(c, http.StatusUnauthorized, "invalid token")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid todo id")
	}

	var req CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	todo, err := h.todoService.Update(c.Request().Context(), user, id, req.item())
	if err != nil {
		return h.serviceError(c, err)
	}
	return respond(c, http.StatusOK, todo, "Todo updated")
}

// Mark godoc
// @Summary Mark a todo done or undone
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Param request body MarkTodoRequest true "DONE or UNDONE"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /todos/{id}/mark [put]
func (h *TodoHandler) Mark(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return fail(c, http.StatusUnauthorized, "invalid token")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid todo id")
	}

	var req MarkTodoRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	todo, err := h.todoService.Mark(c.Request().Context(), user, id, req.Action)
	if err != nil {
		return h.serviceError(c, err)
	}
	return respond(c, http.StatusOK, todo, "Todo marked")
}

// Delete godoc
// @Summary Delete a todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Todo ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} Envelope
// @Router /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return fail(c, http.StatusUnauthorized, "invalid token")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid todo id")
	}

	if err := h.todoService.Delete(c.Request().Context(), user, id); err != nil {
		return h.serviceError(c, err)
	}
	return respond(c, http.StatusOK, nil, "Todo deleted")
}

// BulkDelete godoc
// @Summary Delete several todos
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkDeleteRequest true "Todo IDs"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /todos/bulk-delete [post]
func (h *TodoHandler) BulkDelete(c echo.Context) error {
	user := CurrentUser(c)
	if user == nil {
		return fail(c, http.StatusUnauthorized, "invalid token")
	}

	var req BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "at least one id is required")
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid todo id: "+raw)
		}
		ids = append(ids, id)
	}

	deleted, err := h.todoService.BulkDelete(c.Request().Context(), user, ids)
	if err != nil {
		return h.serviceError(c, err)
	}
	return respond(c, http.StatusOK, map[string]int64{"deleted": deleted}, "Todos deleted")
}

func (h *TodoHandler) serviceError(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return fail(c, httpErr.StatusCode, httpErr.Message)
}
