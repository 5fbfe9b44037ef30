package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/user_service/internal/middleware"
	"github.com/Skotchmaster/user_service/internal/models"
	"github.com/Skotchmaster/user_service/internal/mykafka"
	"github.com/Skotchmaster/user_service/internal/permissions"
	"github.com/Skotchmaster/user_service/internal/search"
	"github.com/Skotchmaster/user_service/internal/service"
	"github.com/Skotchmaster/user_service/internal/transport"
	"github.com/Skotchmaster/user_service/pkg/logging"
)

type UserHTTP struct {
	Svc      *service.UserService
	Index    *search.Index
	Producer *mykafka.Producer

	readCheck   permissions.Evaluator
	editCheck   permissions.Evaluator
	deleteCheck permissions.Evaluator
}

func NewUserHTTP(svc *service.UserService, index *search.Index, producer *mykafka.Producer) *UserHTTP {
	return &UserHTTP{
		Svc:         svc,
		Index:       index,
		Producer:    producer,
		readCheck:   permissions.Evaluator{Required: permissions.Read},
		editCheck:   permissions.Evaluator{Required: permissions.Edit},
		deleteCheck: permissions.Evaluator{Required: permissions.Delete},
	}
}

func (h *UserHTTP) Me(c echo.Context) error {
	principal := middleware.Principal(c)
	if principal == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
	}
	return c.JSON(http.StatusOK, transport.ToUserDetailResponse(principal))
}

func (h *UserHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	principal := middleware.Principal(c)

	users, err := h.Svc.ListFor(ctx, principal)
	if err != nil {
		return httpError(err, http.StatusNotFound)
	}

	return c.JSON(http.StatusOK, transport.ToUserDetailResponses(users))
}

func (h *UserHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users_add")

	var req transport.AddUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_user_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("add_user_error", "status", 422, "error", err)
		return httpError(err, http.StatusBadRequest)
	}

	user, err := h.Svc.Add(ctx, req.Email, req.Username, req.Password, req.IsAdmin, req.IsActive)
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}

	h.reindex(c, user)

	return c.JSON(http.StatusCreated, transport.ToUserDetailResponse(user))
}

func (h *UserHTTP) GetByID(c echo.Context) error {
	ctx := c.Request().Context()
	principal := middleware.Principal(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Get(ctx, id)
	if err != nil {
		return httpError(err, http.StatusNotFound)
	}

	if err := h.readCheck.AssertAccess(principal, user); err != nil {
		return httpError(err, http.StatusNotFound)
	}

	return c.JSON(http.StatusOK, transport.ToUserDetailResponse(user))
}

func (h *UserHTTP) Update(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users_update")
	principal := middleware.Principal(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_user_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := req.Validate(); err != nil {
		l.Warn("update_user_error", "status", 422, "error", err)
		return httpError(err, http.StatusBadRequest)
	}

	user, err := h.Svc.Get(ctx, id)
	if err != nil {
		return httpError(err, http.StatusNotFound)
	}

	if err := h.editCheck.AssertAccess(principal, user); err != nil {
		return httpError(err, http.StatusNotFound)
	}

	updated, err := h.Svc.Update(ctx, id, service.UpdateFields{
		Email:    req.Email,
		Username: req.Username,
		IsAdmin:  req.IsAdmin,
		IsActive: req.IsActive,
	})
	if err != nil {
		return httpError(err, http.StatusNotFound)
	}

	h.reindex(c, updated)

	return c.JSON(http.StatusOK, transport.ToUserResponse(updated))
}

func (h *UserHTTP) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	principal := middleware.Principal(c)

	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Get(ctx, id)
	if err != nil {
		return httpError(err, http.StatusNotFound)
	}

	if err := h.deleteCheck.AssertAccess(principal, user); err != nil {
		return httpError(err, http.StatusNotFound)
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return httpError(err, http.StatusNotFound)
	}

	if h.Index != nil {
		if err := h.Index.DeleteUser(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_deindex_error", "user_id", id, "error", err)
		}
	}

	h.publish(c, user, "user_deleted")

	return c.JSON(http.StatusOK, true)
}

func (h *UserHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	principal := middleware.Principal(c)

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	from, size := paginate(page, size)

	total, docs, err := h.Index.Search(ctx, q, from, size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}

	// Same ownership rule as listing, applied per result.
	hits := make([]models.User, len(docs))
	for i, d := range docs {
		hits[i] = models.User{ID: d.ID}
	}
	if err := h.readCheck.AssertAccessAll(principal, hits); err != nil {
		return httpError(err, http.StatusNotFound)
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "users": docs})
}

func (h *UserHTTP) publish(c echo.Context, user *models.User, eventType string) {
	if h.Producer == nil {
		return
	}

	event := map[string]interface{}{
		"type":     eventType,
		"user_id":  user.ID,
		"username": user.Username,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Producer.PublishEvent(ctx, user.UUID.String(), event); err != nil {
		logging.FromContext(c.Request().Context()).Warn("kafka_publish_error", "error", err)
	}
}

// reindex is best-effort, like the event stream: search lag never fails a write.
func (h *UserHTTP) reindex(c echo.Context, user *models.User) {
	if h.Index == nil {
		return
	}
	ctx := c.Request().Context()
	if err := h.Index.IndexUser(ctx, user); err != nil {
		logging.FromContext(ctx).Warn("search_index_error", "user_id", user.ID, "error", err)
	}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return uint(id), nil
}

func paginate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 10
	}
	return (page - 1) * size, size
}
