package crud

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"retail.GO/api"
	"retail.GO/core/cache"
	crudRepo "retail.GO/model/repository/crud"
)

// MySQL error numbers reported as conflicts.
const (
	mysqlDuplicateEntry  = 1062
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
)

// Register mounts create/list/get/update/delete routes for one entity under path.
// name is the entity label used in "not found" messages.
func Register[T any, PT crudRepo.Model[T]](g *echo.Group, db *gorm.DB, lc cache.ListCache, path, name string) {
	h := &handler[T, PT]{
		repo:     crudRepo.NewRepository[T, PT](db),
		cache:    lc,
		resource: path[1:],
		name:     name,
	}
	api.RecordResource(api.Resource{Path: path, Name: name, Table: tableName[T]()})

	g.POST(path, h.create)
	g.POST(path+"/", h.create)
	g.GET(path, h.list)
	g.GET(path+"/", h.list)
	g.GET(path+"/:id", h.get)
	g.PUT(path+"/:id", h.update)
	g.DELETE(path+"/:id", h.delete)
}

func tableName[T any]() string {
	if tn, ok := any(new(T)).(interface{ TableName() string }); ok {
		return tn.TableName()
	}
	return ""
}

type handler[T any, PT crudRepo.Model[T]] struct {
	repo     *crudRepo.Repository[T, PT]
	cache    cache.ListCache
	resource string
	name     string
}

func (h *handler[T, PT]) create(c echo.Context) error {
	logRequest(c)
	obj := PT(new(T))
	if err := c.Bind(obj); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": bindMessage(err)})
	}
	if err := h.repo.Create(c.Request().Context(), obj); err != nil {
		return h.fail(c, err)
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, obj)
}

func (h *handler[T, PT]) list(c echo.Context) error {
	logRequest(c)
	ctx := c.Request().Context()
	if h.cache != nil {
		if body, ok := h.cache.Get(ctx, h.resource); ok {
			c.Response().Header().Set("X-Cache", "HIT")
			return c.JSONBlob(http.StatusOK, body)
		}
	}
	items, err := h.repo.FindAll(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	body, err := json.Marshal(items)
	if err != nil {
		return h.fail(c, err)
	}
	if h.cache != nil {
		h.cache.Set(ctx, h.resource, body)
	}
	return c.JSONBlob(http.StatusOK, body)
}

func (h *handler[T, PT]) get(c echo.Context) error {
	logRequest(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	obj, err := h.repo.FindByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, obj)
}

func (h *handler[T, PT]) update(c echo.Context) error {
	logRequest(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	obj := PT(new(T))
	if err := c.Bind(obj); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": bindMessage(err)})
	}
	updated, err := h.repo.Update(c.Request().Context(), id, obj)
	if err != nil {
		return h.fail(c, err)
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, updated)
}

func (h *handler[T, PT]) delete(c echo.Context) error {
	logRequest(c)
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := h.repo.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	h.invalidate(c)
	return c.JSON(http.StatusOK, echo.Map{"detail": "Deleted"})
}

func (h *handler[T, PT]) invalidate(c echo.Context) {
	if h.cache != nil {
		h.cache.Invalidate(c.Request().Context(), h.resource)
	}
}

func (h *handler[T, PT]) fail(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	switch status {
	case http.StatusNotFound:
		msg = h.name + " not found"
	case http.StatusInternalServerError:
		slog.Error("api: request failed", "method", c.Request().Method, "path", c.Request().URL.Path, "error", err)
	}
	return c.JSON(status, echo.Map{"error": msg})
}

// statusFor maps repository errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusConflict
	}
	var me *mysqlDriver.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry, mysqlRowIsReferenced, mysqlNoReferencedRow:
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if s, ok := he.Message.(string); ok {
			return s
		}
	}
	return err.Error()
}

func logRequest(c echo.Context) {
	slog.Info("api request", "method", c.Request().Method, "path", c.Request().URL.Path)
}
