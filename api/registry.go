package api

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"retail.GO/core/registry"
)

var mu sync.Mutex

// ModuleFunc registers routes on the /api group with DB access.
type ModuleFunc func(g *echo.Group, db *gorm.DB)

// RouteFunc registers public routes on the root Echo instance (health, version).
type RouteFunc func(e *echo.Echo, db *gorm.DB)

// Resource describes one table exposed as a CRUD resource under /api.
type Resource struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Table string `json:"table"`
}

func getList[T any](key string) []T {
	if v, ok := registry.GlobalRegistry.GetGlobal(key); ok && v != nil {
		return v.([]T)
	}
	return nil
}

func appendLocked[T any](key, what string, item T) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(key) {
		panic("api/registry: " + what + " locked (register only during init)")
	}
	registry.GlobalRegistry.SetGlobal(key, append(getList[T](key), item))
}

// RegisterModule registers an /api module. Call from init() in API packages.
func RegisterModule(fn ModuleFunc) {
	appendLocked(registry.KeyRegistryAPI, "API modules", fn)
}

// RegisterRoute registers a root-level route module. Call from init().
func RegisterRoute(fn RouteFunc) {
	appendLocked(registry.KeyRegistryRoutes, "routes", fn)
}

// RegisterGET is shorthand for registering a simple GET route on root.
func RegisterGET(path string, handler echo.HandlerFunc) {
	RegisterRoute(func(e *echo.Echo, _ *gorm.DB) {
		e.GET(path, handler)
	})
}

// ApplyModules calls all registered /api modules, then mounts GET /resources
// listing what they recorded. Locks the module registry.
func ApplyModules(g *echo.Group, db *gorm.DB) {
	for _, fn := range getList[ModuleFunc](registry.KeyRegistryAPI) {
		fn(g, db)
	}
	g.GET("/resources", func(c echo.Context) error {
		return c.JSON(http.StatusOK, Resources())
	})
	registry.GlobalRegistry.Lock(registry.KeyRegistryAPI)
}

// ApplyRoutes calls all registered root-level routes. Locks the route registry.
func ApplyRoutes(e *echo.Echo, db *gorm.DB) {
	for _, fn := range getList[RouteFunc](registry.KeyRegistryRoutes) {
		fn(e, db)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)
}

// RecordResource adds r to the catalogue, replacing an entry with the same path.
// Modules call it while being applied.
func RecordResource(r Resource) {
	mu.Lock()
	defer mu.Unlock()
	list := getList[Resource](registry.KeyRegistryResources)
	out := make([]Resource, 0, len(list)+1)
	for _, existing := range list {
		if existing.Path != r.Path {
			out = append(out, existing)
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryResources, append(out, r))
}

// Resources returns the recorded resources in registration order.
func Resources() []Resource {
	mu.Lock()
	defer mu.Unlock()
	list := getList[Resource](registry.KeyRegistryResources)
	out := make([]Resource, len(list))
	copy(out, list)
	return out
}
