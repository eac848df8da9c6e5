package crud

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"retail.GO/api"
	"retail.GO/config"
	"retail.GO/core/cache"
	"retail.GO/model/entity"
	"retail.GO/model/entity/inventory"
)

func init() {
	api.RegisterModule(RegisterCrudRoutes)
}

// RegisterCrudRoutes mounts every table resource on the /api group.
func RegisterCrudRoutes(apiGroup *echo.Group, db *gorm.DB) {
	lc := cache.NewRedisListCache(config.RedisClient, config.LoadAppConfig().CacheTTL)
	RegisterResources(apiGroup, db, lc)
}

// RegisterResources mounts the table resources using lc for list responses.
func RegisterResources(g *echo.Group, db *gorm.DB, lc cache.ListCache) {
	Register[entity.ProductCategory](g, db, lc, "/categories", "Category")
	Register[entity.EmployeePosition](g, db, lc, "/positions", "Position")
	Register[entity.Store](g, db, lc, "/stores", "Store")
	Register[entity.Employee](g, db, lc, "/employees", "Employee")
	Register[entity.Customer](g, db, lc, "/customers", "Customer")
	Register[entity.Product](g, db, lc, "/products", "Product")
	Register[entity.Sale](g, db, lc, "/sales", "Sale")
	Register[entity.SaleItem](g, db, lc, "/sale-items", "SaleItem")
	Register[entity.Supplier](g, db, lc, "/suppliers", "Supplier")
	Register[inventory.Supply](g, db, lc, "/supplies", "Supply")
	Register[inventory.Inventory](g, db, lc, "/inventory", "Inventory")
}
