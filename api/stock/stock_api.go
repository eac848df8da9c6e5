package stock

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"retail.GO/api"
	"retail.GO/model/entity"
	"retail.GO/model/repository/crud"
	inventoryRepo "retail.GO/model/repository/inventory"
)

func init() {
	api.RegisterModule(RegisterStockRoutes)
}

// StoreStockResponse is the on-hand summary of one store.
type StoreStockResponse struct {
	StoreID       uint   `json:"store_id"`
	StoreName     string `json:"store_name"`
	TotalQuantity int64  `json:"total_quantity"`
}

func RegisterStockRoutes(apiGroup *echo.Group, db *gorm.DB) {
	stores := crud.NewRepository[entity.Store](db)
	inventory := inventoryRepo.NewInventoryRepository(db)
	g := apiGroup.Group("/stock")

	// GET /api/stock/stores/:id – store name and total units on hand
	g.GET("/stores/:id", func(c echo.Context) error {
		start := time.Now()
		storeID, err := parseID(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
		}

		var store *entity.Store
		var total int64
		eg, ctx := errgroup.WithContext(c.Request().Context())
		eg.Go(func() error {
			var err error
			store, err = stores.FindByID(ctx, storeID)
			return err
		})
		eg.Go(func() error {
			var err error
			total, err = inventory.TotalQuantityByStore(ctx, storeID)
			return err
		})
		err = eg.Wait()

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Store not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, StoreStockResponse{StoreID: store.StoreID, StoreName: store.Name, TotalQuantity: total})
	})

	// GET /api/stock/stores/:id/products/:productID – inventory row for one product
	g.GET("/stores/:id/products/:productID", func(c echo.Context) error {
		storeID, err := parseID(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid store id"})
		}
		productID, err := parseID(c.Param("productID"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		item, found, err := inventory.FindByStoreAndProduct(c.Request().Context(), storeID, productID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if !found {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Inventory not found"})
		}
		return c.JSON(http.StatusOK, item)
	})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
