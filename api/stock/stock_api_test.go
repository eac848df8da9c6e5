package stock

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"retail.GO/model/entity"
	"retail.GO/model/entity/inventory"
)

func setupStock(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "stock.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA busy_timeout=5000")
	if err := entity.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	e := echo.New()
	RegisterStockRoutes(e.Group("/api"), db)
	return e, db
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStoreStock(t *testing.T) {
	e, db := setupStock(t)
	store := entity.Store{Name: "Shop A", Address: "x"}
	db.Create(&store)
	for i, qty := range []int{3, 4} {
		p := entity.Product{Name: "P" + string(rune('a'+i)), Price: decimal.NewFromInt(1), CategoryID: 1}
		db.Create(&p)
		db.Create(&inventory.Inventory{StoreID: store.StoreID, ProductID: p.ProductID, Quantity: qty})
	}

	rec := get(e, "/api/stock/stores/1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}
	var resp StoreStockResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.StoreName != "Shop A" || resp.TotalQuantity != 7 {
		t.Errorf("resp = %+v", resp)
	}
	if rec.Header().Get("X-Request-Duration-ms") == "" {
		t.Error("missing X-Request-Duration-ms header")
	}

	rec = get(e, "/api/stock/stores/1/products/2")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"Quantity":4`) {
		t.Errorf("product stock status = %d body = %s", rec.Code, rec.Body)
	}
}

func TestStoreStock_Errors(t *testing.T) {
	e, _ := setupStock(t)
	if rec := get(e, "/api/stock/stores/42"); rec.Code != http.StatusNotFound {
		t.Errorf("missing store status = %d", rec.Code)
	}
	if rec := get(e, "/api/stock/stores/x"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d", rec.Code)
	}
	if rec := get(e, "/api/stock/stores/1/products/9"); rec.Code != http.StatusNotFound {
		t.Errorf("missing inventory status = %d", rec.Code)
	}
}
