package etl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"retail.GO/model/entity"
	inventoryEntity "retail.GO/model/entity/inventory"
)

var processingDay = time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return processingDay }

func TestLoad_MergesInventoryByIdentity(t *testing.T) {
	db := etlDB(t)
	records := []Record{
		{StoreName: "Shop A", ProductName: "Widget", Category: "Tools", Price: 9.99, Quantity: 3, Supplier: "Acme"},
		{StoreName: "Shop A", ProductName: "Widget", Category: "Tools", Price: 9.99, Quantity: 2, Supplier: "Acme"},
	}
	res, err := NewLoader(db, LoadOptions{Now: fixedNow}).Load(context.Background(), records)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := LoadResult{Loaded: 2, StoresCreated: 1, CategoriesCreated: 1, SuppliersCreated: 1,
		ProductsCreated: 2, InventoryCreated: 1, InventoryUpdated: 1, Supplies: 2}
	if *res != want {
		t.Errorf("result = %+v, want %+v", *res, want)
	}

	if n := count(t, db, &entity.Store{}); n != 1 {
		t.Errorf("stores = %d, want 1", n)
	}
	if n := count(t, db, &entity.ProductCategory{}); n != 1 {
		t.Errorf("categories = %d, want 1", n)
	}
	if n := count(t, db, &entity.Supplier{}); n != 1 {
		t.Errorf("suppliers = %d, want 1", n)
	}
	if n := count(t, db, &entity.Product{}); n != 2 {
		t.Errorf("products = %d, want 2", n)
	}

	var store entity.Store
	db.First(&store)
	if store.Address != "Address not specified" {
		t.Errorf("Address = %q", store.Address)
	}

	var inv []inventoryEntity.Inventory
	db.Find(&inv)
	if len(inv) != 1 || inv[0].Quantity != 5 || inv[0].StoreID != store.StoreID {
		t.Errorf("inventory = %+v, want one row with quantity 5", inv)
	}

	var supplies []inventoryEntity.Supply
	db.Order("SupplyID").Find(&supplies)
	if len(supplies) != 2 {
		t.Fatalf("supplies = %d, want 2", len(supplies))
	}
	for _, s := range supplies {
		if got := time.Time(s.SupplyDate).Format("2006-01-02"); got != "2024-05-01" {
			t.Errorf("SupplyDate = %s, want 2024-05-01", got)
		}
	}
	if supplies[0].Quantity != 3 || supplies[1].Quantity != 2 || supplies[0].ProductID == supplies[1].ProductID {
		t.Errorf("supplies = %+v", supplies)
	}
}

func TestLoad_ExistingReferencesReused(t *testing.T) {
	db := etlDB(t)
	db.Create(&entity.Store{Name: "Main", Address: "1 High st"})
	db.Create(&entity.ProductCategory{Name: "Food"})

	res, err := NewLoader(db, LoadOptions{Now: fixedNow, StoreAddress: "unused"}).Load(context.Background(), []Record{
		{StoreName: "Main", ProductName: "Bread", Category: "Food", Price: 2.5, Quantity: 10, Supplier: "Bakery"},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.StoresCreated != 0 || res.CategoriesCreated != 0 || res.SuppliersCreated != 1 {
		t.Errorf("result = %+v", res)
	}
	var store entity.Store
	db.First(&store)
	if store.Address != "1 High st" {
		t.Errorf("Address = %q, want original", store.Address)
	}
}

func TestLoad_ReuseProducts(t *testing.T) {
	db := etlDB(t)
	records := []Record{
		{StoreName: "A", ProductName: "Widget", Category: "Tools", Price: 9.99, Quantity: 1, Supplier: "S"},
		{StoreName: "A", ProductName: "Widget", Category: "Tools", Price: 9.99, Quantity: 4, Supplier: "S"},
		{StoreName: "A", ProductName: "Widget", Category: "Tools", Price: 10.99, Quantity: 1, Supplier: "S"},
	}
	res, err := NewLoader(db, LoadOptions{Now: fixedNow, ReuseProducts: true}).Load(context.Background(), records)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if res.ProductsCreated != 2 || res.ProductsReused != 1 {
		t.Errorf("result = %+v", res)
	}

	var p entity.Product
	db.Order("ProductID").First(&p)
	if !p.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("Price = %s", p.Price)
	}
	var inv inventoryEntity.Inventory
	db.First(&inv)
	if inv.Quantity != 6 {
		t.Errorf("Quantity = %d, want 6", inv.Quantity)
	}
}

func TestLoad_PersistenceErrorStopsPass(t *testing.T) {
	db := etlDB(t)
	records := []Record{
		{StoreName: "A", ProductName: "W1", Category: "C", Price: 1, Quantity: 1, Supplier: "S"},
		{StoreName: "A", ProductName: "W2", Category: "C", Price: 1, Quantity: 1, Supplier: "S"},
	}
	if err := db.Migrator().DropTable(&inventoryEntity.Supply{}); err != nil {
		t.Fatalf("drop: %v", err)
	}

	res, err := NewLoader(db, LoadOptions{Now: fixedNow}).Load(context.Background(), records)
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *PersistenceError", err)
	}
	if pe.Index != 0 || pe.Record.ProductName != "W1" {
		t.Errorf("PersistenceError = %+v", pe)
	}
	if res.Loaded != 0 {
		t.Errorf("Loaded = %d, want 0", res.Loaded)
	}
	// The failed record's transaction rolled back as a unit.
	if n := count(t, db, &entity.Product{}); n != 0 {
		t.Errorf("products = %d, want 0", n)
	}
	if n := count(t, db, &entity.Store{}); n != 0 {
		t.Errorf("stores = %d, want 0", n)
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	db := etlDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLoader(db, LoadOptions{}).Load(ctx, []Record{{StoreName: "A", ProductName: "W", Category: "C", Price: 1, Supplier: "S"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if n := count(t, db, &entity.Store{}); n != 0 {
		t.Errorf("stores = %d, want 0", n)
	}
}

func TestLoad_Empty(t *testing.T) {
	res, err := NewLoader(etlDB(t), LoadOptions{}).Load(context.Background(), nil)
	if err != nil || res.Loaded != 0 {
		t.Errorf("Load(nil) = (%+v, %v)", res, err)
	}
}

