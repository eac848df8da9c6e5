package etl

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"retail.GO/config"
	"retail.GO/core/cache"
	"retail.GO/model/entity"
	inventoryEntity "retail.GO/model/entity/inventory"
	"retail.GO/model/repository/inventory"
	"retail.GO/model/repository/reference"
)

// LoadOptions configures a Loader.
type LoadOptions struct {
	// StoreAddress is stored for stores created during the pass.
	StoreAddress string
	// ReuseProducts reuses an existing product with equal name, price and category
	// instead of inserting a new one.
	ReuseProducts bool
	// Now supplies the processing date. Defaults to time.Now.
	Now func() time.Time
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// LoadResult counts what one pass wrote.
type LoadResult struct {
	Loaded            int `json:"loaded"`
	StoresCreated     int `json:"stores_created"`
	CategoriesCreated int `json:"categories_created"`
	SuppliersCreated  int `json:"suppliers_created"`
	ProductsCreated   int `json:"products_created"`
	ProductsReused    int `json:"products_reused"`
	InventoryCreated  int `json:"inventory_created"`
	InventoryUpdated  int `json:"inventory_updated"`
	Supplies          int `json:"supplies"`
}

// Loader writes validated records to the relational store, one transaction per record.
type Loader struct {
	db   *gorm.DB
	opts LoadOptions
	refs *reference.ReferenceRepository
	inv  *inventory.InventoryRepository
	log  *slog.Logger
}

func NewLoader(db *gorm.DB, opts LoadOptions) *Loader {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.StoreAddress == "" {
		opts.StoreAddress = config.DefaultStoreAddress
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Loader{
		db:   db,
		opts: opts,
		refs: reference.NewReferenceRepository(db, cache.New()),
		inv:  inventory.NewInventoryRepository(db),
		log:  log,
	}
}

// Load persists records in order. The first failure stops the pass; records
// before it stay committed and are counted in the returned result.
func (l *Loader) Load(ctx context.Context, records []Record) (*LoadResult, error) {
	res := &LoadResult{}
	now := l.opts.Now()
	supplyDate := datatypes.Date(time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()))

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, &PersistenceError{Index: i, Record: rec, Err: err}
		}
		var step LoadResult
		err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return l.loadRecord(ctx, tx, rec, supplyDate, &step)
		})
		if err != nil {
			l.refs.Forget(reference.TagStore, reference.TagCategory, reference.TagSupplier)
			l.log.Error("load: record failed", "index", i, "store", rec.StoreName, "product", rec.ProductName, "error", err)
			return res, &PersistenceError{Index: i, Record: rec, Err: err}
		}
		res.add(step)
		l.log.Debug("load: record committed", "index", i, "store", rec.StoreName, "product", rec.ProductName)
	}
	l.log.Info("load: done", "loaded", res.Loaded)
	return res, nil
}

func (l *Loader) loadRecord(ctx context.Context, tx *gorm.DB, rec Record, supplyDate datatypes.Date, step *LoadResult) error {
	refs := l.refs.WithDB(tx)
	inv := l.inv.WithDB(tx)

	storeID, created, err := refs.StoreID(ctx, rec.StoreName, l.opts.StoreAddress)
	if err != nil {
		return err
	}
	if created {
		step.StoresCreated++
	}
	categoryID, created, err := refs.CategoryID(ctx, rec.Category)
	if err != nil {
		return err
	}
	if created {
		step.CategoriesCreated++
	}
	supplierID, created, err := refs.SupplierID(ctx, rec.Supplier)
	if err != nil {
		return err
	}
	if created {
		step.SuppliersCreated++
	}

	price := decimal.NewFromFloat(rec.Price).Round(2)
	product, reused, err := l.product(ctx, tx, rec.ProductName, price, categoryID)
	if err != nil {
		return err
	}
	if reused {
		step.ProductsReused++
	} else {
		step.ProductsCreated++
	}

	item, found, err := inv.FindByIdentity(ctx, storeID, rec.ProductName, categoryID)
	if err != nil {
		return err
	}
	if found {
		if err := inv.AddQuantity(ctx, item.InventoryID, rec.Quantity); err != nil {
			return err
		}
		step.InventoryUpdated++
	} else {
		if err := inv.Create(ctx, &inventoryEntity.Inventory{StoreID: storeID, ProductID: product.ProductID, Quantity: rec.Quantity}); err != nil {
			return err
		}
		step.InventoryCreated++
	}

	supply := inventoryEntity.Supply{
		SupplierID: supplierID,
		ProductID:  product.ProductID,
		SupplyDate: supplyDate,
		Quantity:   rec.Quantity,
	}
	if err := tx.WithContext(ctx).Create(&supply).Error; err != nil {
		return err
	}
	step.Supplies++
	step.Loaded++
	return nil
}

func (l *Loader) product(ctx context.Context, tx *gorm.DB, name string, price decimal.Decimal, categoryID uint) (*entity.Product, bool, error) {
	var p entity.Product
	if l.opts.ReuseProducts {
		res := tx.WithContext(ctx).
			Where("Name = ? AND CategoryID = ? AND Price = ?", name, categoryID, price).
			Order("ProductID").
			Limit(1).
			Find(&p)
		if res.Error != nil {
			return nil, false, res.Error
		}
		if res.RowsAffected > 0 {
			return &p, true, nil
		}
	}
	p = entity.Product{Name: name, Price: price, CategoryID: categoryID}
	if err := tx.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, false, err
	}
	return &p, false, nil
}

func (r *LoadResult) add(o LoadResult) {
	r.Loaded += o.Loaded
	r.StoresCreated += o.StoresCreated
	r.CategoriesCreated += o.CategoriesCreated
	r.SuppliersCreated += o.SuppliersCreated
	r.ProductsCreated += o.ProductsCreated
	r.ProductsReused += o.ProductsReused
	r.InventoryCreated += o.InventoryCreated
	r.InventoryUpdated += o.InventoryUpdated
	r.Supplies += o.Supplies
}
