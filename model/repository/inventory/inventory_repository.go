package inventory

import (
	"context"

	"gorm.io/gorm"

	inventoryEntity "retail.GO/model/entity/inventory"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// WithDB returns a repository bound to tx.
func (r *InventoryRepository) WithDB(tx *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: tx}
}

// FindByIdentity returns the oldest inventory row in storeID whose product has
// the given name and category. found is false when there is none.
func (r *InventoryRepository) FindByIdentity(ctx context.Context, storeID uint, name string, categoryID uint) (*inventoryEntity.Inventory, bool, error) {
	var item inventoryEntity.Inventory
	res := r.db.WithContext(ctx).
		Model(&inventoryEntity.Inventory{}).
		Select("Inventory.*").
		Joins("JOIN Product ON Product.ProductID = Inventory.ProductID").
		Where("Inventory.StoreID = ? AND Product.Name = ? AND Product.CategoryID = ?", storeID, name, categoryID).
		Order("Inventory.InventoryID").
		Limit(1).
		Find(&item)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &item, res.RowsAffected > 0, nil
}

// FindByStoreAndProduct returns the row keyed by (storeID, productID).
func (r *InventoryRepository) FindByStoreAndProduct(ctx context.Context, storeID, productID uint) (*inventoryEntity.Inventory, bool, error) {
	var item inventoryEntity.Inventory
	res := r.db.WithContext(ctx).
		Where("StoreID = ? AND ProductID = ?", storeID, productID).
		Limit(1).
		Find(&item)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &item, res.RowsAffected > 0, nil
}

// AddQuantity increments a row in place.
func (r *InventoryRepository) AddQuantity(ctx context.Context, inventoryID uint, qty int) error {
	return r.db.WithContext(ctx).
		Model(&inventoryEntity.Inventory{}).
		Where("InventoryID = ?", inventoryID).
		UpdateColumn("Quantity", gorm.Expr("Quantity + ?", qty)).Error
}

func (r *InventoryRepository) Create(ctx context.Context, item *inventoryEntity.Inventory) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// TotalQuantityByStore sums quantity across every product in a store.
func (r *InventoryRepository) TotalQuantityByStore(ctx context.Context, storeID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&inventoryEntity.Inventory{}).
		Select("COALESCE(SUM(Quantity), 0)").
		Where("StoreID = ?", storeID).
		Scan(&total).Error
	return total, err
}
