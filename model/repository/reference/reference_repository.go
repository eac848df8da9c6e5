package reference

import (
	"context"

	"gorm.io/gorm"

	"retail.GO/core/cache"
	"retail.GO/model/entity"
)

// Cache tags, one per reference table.
const (
	TagStore    = "store"
	TagCategory = "category"
	TagSupplier = "supplier"
)

// ReferenceRepository resolves stores, categories and suppliers by name,
// creating them on first sight.
type ReferenceRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewReferenceRepository returns a repository; c may be nil to disable memoization.
func NewReferenceRepository(db *gorm.DB, c *cache.Cache) *ReferenceRepository {
	return &ReferenceRepository{db: db, cache: c}
}

// WithDB returns a copy bound to tx, sharing the cache.
func (r *ReferenceRepository) WithDB(tx *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: tx, cache: r.cache}
}

// StoreID returns the id of the store named name. A missing store is created
// with address; created reports whether that happened.
func (r *ReferenceRepository) StoreID(ctx context.Context, name, address string) (uint, bool, error) {
	if id, ok := r.cached(TagStore, name); ok {
		return id, false, nil
	}
	var s entity.Store
	res := r.db.WithContext(ctx).Where(&entity.Store{Name: name}).Limit(1).Find(&s)
	if res.Error != nil {
		return 0, false, res.Error
	}
	created := false
	if res.RowsAffected == 0 {
		s = entity.Store{Name: name, Address: address}
		if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
			return 0, false, err
		}
		created = true
	}
	r.remember(TagStore, name, s.StoreID)
	return s.StoreID, created, nil
}

// CategoryID returns the id of the category named name, creating it if needed.
func (r *ReferenceRepository) CategoryID(ctx context.Context, name string) (uint, bool, error) {
	if id, ok := r.cached(TagCategory, name); ok {
		return id, false, nil
	}
	var c entity.ProductCategory
	res := r.db.WithContext(ctx).Where(&entity.ProductCategory{Name: name}).Limit(1).Find(&c)
	if res.Error != nil {
		return 0, false, res.Error
	}
	created := false
	if res.RowsAffected == 0 {
		c = entity.ProductCategory{Name: name}
		if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
			return 0, false, err
		}
		created = true
	}
	r.remember(TagCategory, name, c.CategoryID)
	return c.CategoryID, created, nil
}

// SupplierID returns the id of the supplier named name, creating it if needed.
func (r *ReferenceRepository) SupplierID(ctx context.Context, name string) (uint, bool, error) {
	if id, ok := r.cached(TagSupplier, name); ok {
		return id, false, nil
	}
	var s entity.Supplier
	res := r.db.WithContext(ctx).Where(&entity.Supplier{Name: name}).Limit(1).Find(&s)
	if res.Error != nil {
		return 0, false, res.Error
	}
	created := false
	if res.RowsAffected == 0 {
		s = entity.Supplier{Name: name}
		if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
			return 0, false, err
		}
		created = true
	}
	r.remember(TagSupplier, name, s.SupplierID)
	return s.SupplierID, created, nil
}

// Forget drops memoized ids, e.g. after a rolled back transaction created them.
func (r *ReferenceRepository) Forget(tags ...string) {
	if r.cache == nil {
		return
	}
	for _, tag := range tags {
		r.cache.DeleteByTag(tag)
	}
}

func (r *ReferenceRepository) cached(tag, name string) (uint, bool) {
	if r.cache == nil {
		return 0, false
	}
	v, ok := r.cache.GetN(tag, name)
	if !ok {
		return 0, false
	}
	return v.(uint), true
}

func (r *ReferenceRepository) remember(tag, name string, id uint) {
	if r.cache == nil {
		return
	}
	r.cache.SetN([]interface{}{tag, name}, id, 0, tag)
}
