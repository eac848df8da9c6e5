package crud

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Model is satisfied by pointers to entities with a single uint surrogate key.
type Model[T any] interface {
	*T
	PrimaryKey() uint
	SetPrimaryKey(uint)
}

// Repository maps create/read/update/delete onto gorm for one entity type.
type Repository[T any, PT Model[T]] struct {
	db *gorm.DB
}

func NewRepository[T any, PT Model[T]](db *gorm.DB) *Repository[T, PT] {
	return &Repository[T, PT]{db: db}
}

// FindAll returns every row ordered by primary key.
func (r *Repository[T, PT]) FindAll(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}}).
		Find(&items).Error
	return items, err
}

// FindByID returns gorm.ErrRecordNotFound when id does not exist.
func (r *Repository[T, PT]) FindByID(ctx context.Context, id uint) (PT, error) {
	obj := PT(new(T))
	if err := r.db.WithContext(ctx).First(obj, id).Error; err != nil {
		return nil, err
	}
	return obj, nil
}

// Create inserts obj; the store assigns the key.
func (r *Repository[T, PT]) Create(ctx context.Context, obj PT) error {
	obj.SetPrimaryKey(0)
	return r.db.WithContext(ctx).Create(obj).Error
}

// Update replaces every non-key column of row id with obj's values.
func (r *Repository[T, PT]) Update(ctx context.Context, id uint, obj PT) (PT, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return nil, err
	}
	obj.SetPrimaryKey(id)
	if err := r.db.WithContext(ctx).Save(obj).Error; err != nil {
		return nil, err
	}
	return obj, nil
}

// Delete removes row id.
func (r *Repository[T, PT]) Delete(ctx context.Context, id uint) error {
	obj, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(obj).Error
}
