package etlrun

import (
	"context"

	"gorm.io/gorm"

	"retail.GO/model/entity"
)

// EtlRunRepository persists import pass audit records.
type EtlRunRepository struct {
	db *gorm.DB
}

func NewEtlRunRepository(db *gorm.DB) *EtlRunRepository {
	return &EtlRunRepository{db: db}
}

func (r *EtlRunRepository) Create(ctx context.Context, run *entity.EtlRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// Latest returns the most recently started run, or gorm.ErrRecordNotFound.
func (r *EtlRunRepository) Latest(ctx context.Context) (*entity.EtlRun, error) {
	var run entity.EtlRun
	err := r.db.WithContext(ctx).Order("StartedAt DESC").Order("EtlRunID DESC").First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// List returns up to limit runs, newest first. limit <= 0 means 50.
func (r *EtlRunRepository) List(ctx context.Context, limit int) ([]entity.EtlRun, error) {
	if limit <= 0 {
		limit = 50
	}
	runs := make([]entity.EtlRun, 0)
	err := r.db.WithContext(ctx).Order("StartedAt DESC").Order("EtlRunID DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
