package repository

import (
	"context"

	"github.com/trovehq/trove-backend/internal/common"
	"gorm.io/gorm"
)

// ClickRepository maintains click counters
type ClickRepository interface {
	Increment(ctx context.Context, table, id string) (int, error)
}

type clickRepository struct {
	db *gorm.DB
}

// NewClickRepository creates a new ClickRepository
func NewClickRepository(db *gorm.DB) ClickRepository {
	return &clickRepository{db: db}
}

// Increment atomically bumps a row's click_count and returns the new value.
// One primitive serves both catalogs and items.
func (r *clickRepository) Increment(ctx context.Context, table, id string) (int, error) {
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Table(table).
			Where("id = ?", id).
			UpdateColumn("click_count", gorm.Expr("click_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return common.ErrNotFound
		}

		return tx.Table(table).
			Select("click_count").
			Where("id = ?", id).
			Scan(&count).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
