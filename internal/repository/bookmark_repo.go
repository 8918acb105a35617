package repository

import (
	"context"
	"time"

	"github.com/trovehq/trove-backend/internal/domain"
	"gorm.io/gorm"
)

// BookmarkRepository defines bookmark membership and counter operations
type BookmarkRepository interface {
	Has(ctx context.Context, catalogID, profileID string) (bool, error)
	Add(ctx context.Context, catalogID, profileID string) error
	Remove(ctx context.Context, catalogID, profileID string) error
	Count(ctx context.Context, catalogID string) (int, error)
	ListCatalogIDs(ctx context.Context, profileID string) ([]string, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a new BookmarkRepository
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Has checks if a viewer has already bookmarked a catalog
func (r *bookmarkRepository) Has(ctx context.Context, catalogID, profileID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Bookmark{}).
		Where("catalog_id = ? AND profile_id = ?", catalogID, profileID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add inserts a bookmark row and increments the catalog's bookmark_count in
// a transaction
func (r *bookmarkRepository) Add(ctx context.Context, catalogID, profileID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookmark := &domain.Bookmark{
			CatalogID: catalogID,
			ProfileID: profileID,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(bookmark).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Catalog{}).
			Where("id = ?", catalogID).
			UpdateColumn("bookmark_count", gorm.Expr("bookmark_count + 1")).Error
	})
}

// Remove deletes a bookmark row and decrements the catalog's bookmark_count
// in a transaction. The counter never goes below zero.
func (r *bookmarkRepository) Remove(ctx context.Context, catalogID, profileID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("catalog_id = ? AND profile_id = ?", catalogID, profileID).
			Delete(&domain.Bookmark{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		return tx.Model(&domain.Catalog{}).
			Where("id = ?", catalogID).
			UpdateColumn("bookmark_count",
				gorm.Expr("CASE WHEN bookmark_count > 0 THEN bookmark_count - 1 ELSE 0 END")).Error
	})
}

// Count returns the catalog's current bookmark count
func (r *bookmarkRepository) Count(ctx context.Context, catalogID string) (int, error) {
	var count int
	err := r.db.WithContext(ctx).
		Model(&domain.Catalog{}).
		Select("bookmark_count").
		Where("id = ?", catalogID).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListCatalogIDs returns all catalog ids the viewer has bookmarked
func (r *bookmarkRepository) ListCatalogIDs(ctx context.Context, profileID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.Bookmark{}).
		Where("profile_id = ?", profileID).
		Pluck("catalog_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
