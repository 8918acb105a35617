package repository

import (
	"context"
	"time"

	"github.com/trovehq/trove-backend/internal/domain"
	"gorm.io/gorm"
)

// LikeRepository defines like membership and counter operations
type LikeRepository interface {
	Has(ctx context.Context, itemID, profileID string) (bool, error)
	Add(ctx context.Context, itemID, profileID string) error
	Remove(ctx context.Context, itemID, profileID string) error
	Count(ctx context.Context, itemID string) (int, error)
	ListItemIDs(ctx context.Context, profileID string) ([]string, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Has checks if a viewer has already liked an item
func (r *likeRepository) Has(ctx context.Context, itemID, profileID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("item_id = ? AND profile_id = ?", itemID, profileID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add inserts a like row and increments the item's like_count in a transaction
func (r *likeRepository) Add(ctx context.Context, itemID, profileID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := &domain.Like{
			ItemID:    itemID,
			ProfileID: profileID,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(like).Error; err != nil {
			return err
		}

		return tx.Model(&domain.Item{}).
			Where("id = ?", itemID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
}

// Remove deletes a like row and decrements the item's like_count in a
// transaction. The counter never goes below zero.
func (r *likeRepository) Remove(ctx context.Context, itemID, profileID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("item_id = ? AND profile_id = ?", itemID, profileID).
			Delete(&domain.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		return tx.Model(&domain.Item{}).
			Where("id = ?", itemID).
			UpdateColumn("like_count",
				gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error
	})
}

// Count returns the item's current like count
func (r *likeRepository) Count(ctx context.Context, itemID string) (int, error) {
	var count int
	err := r.db.WithContext(ctx).
		Model(&domain.Item{}).
		Select("like_count").
		Where("id = ?", itemID).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListItemIDs returns all item ids the viewer has liked
func (r *likeRepository) ListItemIDs(ctx context.Context, profileID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("profile_id = ?", profileID).
		Pluck("item_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
