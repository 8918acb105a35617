package repository

import (
	"context"

	"github.com/trovehq/trove-backend/internal/domain"
	"gorm.io/gorm"
)

// profileSearchLimit caps the row volume of one profile search
const profileSearchLimit = 20

// ProfileRepository defines profile data access
type ProfileRepository interface {
	Search(ctx context.Context, query string) ([]domain.ProfileResult, error)
	GetByUsername(ctx context.Context, username string) (*domain.ProfileResult, error)
	Delete(ctx context.Context, profileID string) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Search returns profiles whose username or display name contains the query,
// case-insensitively, with catalog/item counts over public catalogs only.
func (r *profileRepository) Search(ctx context.Context, query string) ([]domain.ProfileResult, error) {
	pattern := "%" + query + "%"

	var profiles []domain.Profile
	err := r.db.WithContext(ctx).
		Where("LOWER(username) LIKE ? OR LOWER(display_name) LIKE ?", pattern, pattern).
		Limit(profileSearchLimit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return []domain.ProfileResult{}, nil
	}

	ids := make([]string, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}

	counts, err := r.publicCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	results := make([]domain.ProfileResult, len(profiles))
	for i, p := range profiles {
		c := counts[p.ID]
		results[i] = domain.ProfileResult{
			ID:           p.ID,
			Username:     p.Username,
			DisplayName:  p.DisplayName,
			AvatarURL:    p.AvatarURL,
			CatalogCount: c.catalogs,
			ItemCount:    c.items,
		}
	}
	return results, nil
}

// GetByUsername returns one profile with its public catalog/item counts
func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*domain.ProfileResult, error) {
	var profile domain.Profile
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&profile).Error
	if err != nil {
		return nil, err
	}

	counts, err := r.publicCounts(ctx, []string{profile.ID})
	if err != nil {
		return nil, err
	}

	c := counts[profile.ID]
	return &domain.ProfileResult{
		ID:           profile.ID,
		Username:     profile.Username,
		DisplayName:  profile.DisplayName,
		AvatarURL:    profile.AvatarURL,
		CatalogCount: c.catalogs,
		ItemCount:    c.items,
	}, nil
}

// Delete removes a profile row. Catalogs, items, likes, and bookmarks are
// removed by the database's cascading foreign keys.
func (r *profileRepository) Delete(ctx context.Context, profileID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", profileID).
		Delete(&domain.Profile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type ownerCounts struct {
	catalogs int
	items    int
}

// publicCounts aggregates per-owner catalog and item counts, restricted to
// public catalogs.
func (r *profileRepository) publicCounts(ctx context.Context, ownerIDs []string) (map[string]ownerCounts, error) {
	var rows []struct {
		OwnerID      string `gorm:"column:owner_id"`
		CatalogCount int    `gorm:"column:catalog_count"`
		ItemCount    int    `gorm:"column:item_count"`
	}

	err := r.db.WithContext(ctx).
		Table("catalogs").
		Select(`catalogs.owner_id,
			COUNT(*) AS catalog_count,
			COALESCE(SUM(ic.cnt), 0) AS item_count`).
		Joins(`LEFT JOIN (SELECT catalog_id, COUNT(*) AS cnt FROM items GROUP BY catalog_id) ic
			ON ic.catalog_id = catalogs.id`).
		Where("catalogs.visibility = ? AND catalogs.owner_id IN ?", domain.VisibilityPublic, ownerIDs).
		Group("catalogs.owner_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]ownerCounts, len(rows))
	for _, row := range rows {
		counts[row.OwnerID] = ownerCounts{catalogs: row.CatalogCount, items: row.ItemCount}
	}
	return counts, nil
}
