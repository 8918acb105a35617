package repository

import (
	"context"

	"github.com/trovehq/trove-backend/internal/domain"
	"gorm.io/gorm"
)

// catalogSearchLimit caps the row volume of one catalog search
const catalogSearchLimit = 20

// CatalogRepository defines catalog data access
type CatalogRepository interface {
	SearchByName(ctx context.Context, query string) ([]domain.CatalogResult, error)
	GetPublicByID(ctx context.Context, catalogID string) (*domain.CatalogResult, error)
	ListPopular(ctx context.Context, limit int) ([]domain.CatalogResult, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.CatalogResult, error)
	ExistsPublic(ctx context.Context, catalogID string) (bool, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

type catalogRow struct {
	ID               string `gorm:"column:id"`
	Name             string `gorm:"column:name"`
	Description      string `gorm:"column:description"`
	ImageURL         string `gorm:"column:image_url"`
	BookmarkCount    int    `gorm:"column:bookmark_count"`
	ItemCount        int    `gorm:"column:item_count"`
	OwnerUsername    string `gorm:"column:owner_username"`
	OwnerDisplayName string `gorm:"column:owner_display_name"`
	OwnerAvatarURL   string `gorm:"column:owner_avatar_url"`
}

func (r catalogRow) toResult() domain.CatalogResult {
	return domain.CatalogResult{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		ImageURL:      r.ImageURL,
		BookmarkCount: r.BookmarkCount,
		ItemCount:     r.ItemCount,
		Owner: domain.ProfileOwner{
			Username:    r.OwnerUsername,
			DisplayName: r.OwnerDisplayName,
			AvatarURL:   r.OwnerAvatarURL,
		},
	}
}

const catalogSelect = `catalogs.id, catalogs.name, catalogs.description,
	catalogs.image_url, catalogs.bookmark_count,
	(SELECT COUNT(*) FROM items WHERE items.catalog_id = catalogs.id) AS item_count,
	profiles.username AS owner_username,
	profiles.display_name AS owner_display_name,
	profiles.avatar_url AS owner_avatar_url`

func (r *catalogRepository) publicCatalogs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("catalogs").
		Select(catalogSelect).
		Joins("JOIN profiles ON profiles.id = catalogs.owner_id").
		Where("catalogs.visibility = ?", domain.VisibilityPublic)
}

// SearchByName returns public catalogs whose name contains the query,
// case-insensitively. The full query string is matched, not tokens.
func (r *catalogRepository) SearchByName(ctx context.Context, query string) ([]domain.CatalogResult, error) {
	var rows []catalogRow
	err := r.publicCatalogs(ctx).
		Where("LOWER(catalogs.name) LIKE ?", "%"+query+"%").
		Limit(catalogSearchLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domain.CatalogResult, len(rows))
	for i, row := range rows {
		results[i] = row.toResult()
	}
	return results, nil
}

// GetPublicByID returns one public catalog with owner and item count
func (r *catalogRepository) GetPublicByID(ctx context.Context, catalogID string) (*domain.CatalogResult, error) {
	var rows []catalogRow
	err := r.publicCatalogs(ctx).
		Where("catalogs.id = ?", catalogID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	result := rows[0].toResult()
	return &result, nil
}

// ListPopular returns public catalogs ordered by bookmark count
func (r *catalogRepository) ListPopular(ctx context.Context, limit int) ([]domain.CatalogResult, error) {
	var rows []catalogRow
	err := r.publicCatalogs(ctx).
		Order("catalogs.bookmark_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domain.CatalogResult, len(rows))
	for i, row := range rows {
		results[i] = row.toResult()
	}
	return results, nil
}

// ListByIDs returns public catalogs by id
func (r *catalogRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.CatalogResult, error) {
	if len(ids) == 0 {
		return []domain.CatalogResult{}, nil
	}

	var rows []catalogRow
	err := r.publicCatalogs(ctx).
		Where("catalogs.id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domain.CatalogResult, len(rows))
	for i, row := range rows {
		results[i] = row.toResult()
	}
	return results, nil
}

// ExistsPublic reports whether a public catalog with the given id exists
func (r *catalogRepository) ExistsPublic(ctx context.Context, catalogID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Catalog{}).
		Where("id = ? AND visibility = ?", catalogID, domain.VisibilityPublic).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
