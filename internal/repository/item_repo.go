package repository

import (
	"context"
	"strings"

	"github.com/trovehq/trove-backend/internal/domain"
	"gorm.io/gorm"
)

// itemSearchLimit caps the raw row volume of one item search
const itemSearchLimit = 100

// ItemRepository defines item data access
type ItemRepository interface {
	SearchByKeywords(ctx context.Context, keywords []string) ([]domain.ItemResult, error)
	ListByCatalog(ctx context.Context, catalogID string) ([]domain.ItemResult, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.ItemResult, error)
	Exists(ctx context.Context, itemID string) (bool, error)
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// itemRow is the flat join shape scanned from the database. Normalizing it
// here keeps nested-join ambiguity out of the service layer.
type itemRow struct {
	ID            string `gorm:"column:id"`
	Title         string `gorm:"column:title"`
	ImageURL      string `gorm:"column:image_url"`
	ProductURL    string `gorm:"column:product_url"`
	Price         string `gorm:"column:price"`
	Seller        string `gorm:"column:seller"`
	CatalogID     string `gorm:"column:catalog_id"`
	CatalogName   string `gorm:"column:catalog_name"`
	OwnerUsername string `gorm:"column:owner_username"`
	LikeCount     int    `gorm:"column:like_count"`
}

func (r itemRow) toResult() domain.ItemResult {
	return domain.ItemResult{
		ID:            r.ID,
		Title:         r.Title,
		ImageURL:      r.ImageURL,
		ProductURL:    r.ProductURL,
		Price:         r.Price,
		Seller:        r.Seller,
		CatalogID:     r.CatalogID,
		CatalogName:   r.CatalogName,
		OwnerUsername: r.OwnerUsername,
		LikeCount:     r.LikeCount,
	}
}

const itemSelect = `items.id, items.title, items.image_url, items.product_url,
	items.price, items.seller, items.catalog_id, items.like_count,
	catalogs.name AS catalog_name, profiles.username AS owner_username`

// SearchByKeywords returns items whose title or seller contains any of the
// given lowercase keywords, restricted to public catalogs.
func (r *itemRepository) SearchByKeywords(ctx context.Context, keywords []string) ([]domain.ItemResult, error) {
	if len(keywords) == 0 {
		return []domain.ItemResult{}, nil
	}

	conds := make([]string, 0, len(keywords))
	args := make([]interface{}, 0, len(keywords)*2)
	for _, kw := range keywords {
		pattern := "%" + kw + "%"
		conds = append(conds, "(LOWER(items.title) LIKE ? OR LOWER(items.seller) LIKE ?)")
		args = append(args, pattern, pattern)
	}

	var rows []itemRow
	err := r.db.WithContext(ctx).
		Table("items").
		Select(itemSelect).
		Joins("JOIN catalogs ON catalogs.id = items.catalog_id AND catalogs.visibility = ?", domain.VisibilityPublic).
		Joins("JOIN profiles ON profiles.id = catalogs.owner_id").
		Where(strings.Join(conds, " OR "), args...).
		Limit(itemSearchLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domain.ItemResult, len(rows))
	for i, row := range rows {
		results[i] = row.toResult()
	}
	return results, nil
}

// ListByCatalog returns all items of one catalog
func (r *itemRepository) ListByCatalog(ctx context.Context, catalogID string) ([]domain.ItemResult, error) {
	var rows []itemRow
	err := r.db.WithContext(ctx).
		Table("items").
		Select(itemSelect).
		Joins("JOIN catalogs ON catalogs.id = items.catalog_id").
		Joins("JOIN profiles ON profiles.id = catalogs.owner_id").
		Where("items.catalog_id = ?", catalogID).
		Order("items.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domain.ItemResult, len(rows))
	for i, row := range rows {
		results[i] = row.toResult()
	}
	return results, nil
}

// ListByIDs returns items by id, public catalogs only
func (r *itemRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.ItemResult, error) {
	if len(ids) == 0 {
		return []domain.ItemResult{}, nil
	}

	var rows []itemRow
	err := r.db.WithContext(ctx).
		Table("items").
		Select(itemSelect).
		Joins("JOIN catalogs ON catalogs.id = items.catalog_id AND catalogs.visibility = ?", domain.VisibilityPublic).
		Joins("JOIN profiles ON profiles.id = catalogs.owner_id").
		Where("items.id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]domain.ItemResult, len(rows))
	for i, row := range rows {
		results[i] = row.toResult()
	}
	return results, nil
}

// Exists reports whether an item exists and belongs to a public catalog
func (r *itemRepository) Exists(ctx context.Context, itemID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("items").
		Joins("JOIN catalogs ON catalogs.id = items.catalog_id AND catalogs.visibility = ?", domain.VisibilityPublic).
		Where("items.id = ?", itemID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
