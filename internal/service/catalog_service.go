package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/trovehq/trove-backend/internal/common"
	"github.com/trovehq/trove-backend/internal/domain"
	"github.com/trovehq/trove-backend/internal/repository"
	pkgcache "github.com/trovehq/trove-backend/pkg/cache"
	pkglogger "github.com/trovehq/trove-backend/pkg/logger"
	"gorm.io/gorm"
)

// popularDefaultLimit bounds the popular-catalogs listing
const (
	popularDefaultLimit = 20
	popularMaxLimit     = 50
)

// CatalogService serves the browse surface: catalog detail, popular
// catalogs, and profile pages
type CatalogService interface {
	GetCatalog(ctx context.Context, catalogID, viewerID string) (*domain.CatalogDetail, error)
	ListPopular(ctx context.Context, limit int) ([]domain.CatalogResult, error)
	GetProfile(ctx context.Context, username string) (*domain.ProfileResult, error)
}

type catalogService struct {
	catalogRepo  repository.CatalogRepository
	itemRepo     repository.ItemRepository
	profileRepo  repository.ProfileRepository
	bookmarkRepo repository.BookmarkRepository
	cache        pkgcache.Service
}

// NewCatalogService creates a new CatalogService. cache may be nil.
func NewCatalogService(
	catalogRepo repository.CatalogRepository,
	itemRepo repository.ItemRepository,
	profileRepo repository.ProfileRepository,
	bookmarkRepo repository.BookmarkRepository,
	cache pkgcache.Service,
) CatalogService {
	return &catalogService{
		catalogRepo:  catalogRepo,
		itemRepo:     itemRepo,
		profileRepo:  profileRepo,
		bookmarkRepo: bookmarkRepo,
		cache:        cache,
	}
}

// GetCatalog returns a public catalog with its items. The unannotated
// detail is cached; the per-viewer bookmark flag is applied after the cache
// so one viewer's state never leaks into another's.
func (s *catalogService) GetCatalog(ctx context.Context, catalogID, viewerID string) (*domain.CatalogDetail, error) {
	detail, err := s.loadCatalog(ctx, catalogID)
	if err != nil {
		return nil, err
	}

	if viewerID != "" {
		bookmarked, err := s.bookmarkRepo.Has(ctx, catalogID, viewerID)
		if err == nil {
			detail.IsBookmarked = bookmarked
		}
	}

	return detail, nil
}

func (s *catalogService) loadCatalog(ctx context.Context, catalogID string) (*domain.CatalogDetail, error) {
	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetCatalog(ctx, catalogID); err == nil {
			var detail domain.CatalogDetail
			if err := json.Unmarshal(data, &detail); err == nil {
				return &detail, nil
			}
		}
	}

	catalog, err := s.catalogRepo.GetPublicByID(ctx, catalogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrCatalogNotFound
		}
		return nil, err
	}

	items, err := s.itemRepo.ListByCatalog(ctx, catalogID)
	if err != nil {
		return nil, err
	}

	detail := &domain.CatalogDetail{
		CatalogResult: *catalog,
		Items:         items,
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.SetCatalog(ctx, catalogID, detail); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Str("catalog_id", catalogID).Msg("catalog cache set failed")
		}
	}

	return detail, nil
}

// ListPopular returns public catalogs by bookmark count, cache-first with
// fail-soft fallback to the database.
func (s *catalogService) ListPopular(ctx context.Context, limit int) ([]domain.CatalogResult, error) {
	if limit <= 0 {
		limit = popularDefaultLimit
	}
	if limit > popularMaxLimit {
		limit = popularMaxLimit
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if data, err := s.cache.GetPopularCatalogs(ctx, limit); err == nil {
			var catalogs []domain.CatalogResult
			if err := json.Unmarshal(data, &catalogs); err == nil {
				return catalogs, nil
			}
		}
	}

	catalogs, err := s.catalogRepo.ListPopular(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.SetPopularCatalogs(ctx, limit, catalogs); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Msg("popular catalogs cache set failed")
		}
	}

	return catalogs, nil
}

// GetProfile returns a profile with public catalog/item counts
func (s *catalogService) GetProfile(ctx context.Context, username string) (*domain.ProfileResult, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}
