package service

import (
	"context"

	"github.com/trovehq/trove-backend/internal/common"
	"github.com/trovehq/trove-backend/internal/domain"
	"github.com/trovehq/trove-backend/internal/repository"
)

// BookmarkService defines bookmark toggle business logic
type BookmarkService interface {
	Toggle(ctx context.Context, catalogID, viewerID string) (*domain.BookmarkStatus, error)
	ListBookmarked(ctx context.Context, viewerID string) ([]domain.CatalogResult, error)
}

type bookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	catalogRepo  repository.CatalogRepository
}

// NewBookmarkService creates a new BookmarkService
func NewBookmarkService(bookmarkRepo repository.BookmarkRepository, catalogRepo repository.CatalogRepository) BookmarkService {
	return &bookmarkService{
		bookmarkRepo: bookmarkRepo,
		catalogRepo:  catalogRepo,
	}
}

// Toggle flips the viewer's bookmark on a public catalog and returns the
// post-commit count and flag.
func (s *bookmarkService) Toggle(ctx context.Context, catalogID, viewerID string) (*domain.BookmarkStatus, error) {
	if viewerID == "" {
		return nil, common.ErrUnauthorized
	}

	exists, err := s.catalogRepo.ExistsPublic(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.ErrCatalogNotFound
	}

	has, err := s.bookmarkRepo.Has(ctx, catalogID, viewerID)
	if err != nil {
		return nil, err
	}

	if has {
		if err := s.bookmarkRepo.Remove(ctx, catalogID, viewerID); err != nil {
			return nil, err
		}
	} else {
		if err := s.bookmarkRepo.Add(ctx, catalogID, viewerID); err != nil {
			return nil, err
		}
	}

	count, err := s.bookmarkRepo.Count(ctx, catalogID)
	if err != nil {
		return nil, err
	}

	return &domain.BookmarkStatus{
		CatalogID:     catalogID,
		BookmarkCount: count,
		Bookmarked:    !has,
	}, nil
}

// ListBookmarked returns the viewer's bookmarked catalogs
func (s *bookmarkService) ListBookmarked(ctx context.Context, viewerID string) ([]domain.CatalogResult, error) {
	if viewerID == "" {
		return nil, common.ErrUnauthorized
	}

	ids, err := s.bookmarkRepo.ListCatalogIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	catalogs, err := s.catalogRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range catalogs {
		catalogs[i].IsBookmarked = true
	}
	return catalogs, nil
}
