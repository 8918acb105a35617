package service

import (
	"context"

	"github.com/trovehq/trove-backend/internal/repository"
)

// Click target item types
const (
	ClickTypeCatalog = "catalog"
)

// ClickService forwards click events to the persistent counters
type ClickService interface {
	Track(ctx context.Context, itemID, itemType string) (int, error)
}

type clickService struct {
	clickRepo repository.ClickRepository
}

// NewClickService creates a new ClickService
func NewClickService(clickRepo repository.ClickRepository) ClickService {
	return &clickService{clickRepo: clickRepo}
}

// Track increments the click counter of the targeted row and returns the
// new count. "catalog" targets the catalogs table; any other type targets
// items.
func (s *clickService) Track(ctx context.Context, itemID, itemType string) (int, error) {
	table := "items"
	if itemType == ClickTypeCatalog {
		table = "catalogs"
	}
	return s.clickRepo.Increment(ctx, table, itemID)
}
