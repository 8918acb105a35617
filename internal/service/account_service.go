package service

import (
	"context"
	"errors"

	"github.com/trovehq/trove-backend/internal/common"
	"github.com/trovehq/trove-backend/internal/repository"
	pkglogger "github.com/trovehq/trove-backend/pkg/logger"
	"gorm.io/gorm"
)

// AccountService handles administrative account operations
type AccountService interface {
	DeleteAccount(ctx context.Context, userID string) error
}

type accountService struct {
	profileRepo repository.ProfileRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(profileRepo repository.ProfileRepository) AccountService {
	return &accountService{profileRepo: profileRepo}
}

// DeleteAccount removes the user's profile row. Catalogs, items, likes, and
// bookmarks are removed by the database's cascading foreign keys.
func (s *accountService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.profileRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrProfileNotFound
		}
		return err
	}

	pkglogger.GetLogger().Info().Str("user_id", userID).Msg("account deleted")
	return nil
}
