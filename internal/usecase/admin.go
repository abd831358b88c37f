package usecase

import (
	"context"

	"github.com/nutriguide/backend/internal/domain"
	"github.com/nutriguide/backend/internal/logger"
)

// AdminService exposes the operational views and the single destructive
// operation (user deletion) of the admin surface.
type AdminService struct {
	store domain.Store
	log   *logger.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(store domain.Store, log *logger.Logger) *AdminService {
	return &AdminService{
		store: store,
		log:   log.With("service", "AdminService"),
	}
}

// RecommendationStats returns the most-recommended ingredients with
// recommendation counts and average scores, aggregated from the result
// log.
func (s *AdminService) RecommendationStats(ctx context.Context, top int) ([]domain.IngredientStat, error) {
	if top <= 0 {
		top = 5
	}
	return s.store.TopRecommended(ctx, top)
}

// TotalUsers returns the number of stored profiles.
func (s *AdminService) TotalUsers(ctx context.Context) (int64, error) {
	return s.store.CountProfiles(ctx)
}

// RecentUsers returns the most recently created profiles.
func (s *AdminService) RecentUsers(ctx context.Context, limit int) ([]domain.UserProfile, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.RecentProfiles(ctx, limit)
}

// DeleteUser removes one user's choices, logged results and profile in a
// single transaction.
func (s *AdminService) DeleteUser(ctx context.Context, userID uint) error {
	err := s.store.Transaction(ctx, func(tx domain.Store) error {
		return tx.DeleteUserData(ctx, userID)
	})
	if err != nil {
		return err
	}
	s.log.Info("user data deleted", "userId", userID)
	return nil
}
