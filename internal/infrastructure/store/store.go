package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nutriguide/backend/config"
	"github.com/nutriguide/backend/internal/domain"
	"github.com/nutriguide/backend/internal/logger"
)

// GormStore implements domain.Store over sqlite or postgres. All SQL is
// kept dialect-portable; anything the dialects disagree on (string
// aggregation) is done in Go by the callers instead.
type GormStore struct {
	db  *gorm.DB
	log *logger.Logger
}

var _ domain.Store = (*GormStore)(nil)

// Open connects to the configured database and returns a store.
func Open(cfg config.StoreConfig, log *logger.Logger) (*GormStore, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s store: %w", cfg.Driver, err)
	}

	return New(db, log), nil
}

// New wraps an existing gorm handle. Used by Open, Transaction and tests.
func New(db *gorm.DB, log *logger.Logger) *GormStore {
	return &GormStore{db: db, log: log.With("component", "store")}
}

// AutoMigrate creates or updates the schema for every engine table.
func (s *GormStore) AutoMigrate() error {
	return s.db.AutoMigrate(
		&domain.SelectionOption{},
		&domain.Ingredient{},
		&domain.ConcernMapping{},
		&domain.SafetyRule{},
		&domain.Product{},
		&domain.UserProfile{},
		&domain.UserChoice{},
		&domain.RecommendationResult{},
	)
}

// Seed loads a reference catalog in one transaction. Intended for fresh
// databases; rows conflicting with existing unique keys fail the load.
func (s *GormStore) Seed(ctx context.Context, catalog domain.Catalog) error {
	return s.Transaction(ctx, func(tx domain.Store) error {
		db := tx.(*GormStore).db.WithContext(ctx)
		if len(catalog.Selections) > 0 {
			if err := db.Create(&catalog.Selections).Error; err != nil {
				return err
			}
		}
		if len(catalog.Ingredients) > 0 {
			if err := db.Create(&catalog.Ingredients).Error; err != nil {
				return err
			}
		}
		if len(catalog.Mappings) > 0 {
			if err := db.Create(&catalog.Mappings).Error; err != nil {
				return err
			}
		}
		if len(catalog.SafetyRules) > 0 {
			if err := db.Create(&catalog.SafetyRules).Error; err != nil {
				return err
			}
		}
		if len(catalog.Products) > 0 {
			if err := db.Create(&catalog.Products).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Transaction runs fn against a store bound to one transaction. Any error
// from fn rolls back every write of the run.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx domain.Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, log: s.log})
	})
	if err == nil {
		return nil
	}
	if isClassified(err) {
		return err
	}
	return storeErr(err)
}

// storeErr classifies an underlying database failure.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreFailure, err)
}

// isClassified reports whether err already carries one of the domain
// sentinels, so wrapping layers do not re-classify it.
func isClassified(err error) bool {
	return errors.Is(err, domain.ErrStoreFailure) ||
		errors.Is(err, domain.ErrProfileNotFound) ||
		errors.Is(err, domain.ErrIngredientNotFound) ||
		errors.Is(err, domain.ErrSelectionNotFound) ||
		errors.Is(err, domain.ErrInvalidSubmission)
}

// --- ReferenceStore ---

func (s *GormStore) IngredientByID(ctx context.Context, id uint) (*domain.Ingredient, error) {
	var ingredient domain.Ingredient
	err := s.db.WithContext(ctx).First(&ingredient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrIngredientNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &ingredient, nil
}

func (s *GormStore) IngredientIDByName(ctx context.Context, name string) (uint, error) {
	var ingredient domain.Ingredient
	err := s.db.WithContext(ctx).
		Select("id").
		Where("name_kor = ?", name).
		First(&ingredient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.ErrIngredientNotFound
	}
	if err != nil {
		return 0, storeErr(err)
	}
	return ingredient.ID, nil
}

func (s *GormStore) ConcernMappings(ctx context.Context, selectionIDs []uint) ([]domain.ConcernMappingRow, error) {
	if len(selectionIDs) == 0 {
		return nil, nil
	}

	var rows []domain.ConcernMappingRow
	err := s.db.WithContext(ctx).
		Model(&domain.ConcernMapping{}).
		Select("concern_mappings.ingredient_id, concern_mappings.base_score, selection_options.name AS selection_name").
		Joins("JOIN selection_options ON selection_options.id = concern_mappings.selection_id").
		Where("concern_mappings.selection_id IN ?", selectionIDs).
		Order("concern_mappings.id").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return rows, nil
}

func (s *GormStore) UnsafeIngredientIDs(ctx context.Context, keywords []string) ([]uint, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&domain.SafetyRule{}).
		Where("target_name IN ?", keywords).
		Distinct().
		Pluck("ingredient_id", &ids).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}

func (s *GormStore) ProductsByIngredientName(ctx context.Context, ingredientName string, limit int) ([]domain.Product, error) {
	compact := strings.ReplaceAll(ingredientName, " ", "")
	if compact == "" {
		return nil, nil
	}
	pattern := "%" + compact + "%"

	var products []domain.Product
	err := s.db.WithContext(ctx).
		Where("REPLACE(product_name, ' ', '') LIKE ? OR REPLACE(main_ingredients_text, ' ', '') LIKE ?", pattern, pattern).
		Order("id").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return products, nil
}

func (s *GormStore) SelectionsByNames(ctx context.Context, names []string) ([]domain.SelectionOption, error) {
	if len(names) == 0 {
		return nil, nil
	}

	var options []domain.SelectionOption
	err := s.db.WithContext(ctx).
		Where("name IN ?", names).
		Order("id").
		Find(&options).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return options, nil
}

// --- ProfileStore ---

func (s *GormStore) ProfileByID(ctx context.Context, userID uint) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	err := s.db.WithContext(ctx).First(&profile, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProfileNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &profile, nil
}

func (s *GormStore) ChoicesByUser(ctx context.Context, userID uint) ([]domain.SelectionOption, error) {
	var options []domain.SelectionOption
	err := s.db.WithContext(ctx).
		Model(&domain.SelectionOption{}).
		Joins("JOIN user_choices ON user_choices.selection_id = selection_options.id").
		Where("user_choices.user_id = ?", userID).
		Order("selection_options.id").
		Find(&options).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return options, nil
}

func (s *GormStore) CreateProfile(ctx context.Context, profile *domain.UserProfile) error {
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) AddChoices(ctx context.Context, userID uint, selectionIDs []uint) error {
	if len(selectionIDs) == 0 {
		return nil
	}

	choices := make([]domain.UserChoice, 0, len(selectionIDs))
	for _, selectionID := range selectionIDs {
		choices = append(choices, domain.UserChoice{UserID: userID, SelectionID: selectionID})
	}
	if err := s.db.WithContext(ctx).Create(&choices).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) SaveResults(ctx context.Context, results []domain.RecommendationResult) error {
	if len(results) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&results).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) DeleteUserData(ctx context.Context, userID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return storeErr(err)
	}
	if count == 0 {
		return domain.ErrProfileNotFound
	}

	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.UserChoice{}).Error; err != nil {
		return storeErr(err)
	}
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.RecommendationResult{}).Error; err != nil {
		return storeErr(err)
	}
	if err := s.db.WithContext(ctx).
		Delete(&domain.UserProfile{}, userID).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *GormStore) RecentProfiles(ctx context.Context, limit int) ([]domain.UserProfile, error) {
	var profiles []domain.UserProfile
	err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return profiles, nil
}

func (s *GormStore) CountProfiles(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&domain.UserProfile{}).
		Count(&count).Error
	if err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func (s *GormStore) TopRecommended(ctx context.Context, limit int) ([]domain.IngredientStat, error) {
	var stats []domain.IngredientStat
	err := s.db.WithContext(ctx).
		Model(&domain.RecommendationResult{}).
		Select("ingredients.name_kor AS name, COUNT(recommendation_results.id) AS count, AVG(recommendation_results.score) AS avg_score").
		Joins("JOIN ingredients ON ingredients.id = recommendation_results.ingredient_id").
		Group("recommendation_results.ingredient_id, ingredients.name_kor").
		Order("count DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return stats, nil
}
