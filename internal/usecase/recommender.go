package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/nutriguide/backend/internal/domain"
	"github.com/nutriguide/backend/internal/logger"
)

// reasonSeparator joins a ranked entry's reasons into the persisted log
// row. Reasons themselves contain commas, so a pipe keeps rows parseable.
const reasonSeparator = " | "

// RecommenderConfig holds configuration for the recommendation engine
type RecommenderConfig struct {
	TopN                  int
	ProductsPerIngredient int
	ProductCandidates     int
}

// Recommender runs the full recommendation pipeline for one user:
// base scoring from health concerns, profile-derived adjustments, hard
// safety filtering, stable ranking with product matching, and result
// logging — all inside one store transaction.
type Recommender struct {
	store domain.Store
	log   *logger.Logger

	topN                  int
	productsPerIngredient int
	productCandidates     int
}

// NewRecommender creates a recommender with the given configuration
func NewRecommender(store domain.Store, log *logger.Logger, config RecommenderConfig) *Recommender {
	topN := config.TopN
	if topN <= 0 {
		topN = 3
	}

	perIngredient := config.ProductsPerIngredient
	if perIngredient <= 0 {
		perIngredient = 2
	}

	candidates := config.ProductCandidates
	if candidates <= 0 {
		candidates = 10
	}

	return &Recommender{
		store:                 store,
		log:                   log.With("service", "Recommender"),
		topN:                  topN,
		productsPerIngredient: perIngredient,
		productCandidates:     candidates,
	}
}

// Run computes the recommendation outcome for the given user id.
// Flow: load profile -> base scores -> profile adjustments -> safety
// filter -> rank -> match products -> log results.
// A missing profile aborts with domain.ErrProfileNotFound before any
// scoring; a store failure rolls back the whole run including the result
// log. An empty ranked list is a valid outcome.
func (r *Recommender) Run(ctx context.Context, userID uint) (*domain.RecommendationOutcome, error) {
	var outcome *domain.RecommendationOutcome
	err := r.store.Transaction(ctx, func(tx domain.Store) error {
		var runErr error
		outcome, runErr = r.run(ctx, tx, userID)
		return runErr
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func (r *Recommender) run(ctx context.Context, tx domain.Store, userID uint) (*domain.RecommendationOutcome, error) {
	profile, err := tx.ProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	choices, err := tx.ChoicesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	board := NewScoreboard()
	if err := applyBaseScores(ctx, tx, board, choices); err != nil {
		return nil, err
	}
	if err := applyProfileAdjustments(ctx, tx, board, profile, r.log); err != nil {
		return nil, err
	}

	keywords := deriveSafetyKeywords(choices)
	excluded, err := excludedIngredients(ctx, tx, keywords)
	if err != nil {
		return nil, err
	}
	survivors := board.Surviving(excluded)

	// Stable sort: equal scores keep insertion order, which is the only
	// determinism guarantee across repeated runs.
	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].Score > survivors[j].Score
	})
	if len(survivors) > r.topN {
		survivors = survivors[:r.topN]
	}

	declaredAllergy := containsKeyword(keywords, domain.KeywordAllergy)

	rankings := make([]domain.RankedIngredient, 0, len(survivors))
	results := make([]domain.RecommendationResult, 0, len(survivors))
	for _, entry := range survivors {
		ingredient, err := tx.IngredientByID(ctx, entry.IngredientID)
		if errors.Is(err, domain.ErrIngredientNotFound) {
			r.log.Warn("scored ingredient missing from reference store, skipping",
				"ingredientId", entry.IngredientID)
			continue
		}
		if err != nil {
			return nil, err
		}

		products, err := r.matchProducts(ctx, tx, ingredient.NameKor, declaredAllergy)
		if err != nil {
			return nil, err
		}

		rankings = append(rankings, domain.RankedIngredient{
			Rank:         len(rankings) + 1,
			IngredientID: ingredient.ID,
			Name:         ingredient.NameKor,
			Summary:      ingredient.Summary,
			Score:        entry.Score,
			Reasons:      entry.Reasons,
			Products:     products,
		})

		ingredientID := entry.IngredientID
		results = append(results, domain.RecommendationResult{
			UserID:       userID,
			IngredientID: &ingredientID,
			Score:        entry.Score,
			Reasons:      strings.Join(entry.Reasons, reasonSeparator),
		})
	}

	if len(results) > 0 {
		if err := tx.SaveResults(ctx, results); err != nil {
			return nil, err
		}
	}

	return &domain.RecommendationOutcome{
		UserID:      userID,
		Rankings:    rankings,
		GeneratedAt: time.Now(),
	}, nil
}

// matchProducts finds up to the per-ingredient limit of products matching
// the ingredient name. A product whose precautions flag allergy risk is
// excluded when the user declared the allergy condition — the product
// list shrinks, but the ingredient itself stays ranked.
func (r *Recommender) matchProducts(ctx context.Context, tx domain.Store, ingredientName string, declaredAllergy bool) ([]domain.ProductMatch, error) {
	candidates, err := tx.ProductsByIngredientName(ctx, ingredientName, r.productCandidates)
	if err != nil {
		return nil, err
	}

	matches := make([]domain.ProductMatch, 0, r.productsPerIngredient)
	for _, product := range candidates {
		if declaredAllergy && strings.Contains(product.Precautions, domain.KeywordAllergy) {
			continue
		}
		matches = append(matches, domain.ProductMatch{
			ProductName: product.ProductName,
			CompanyName: product.CompanyName,
		})
		if len(matches) == r.productsPerIngredient {
			break
		}
	}
	return matches, nil
}
