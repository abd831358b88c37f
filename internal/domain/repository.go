package domain

import "context"

// ReferenceStore reads the static reference tables (ingredients,
// selection catalog, mappings, safety rules, products). Populated by an
// offline process; the engine only reads it.
type ReferenceStore interface {
	IngredientByID(ctx context.Context, id uint) (*Ingredient, error)
	IngredientIDByName(ctx context.Context, name string) (uint, error)

	// ConcernMappings returns the mapping rows for the given health
	// concern selections, joined with selection names, in creation order.
	ConcernMappings(ctx context.Context, selectionIDs []uint) ([]ConcernMappingRow, error)

	// UnsafeIngredientIDs returns the distinct ingredient ids flagged by
	// any safety rule whose target matches one of the keywords.
	UnsafeIngredientIDs(ctx context.Context, keywords []string) ([]uint, error)

	// ProductsByIngredientName returns up to limit products whose name or
	// main-ingredients text contains the ingredient name, ignoring
	// whitespace.
	ProductsByIngredientName(ctx context.Context, ingredientName string, limit int) ([]Product, error)

	SelectionsByNames(ctx context.Context, names []string) ([]SelectionOption, error)
}

// ProfileStore owns per-user data: profiles, choices, and the
// append-only recommendation result log.
type ProfileStore interface {
	ProfileByID(ctx context.Context, userID uint) (*UserProfile, error)
	ChoicesByUser(ctx context.Context, userID uint) ([]SelectionOption, error)

	CreateProfile(ctx context.Context, profile *UserProfile) error
	AddChoices(ctx context.Context, userID uint, selectionIDs []uint) error
	SaveResults(ctx context.Context, results []RecommendationResult) error

	// DeleteUserData removes a user's choices, logged results and profile.
	// Reports ErrProfileNotFound if no profile row existed.
	DeleteUserData(ctx context.Context, userID uint) error

	RecentProfiles(ctx context.Context, limit int) ([]UserProfile, error)
	CountProfiles(ctx context.Context) (int64, error)

	// TopRecommended aggregates the result log into the most-recommended
	// ingredients with counts and average scores.
	TopRecommended(ctx context.Context, limit int) ([]IngredientStat, error)
}

// Store is the full persistence boundary. Transaction runs fn against a
// store bound to one atomic transaction; any error rolls everything back.
type Store interface {
	ReferenceStore
	ProfileStore

	Transaction(ctx context.Context, fn func(tx Store) error) error
}
