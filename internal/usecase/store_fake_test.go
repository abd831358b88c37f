package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/nutriguide/backend/internal/domain"
)

// fakeMapping mirrors one concern mapping row before the selection join.
type fakeMapping struct {
	SelectionID  uint
	IngredientID uint
	BaseScore    int
}

// fakeStore is an in-memory domain.Store for engine tests. Transaction
// snapshots the mutable tables so a failing run observes rollback.
type fakeStore struct {
	profiles    map[uint]*domain.UserProfile
	choices     map[uint][]domain.SelectionOption
	selections  []domain.SelectionOption
	ingredients []domain.Ingredient
	mappings    []fakeMapping
	safetyRules []domain.SafetyRule
	products    []domain.Product

	results    []domain.RecommendationResult
	nextUserID uint

	failSaveResults bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles:   make(map[uint]*domain.UserProfile),
		choices:    make(map[uint][]domain.SelectionOption),
		nextUserID: 1,
	}
}

func (f *fakeStore) addProfile(p domain.UserProfile) uint {
	if p.ID == 0 {
		p.ID = f.nextUserID
		f.nextUserID++
	} else if p.ID >= f.nextUserID {
		f.nextUserID = p.ID + 1
	}
	stored := p
	f.profiles[p.ID] = &stored
	return p.ID
}

func (f *fakeStore) addSelection(id uint, name, group string) domain.SelectionOption {
	option := domain.SelectionOption{ID: id, Name: name, GroupName: group}
	f.selections = append(f.selections, option)
	return option
}

func (f *fakeStore) selectionByID(id uint) (domain.SelectionOption, bool) {
	for _, option := range f.selections {
		if option.ID == id {
			return option, true
		}
	}
	return domain.SelectionOption{}, false
}

// --- domain.ReferenceStore ---

func (f *fakeStore) IngredientByID(_ context.Context, id uint) (*domain.Ingredient, error) {
	for i := range f.ingredients {
		if f.ingredients[i].ID == id {
			ingredient := f.ingredients[i]
			return &ingredient, nil
		}
	}
	return nil, domain.ErrIngredientNotFound
}

func (f *fakeStore) IngredientIDByName(_ context.Context, name string) (uint, error) {
	for _, ingredient := range f.ingredients {
		if ingredient.NameKor == name {
			return ingredient.ID, nil
		}
	}
	return 0, domain.ErrIngredientNotFound
}

func (f *fakeStore) ConcernMappings(_ context.Context, selectionIDs []uint) ([]domain.ConcernMappingRow, error) {
	wanted := make(map[uint]struct{}, len(selectionIDs))
	for _, id := range selectionIDs {
		wanted[id] = struct{}{}
	}

	var rows []domain.ConcernMappingRow
	for _, mapping := range f.mappings {
		if _, ok := wanted[mapping.SelectionID]; !ok {
			continue
		}
		option, ok := f.selectionByID(mapping.SelectionID)
		if !ok {
			continue
		}
		rows = append(rows, domain.ConcernMappingRow{
			IngredientID:  mapping.IngredientID,
			BaseScore:     mapping.BaseScore,
			SelectionName: option.Name,
		})
	}
	return rows, nil
}

func (f *fakeStore) UnsafeIngredientIDs(_ context.Context, keywords []string) ([]uint, error) {
	wanted := make(map[string]struct{}, len(keywords))
	for _, keyword := range keywords {
		wanted[keyword] = struct{}{}
	}

	seen := make(map[uint]struct{})
	var ids []uint
	for _, rule := range f.safetyRules {
		if _, ok := wanted[rule.TargetName]; !ok {
			continue
		}
		if _, dup := seen[rule.IngredientID]; dup {
			continue
		}
		seen[rule.IngredientID] = struct{}{}
		ids = append(ids, rule.IngredientID)
	}
	return ids, nil
}

func (f *fakeStore) ProductsByIngredientName(_ context.Context, ingredientName string, limit int) ([]domain.Product, error) {
	compact := strings.ReplaceAll(ingredientName, " ", "")
	var out []domain.Product
	for _, product := range f.products {
		name := strings.ReplaceAll(product.ProductName, " ", "")
		ingredients := strings.ReplaceAll(product.MainIngredientsText, " ", "")
		if strings.Contains(name, compact) || strings.Contains(ingredients, compact) {
			out = append(out, product)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) SelectionsByNames(_ context.Context, names []string) ([]domain.SelectionOption, error) {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	var out []domain.SelectionOption
	for _, option := range f.selections {
		if _, ok := wanted[option.Name]; ok {
			out = append(out, option)
		}
	}
	return out, nil
}

// --- domain.ProfileStore ---

func (f *fakeStore) ProfileByID(_ context.Context, userID uint) (*domain.UserProfile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeStore) ChoicesByUser(_ context.Context, userID uint) ([]domain.SelectionOption, error) {
	return f.choices[userID], nil
}

func (f *fakeStore) CreateProfile(_ context.Context, profile *domain.UserProfile) error {
	profile.ID = f.nextUserID
	f.nextUserID++
	stored := *profile
	f.profiles[profile.ID] = &stored
	return nil
}

func (f *fakeStore) AddChoices(_ context.Context, userID uint, selectionIDs []uint) error {
	for _, selectionID := range selectionIDs {
		option, ok := f.selectionByID(selectionID)
		if !ok {
			return errors.New("fake store: unknown selection id")
		}
		f.choices[userID] = append(f.choices[userID], option)
	}
	return nil
}

func (f *fakeStore) SaveResults(_ context.Context, results []domain.RecommendationResult) error {
	if f.failSaveResults {
		return domain.ErrStoreFailure
	}
	f.results = append(f.results, results...)
	return nil
}

func (f *fakeStore) DeleteUserData(_ context.Context, userID uint) error {
	if _, ok := f.profiles[userID]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(f.profiles, userID)
	delete(f.choices, userID)
	kept := f.results[:0]
	for _, result := range f.results {
		if result.UserID != userID {
			kept = append(kept, result)
		}
	}
	f.results = kept
	return nil
}

func (f *fakeStore) RecentProfiles(_ context.Context, limit int) ([]domain.UserProfile, error) {
	var out []domain.UserProfile
	for _, profile := range f.profiles {
		out = append(out, *profile)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) CountProfiles(_ context.Context) (int64, error) {
	return int64(len(f.profiles)), nil
}

func (f *fakeStore) TopRecommended(_ context.Context, limit int) ([]domain.IngredientStat, error) {
	type agg struct {
		name  string
		count int64
		sum   int
	}
	var order []uint
	byIngredient := make(map[uint]*agg)
	for _, result := range f.results {
		if result.IngredientID == nil {
			continue
		}
		id := *result.IngredientID
		entry, ok := byIngredient[id]
		if !ok {
			ingredient, err := f.IngredientByID(context.Background(), id)
			if err != nil {
				continue
			}
			entry = &agg{name: ingredient.NameKor}
			byIngredient[id] = entry
			order = append(order, id)
		}
		entry.count++
		entry.sum += result.Score
	}

	var stats []domain.IngredientStat
	for _, id := range order {
		entry := byIngredient[id]
		stats = append(stats, domain.IngredientStat{
			Name:     entry.name,
			Count:    entry.count,
			AvgScore: float64(entry.sum) / float64(entry.count),
		})
		if len(stats) == limit {
			break
		}
	}
	return stats, nil
}

// --- domain.Store ---

func (f *fakeStore) Transaction(_ context.Context, fn func(tx domain.Store) error) error {
	// Snapshot mutable tables so a failed run rolls back.
	resultsBefore := make([]domain.RecommendationResult, len(f.results))
	copy(resultsBefore, f.results)
	profilesBefore := make(map[uint]*domain.UserProfile, len(f.profiles))
	for id, profile := range f.profiles {
		copied := *profile
		profilesBefore[id] = &copied
	}
	choicesBefore := make(map[uint][]domain.SelectionOption, len(f.choices))
	for id, options := range f.choices {
		choicesBefore[id] = append([]domain.SelectionOption(nil), options...)
	}
	userIDBefore := f.nextUserID

	if err := fn(f); err != nil {
		f.results = resultsBefore
		f.profiles = profilesBefore
		f.choices = choicesBefore
		f.nextUserID = userIDBefore
		return err
	}
	return nil
}

var _ domain.Store = (*fakeStore)(nil)
