package domain

import "time"

// RecommendationResult is the persisted audit row for one ranked
// ingredient of one run. Append-only. IngredientID is nullable so the
// log survives later removal of the ingredient reference.
type RecommendationResult struct {
	ID           uint  `gorm:"primaryKey"`
	UserID       uint  `gorm:"index"`
	IngredientID *uint `gorm:"index"`
	Score        int
	Reasons      string
	CreatedAt    time.Time
}

// ProductMatch is one safety-checked product attached to a ranked
// ingredient.
type ProductMatch struct {
	ProductName string `json:"productName"`
	CompanyName string `json:"companyName"`
}

// RankedIngredient is one entry of the final ranked list.
type RankedIngredient struct {
	Rank         int            `json:"rank"`
	IngredientID uint           `json:"ingredientId"`
	Name         string         `json:"name"`
	Summary      string         `json:"summary"`
	Score        int            `json:"score"`
	Reasons      []string       `json:"reasons"`
	Products     []ProductMatch `json:"products"`
}

// RecommendationOutcome is what one successful run returns. An empty
// Rankings slice is a valid outcome (nothing scored, or everything was
// safety-filtered), distinct from a missing profile.
type RecommendationOutcome struct {
	UserID      uint               `json:"userId"`
	Rankings    []RankedIngredient `json:"rankings"`
	GeneratedAt time.Time          `json:"generatedAt"`
}
