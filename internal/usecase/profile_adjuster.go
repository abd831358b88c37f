package usecase

import (
	"context"
	"errors"

	"github.com/nutriguide/backend/internal/domain"
	"github.com/nutriguide/backend/internal/logger"
)

// Canonical ingredient names the profile rules resolve against the
// reference store. A name missing from the store skips that rule only.
const (
	ingredientMagnesium   = "마그네슘"
	ingredientTheanine    = "테아닌"
	ingredientEcklonia    = "감태추출물" // sleep-quality specialist
	ingredientVitaminC    = "비타민 C"
	ingredientFiber       = "식이섬유"
	ingredientOmega3      = "오메가3"
	ingredientMilkThistle = "밀크씨슬"
	ingredientPotassium   = "칼륨"
	ingredientCalcium     = "칼슘"
)

// adjustmentRule awards points to a named ingredient when its predicate
// matches the profile. Rules are data, not branches: adding a signal is
// a new table entry, and each rule is testable in isolation. This table
// is intentionally independent of the concern mapping table — it encodes
// ordinal/continuous survey signals, not discrete concern selections.
type adjustmentRule struct {
	applies        func(p *domain.UserProfile) bool
	ingredientName string
	points         int
	reason         string
}

var adjustmentRules = []adjustmentRule{
	// Stress level
	{stressIs(domain.StressHigh), ingredientMagnesium, 7, "높은 스트레스 관리 필요"},
	{stressIs(domain.StressHigh), ingredientTheanine, 7, "높은 스트레스 관리 필요"},
	{stressIs(domain.StressMedium), ingredientMagnesium, 3, "스트레스 관리 필요"},
	{stressIs(domain.StressMedium), ingredientTheanine, 3, "스트레스 관리 필요"},

	// Sleep quality
	{sleepAtMost(2), ingredientMagnesium, 5, "수면의 질 개선 필요"},
	{sleepAtMost(2), ingredientEcklonia, 8, "수면의 질 개선 필요"},
	{sleepExactly(3), ingredientMagnesium, 2, "수면 관리 권장"},

	// Diet habits
	{hasHabit(domain.HabitLackVeggies), ingredientVitaminC, 4, "채소 섭취 부족 보완"},
	{hasHabit(domain.HabitLackVeggies), ingredientFiber, 4, "채소 섭취 부족 보완"},
	{hasHabit(domain.HabitGreasyFood), ingredientOmega3, 4, "기름진 식습관 보완"},
	{hasHabit(domain.HabitGreasyFood), ingredientMilkThistle, 4, "기름진 식습관 보완"},
	{hasHabit(domain.HabitInstantFood), ingredientPotassium, 4, "인스턴트 위주 식습관 보완"},
	{hasHabit(domain.HabitInstantFood), ingredientCalcium, 4, "인스턴트 위주 식습관 보완"},
}

func stressIs(level string) func(*domain.UserProfile) bool {
	return func(p *domain.UserProfile) bool { return p.StressLevel == level }
}

func sleepAtMost(quality int) func(*domain.UserProfile) bool {
	return func(p *domain.UserProfile) bool { return p.SleepQuality > 0 && p.SleepQuality <= quality }
}

func sleepExactly(quality int) func(*domain.UserProfile) bool {
	return func(p *domain.UserProfile) bool { return p.SleepQuality == quality }
}

func hasHabit(tag string) func(*domain.UserProfile) bool {
	return func(p *domain.UserProfile) bool { return p.HasDietHabit(tag) }
}

// applyProfileAdjustments evaluates the fixed rule table against the
// loaded profile. Ingredient names resolve by exact lookup; an
// unresolved name is logged and skipped, never fatal.
func applyProfileAdjustments(ctx context.Context, store domain.ReferenceStore, board *Scoreboard, profile *domain.UserProfile, log *logger.Logger) error {
	for _, rule := range adjustmentRules {
		if !rule.applies(profile) {
			continue
		}

		id, err := store.IngredientIDByName(ctx, rule.ingredientName)
		if errors.Is(err, domain.ErrIngredientNotFound) {
			log.Warn("profile rule references unknown ingredient, skipping",
				"ingredient", rule.ingredientName)
			continue
		}
		if err != nil {
			return err
		}

		board.Add(id, rule.points, rule.reason)
	}
	return nil
}
