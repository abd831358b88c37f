package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/nutriguide/backend/internal/domain"
)

// applyBaseScores converts the user's chosen health concerns into initial
// ingredient scores via the concern mapping table. Base scores from
// multiple concerns hitting the same ingredient are summed into a single
// contribution with one combined reason naming every contributing
// concern. No chosen concerns means no base scores; that is a valid,
// empty starting point, not an error.
func applyBaseScores(ctx context.Context, store domain.ReferenceStore, board *Scoreboard, choices []domain.SelectionOption) error {
	var concernIDs []uint
	for _, choice := range choices {
		if choice.GroupName == domain.GroupHealthConcern {
			concernIDs = append(concernIDs, choice.ID)
		}
	}
	if len(concernIDs) == 0 {
		return nil
	}

	rows, err := store.ConcernMappings(ctx, concernIDs)
	if err != nil {
		return err
	}

	// Group by ingredient in first-seen order; rows arrive in creation
	// order, which keeps repeated runs deterministic.
	type aggregate struct {
		total    int
		concerns []string
	}
	var order []uint
	totals := make(map[uint]*aggregate)
	for _, row := range rows {
		agg, ok := totals[row.IngredientID]
		if !ok {
			agg = &aggregate{}
			totals[row.IngredientID] = agg
			order = append(order, row.IngredientID)
		}
		agg.total += row.BaseScore
		if !containsString(agg.concerns, row.SelectionName) {
			agg.concerns = append(agg.concerns, row.SelectionName)
		}
	}

	for _, id := range order {
		agg := totals[id]
		reason := fmt.Sprintf("관련 건강 고민(%s)과 연관됨", strings.Join(agg.concerns, ", "))
		board.Add(id, agg.total, reason)
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
