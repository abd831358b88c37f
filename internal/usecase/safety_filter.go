package usecase

import (
	"context"

	"github.com/nutriguide/backend/internal/domain"
)

// Selection names with dedicated keyword derivations.
const (
	selectionPregnancy = "임산부/수유부"
	selectionAllergy   = "알레르기/특이체질"
)

// medicationClasses is the closed list of named medication classes. Any
// single hit adds both medication meta keywords, once.
var medicationClasses = map[string]struct{}{
	"혈압약":            {},
	"고지혈증약/콜레스테롤약":   {},
	"당뇨약":            {},
	"혈전 예방약/아스피린":    {},
	"위장약/제산제":        {},
	"진통제/해열제 (장기 복용)": {},
	"항생제 (최근 복용 포함)":  {},
	"알레르기/염증약":       {},
	"경구 피임약/호르몬제":    {},
	"갑상선약":           {},
	"항우울제/신경정신과약":    {},
}

// keywordRule maps matching selections to the safety keywords they
// contribute. Each rule fires at most once per run.
type keywordRule struct {
	matches  func(choice domain.SelectionOption) bool
	keywords []string
}

var keywordRules = []keywordRule{
	{
		matches:  func(c domain.SelectionOption) bool { return c.Name == selectionPregnancy },
		keywords: []string{domain.KeywordPregnancy},
	},
	{
		matches:  func(c domain.SelectionOption) bool { return c.Name == selectionAllergy },
		keywords: []string{domain.KeywordAllergy},
	},
	{
		matches: func(c domain.SelectionOption) bool {
			_, ok := medicationClasses[c.Name]
			return ok
		},
		keywords: []string{domain.KeywordCheckMedication, domain.KeywordDrugInteraction},
	},
}

// deriveSafetyKeywords turns the user's declared medications and special
// conditions into the set of safety rule targets to filter on. Health
// concern selections never contribute keywords.
func deriveSafetyKeywords(choices []domain.SelectionOption) []string {
	var keywords []string
	for _, rule := range keywordRules {
		for _, choice := range choices {
			if choice.GroupName == domain.GroupHealthConcern {
				continue
			}
			if rule.matches(choice) {
				keywords = append(keywords, rule.keywords...)
				break // one hit per rule is sufficient
			}
		}
	}
	return keywords
}

// excludedIngredients resolves the derived keywords to the set of
// ingredient ids that must be removed from consideration entirely. A
// flagged ingredient is a contraindication, not a demerit: it must never
// surface, whatever it scored. An empty keyword set excludes nothing.
func excludedIngredients(ctx context.Context, store domain.ReferenceStore, keywords []string) (map[uint]struct{}, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	ids, err := store.UnsafeIngredientIDs(ctx, keywords)
	if err != nil {
		return nil, err
	}

	excluded := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		excluded[id] = struct{}{}
	}
	return excluded, nil
}

func containsKeyword(keywords []string, keyword string) bool {
	for _, k := range keywords {
		if k == keyword {
			return true
		}
	}
	return false
}
