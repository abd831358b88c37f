package usecase

import "fmt"

// ScoreEntry is the running score of one candidate ingredient together
// with the ordered, human-readable reasons that produced it.
type ScoreEntry struct {
	IngredientID uint
	Score        int
	Reasons      []string
}

// Scoreboard accumulates ingredient scores over the course of one
// recommendation run. Entries keep first-insertion order; that order is
// the only tie-break the ranker relies on.
type Scoreboard struct {
	order   []uint
	entries map[uint]*ScoreEntry
}

// NewScoreboard creates an empty scoreboard.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{
		entries: make(map[uint]*ScoreEntry),
	}
}

// Add increments the ingredient's running total and appends a reason of
// the form "<reason> (+<points>pts)". An unresolved ingredient id (0) is
// silently skipped so incomplete reference data never crashes a run.
// Reasons are never deduplicated: two independent rules may legitimately
// award the same bonus and both explanations are shown.
func (b *Scoreboard) Add(ingredientID uint, points int, reason string) {
	if ingredientID == 0 {
		return
	}

	entry, ok := b.entries[ingredientID]
	if !ok {
		entry = &ScoreEntry{IngredientID: ingredientID}
		b.entries[ingredientID] = entry
		b.order = append(b.order, ingredientID)
	}

	entry.Score += points
	entry.Reasons = append(entry.Reasons, fmt.Sprintf("%s (+%dpts)", reason, points))
}

// Len returns the number of scored ingredients.
func (b *Scoreboard) Len() int {
	return len(b.order)
}

// Entries returns all score entries in insertion order.
func (b *Scoreboard) Entries() []*ScoreEntry {
	out := make([]*ScoreEntry, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.entries[id])
	}
	return out
}

// Surviving derives the working set minus the exclusion set, preserving
// insertion order. The scoreboard itself is not mutated; exclusion is a
// pure function of (candidates, excluded).
func (b *Scoreboard) Surviving(excluded map[uint]struct{}) []*ScoreEntry {
	out := make([]*ScoreEntry, 0, len(b.order))
	for _, id := range b.order {
		if _, gone := excluded[id]; gone {
			continue
		}
		out = append(out, b.entries[id])
	}
	return out
}
