package matching

import "github.com/travel-match/backend/internal/models"

// Predicate decides whether a candidate's preferences match the caller's own.
// Implementations are deterministic filters over exact field equality; no
// fuzzy or weighted scoring.
type Predicate interface {
	Matches(own, candidate *models.Preference) bool
}

// DestinationPredicate is the canonical matching rule: two travelers match
// when their destinations are exactly equal.
type DestinationPredicate struct{}

// Matches reports whether both preferences name the same destination.
func (DestinationPredicate) Matches(own, candidate *models.Preference) bool {
	return own.Destination == candidate.Destination
}

// All combines predicates so a candidate must satisfy every rule. Adding a
// predicate can only narrow the result set.
func All(preds ...Predicate) Predicate {
	return allPredicate(preds)
}

type allPredicate []Predicate

func (a allPredicate) Matches(own, candidate *models.Preference) bool {
	for _, p := range a {
		if !p.Matches(own, candidate) {
			return false
		}
	}
	return true
}
