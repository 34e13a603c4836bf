// Package matching implements the travel partner matching engine: it compares
// a user's stored preferences against every other user's and keeps the ones a
// Predicate accepts.
package matching

import (
	"context"
	"errors"

	"github.com/travel-match/backend/internal/errs"
	"github.com/travel-match/backend/internal/models"
	"github.com/travel-match/backend/internal/repositories"
)

// Match is a {userId, displayName} pair identifying a matched traveler.
type Match struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
}

// MatchDetail joins the owner's public profile with the full preference
// record, as returned by criteria search.
type MatchDetail struct {
	User        models.UserCompact `json:"user"`
	Preferences models.Preference  `json:"preferences"`
}

// Engine evaluates the matching rule against the preference store. It holds
// no state between calls; every invocation re-reads the store.
type Engine struct {
	preferences repositories.PreferenceRepository
	users       repositories.UserRepository
	predicate   Predicate
}

// NewEngine creates an Engine. A nil predicate falls back to the canonical
// destination-equality rule.
func NewEngine(prefRepo repositories.PreferenceRepository, userRepo repositories.UserRepository, pred Predicate) *Engine {
	if pred == nil {
		pred = DestinationPredicate{}
	}
	return &Engine{
		preferences: prefRepo,
		users:       userRepo,
		predicate:   pred,
	}
}

// FindMatches returns the users whose preferences match the caller's own.
// A caller without a preference record has no matches: the result is an empty
// slice, not an error. Read-only; result order is store scan order.
func (e *Engine) FindMatches(ctx context.Context, userID string) ([]Match, error) {
	own, err := e.preferences.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return []Match{}, nil
		}
		return nil, err
	}

	candidates, err := e.preferences.GetAllExcept(ctx, userID)
	if err != nil {
		return nil, err
	}

	matches := []Match{}
	for i := range candidates {
		if !e.predicate.Matches(own, &candidates[i]) {
			continue
		}
		owner, err := e.users.GetUserByID(ctx, candidates[i].UserID.Hex())
		if err != nil {
			// owner deleted after the preference was written
			if errors.Is(err, errs.ErrNotFound) {
				continue
			}
			return nil, err
		}
		matches = append(matches, Match{UserID: owner.ID.Hex(), Name: owner.Name})
	}
	return matches, nil
}

// SearchByCriteria returns every preference record whose stored values
// exactly equal the populated criteria fields, joined with the owner's public
// profile. Empty criteria fields are unconstrained, so a fully empty criteria
// returns everyone.
func (e *Engine) SearchByCriteria(ctx context.Context, criteria models.SearchCriteria) ([]MatchDetail, error) {
	prefs, err := e.preferences.FindByCriteria(ctx, criteria)
	if err != nil {
		return nil, err
	}

	results := []MatchDetail{}
	for i := range prefs {
		owner, err := e.users.GetUserByID(ctx, prefs[i].UserID.Hex())
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				continue
			}
			return nil, err
		}
		results = append(results, MatchDetail{
			User:        owner.ToCompact(),
			Preferences: prefs[i],
		})
	}
	return results, nil
}
