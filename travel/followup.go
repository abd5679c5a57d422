package travel

import (
	"context"
	"fmt"

	"github.com/hupe1980/tripmesh/core"
)

// Compile time check to ensure FollowUpChecker satisfies the core interface.
var _ core.FollowUpChecker = (*FollowUpChecker)(nil)

// locationSpecific lists the categories whose answers are meaningless without
// a destination. Weather is excluded: the analyzer folds the location into
// the search query there.
var locationSpecific = map[string]struct{}{
	"food":           {},
	"accommodation":  {},
	"attractions":    {},
	"transportation": {},
}

// FollowUpChecker decides deterministically whether the assistant should ask
// the user for more information. It never calls a model.
type FollowUpChecker struct{}

// NewFollowUpChecker creates a new deterministic follow-up checker.
func NewFollowUpChecker() *FollowUpChecker {
	return &FollowUpChecker{}
}

// CheckFollowUp implements core.FollowUpChecker. A turn needs a follow-up
// when the query falls into a location-specific category but no location was
// extracted.
func (c *FollowUpChecker) CheckFollowUp(_ context.Context, state *core.TurnState) (bool, error) {
	if state.Analysis == nil {
		return false, fmt.Errorf("no analysis available")
	}

	if _, ok := locationSpecific[state.Analysis.Category]; ok && state.Analysis.Location == "" {
		return true, nil
	}

	return false, nil
}
