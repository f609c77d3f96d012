package usecases

import (
	"context"

	"trendboard/pkg/log"
)

// ToggleSaveUseCase records whether the user keeps a recommendation.
type ToggleSaveUseCase struct {
	store ContentStore
}

// NewToggleSaveUseCase creates a new ToggleSaveUseCase.
func NewToggleSaveUseCase(store ContentStore) *ToggleSaveUseCase {
	return &ToggleSaveUseCase{store: store}
}

// Execute reports whether the backend accepted the new flag. Failures are
// logged and reported as false, never as an error.
func (uc *ToggleSaveUseCase) Execute(ctx context.Context, id string, isSaved bool) bool {
	if id == "" {
		log.GlobalWarnCtx(ctx, "save toggle without item id")
		return false
	}

	if err := uc.store.SetSaved(ctx, id, isSaved); err != nil {
		log.GlobalWarnCtx(ctx, "save toggle failed", "id", id, "is_saved", isSaved, "reason", fallbackReason(err), "error", err)
		return false
	}
	return true
}
