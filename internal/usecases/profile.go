package usecases

import (
	"context"
	"fmt"
	"strings"

	"trendboard/internal/domain"
	"trendboard/internal/validation"
	"trendboard/pkg/log"
)

// ProfileUseCase reads and updates the user's profile. There is no fallback
// profile, so failures are returned.
type ProfileUseCase struct {
	store ProfileStore
}

// NewProfileUseCase creates a new ProfileUseCase.
func NewProfileUseCase(store ProfileStore) *ProfileUseCase {
	return &ProfileUseCase{store: store}
}

// Get fetches the current profile.
func (uc *ProfileUseCase) Get(ctx context.Context) (domain.Profile, error) {
	p, err := uc.store.GetProfile(ctx)
	if err != nil {
		log.GlobalErrorCtx(ctx, "profile fetch failed", "error", err)
		return domain.Profile{}, err
	}
	return p, nil
}

// Update validates p and stores it. Validation failures match
// domain.ErrInvalidProfile and never reach the backend.
func (uc *ProfileUseCase) Update(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	p = normalizeProfile(p)

	if err := validation.Struct(p); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %w", domain.ErrInvalidProfile, err)
	}

	saved, err := uc.store.UpdateProfile(ctx, p)
	if err != nil {
		log.GlobalErrorCtx(ctx, "profile update failed", "error", err)
		return domain.Profile{}, err
	}
	log.GlobalInfoCtx(ctx, "profile updated")
	return saved, nil
}

func normalizeProfile(p domain.Profile) domain.Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.BusinessName = strings.TrimSpace(p.BusinessName)
	p.Industry = strings.TrimSpace(p.Industry)
	p.BusinessType = strings.TrimSpace(p.BusinessType)
	p.ContentDigest = strings.ToLower(strings.TrimSpace(p.ContentDigest))
	if p.ContentGoals == nil {
		p.ContentGoals = []string{}
	}
	return p
}
