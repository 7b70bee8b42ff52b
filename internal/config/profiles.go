package config

import (
	"fmt"
	"time"

	"toga/internal/domain"
)

// BuildProfileSet derives the progress profiles from configured durations.
// Zero durations keep the canonical values; an empty provisional name keeps fresh.
func BuildProfileSet(fresh, cached time.Duration, provisional string) (domain.ProfileSet, error) {
	set := domain.DefaultProfileSet()

	if fresh > 0 {
		p, err := set.Fresh.WithTotalDuration(fresh)
		if err != nil {
			return domain.ProfileSet{}, fmt.Errorf("fresh profile: %w", err)
		}
		set.Fresh = p
	}
	if cached > 0 {
		p, err := set.Cached.WithTotalDuration(cached)
		if err != nil {
			return domain.ProfileSet{}, fmt.Errorf("cached profile: %w", err)
		}
		set.Cached = p
	}
	if provisional != "" {
		name, err := domain.ParseProfileName(provisional)
		if err != nil {
			return domain.ProfileSet{}, err
		}
		set.Provisional = name
	}

	return set, nil
}
