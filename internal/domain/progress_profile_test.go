package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalProfiles(t *testing.T) {
	fresh := FreshGenerationProfile()
	cached := CachedResultProfile()

	assert.Equal(t, ProfileFresh, fresh.Name)
	assert.Equal(t, 85*time.Second, fresh.TotalDuration)
	assert.Equal(t, 850, fresh.Ticks())

	assert.Equal(t, ProfileCached, cached.Name)
	assert.Equal(t, 15*time.Second, cached.TotalDuration)
	assert.Equal(t, 150, cached.Ticks())
	assert.Equal(t, 4*time.Second, cached.MessageInterval)
	assert.Equal(t, 10, cached.MessageCount())
}

func TestProgressProfile_MessageWraps(t *testing.T) {
	p := CachedResultProfile()

	assert.Equal(t, InspiringMessages[0], p.Message(0))
	assert.Equal(t, InspiringMessages[0], p.Message(10))
	assert.Equal(t, InspiringMessages[3], p.Message(13))
	assert.Equal(t, InspiringMessages[9], p.Message(-1))
}

func TestProgressProfile_MessagesIsACopy(t *testing.T) {
	p := FreshGenerationProfile()
	msgs := p.Messages()
	msgs[0] = "changed"

	assert.Equal(t, InspiringMessages[0], p.Message(0))
}

func TestNewProgressProfile_Validation(t *testing.T) {
	tests := []struct {
		name  string
		total time.Duration
		tick  time.Duration
		every time.Duration
		msgs  []string
	}{
		{"zero total", 0, time.Millisecond, time.Second, InspiringMessages},
		{"zero tick", time.Second, 0, time.Second, InspiringMessages},
		{"tick above total", time.Second, 2 * time.Second, time.Second, InspiringMessages},
		{"no messages", time.Second, time.Millisecond, time.Second, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProgressProfile(ProfileFresh, tt.total, tt.tick, tt.every, tt.msgs)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestProfileSet_ForOutcome(t *testing.T) {
	set := DefaultProfileSet()

	assert.Equal(t, ProfileCached, set.ForOutcome(true).Name)
	assert.Equal(t, ProfileFresh, set.ForOutcome(false).Name)
	assert.Equal(t, ProfileFresh, set.Get(set.Provisional).Name)
}

func TestWithTotalDuration_LeavesOriginalUntouched(t *testing.T) {
	p := CachedResultProfile()
	shorter, err := p.WithTotalDuration(3 * time.Second)
	require.NoError(t, err)

	assert.Equal(t, 30, shorter.Ticks())
	assert.Equal(t, 15*time.Second, p.TotalDuration)
}

func TestParseProfileName(t *testing.T) {
	name, err := ParseProfileName("cached")
	require.NoError(t, err)
	assert.Equal(t, ProfileCached, name)

	_, err = ParseProfileName("slow")
	assert.ErrorIs(t, err, ErrValidation)
}
