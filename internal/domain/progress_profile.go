package domain

import (
	"fmt"
	"time"
)

// ProfileName identifies a progress profile
type ProfileName string

const (
	ProfileCached ProfileName = "cached"
	ProfileFresh  ProfileName = "fresh"
)

// ParseProfileName validates a profile name coming from settings or flags
func ParseProfileName(s string) (ProfileName, error) {
	switch ProfileName(s) {
	case ProfileCached, ProfileFresh:
		return ProfileName(s), nil
	default:
		return "", fmt.Errorf("unknown progress profile %q: %w", s, ErrValidation)
	}
}

// InspiringMessages is the rotating feed shown while a photo is generated
var InspiringMessages = []string{
	"✨ Generando tu futuro brillante...",
	"🎓 Preparando tu momento especial...",
	"🌟 Creando recuerdos inolvidables...",
	"🚀 Construyendo tu éxito académico...",
	"💫 Materializando tus logros...",
	"🏆 Celebrando tu dedicación...",
	"🎯 Finalizando tu jornada académica...",
	"🌈 Tu esfuerzo se hace realidad...",
	"📚 Transformando conocimiento en triunfo...",
	"⭐ Iluminando tu camino profesional...",
}

// ProgressProfile configures the pacing of a progress animation.
// Values are never mutated after selection; use the With* helpers to derive new ones.
type ProgressProfile struct {
	MessageInterval time.Duration
	messages        []string
	Name            ProfileName
	TickInterval    time.Duration
	TotalDuration   time.Duration
}

// NewProgressProfile builds a profile, copying messages
func NewProgressProfile(name ProfileName, total, tick, msgEvery time.Duration, messages []string) (ProgressProfile, error) {
	if total <= 0 || tick <= 0 || msgEvery <= 0 {
		return ProgressProfile{}, fmt.Errorf("profile %s durations must be positive: %w", name, ErrValidation)
	}
	if tick > total {
		return ProgressProfile{}, fmt.Errorf("profile %s tick interval exceeds total duration: %w", name, ErrValidation)
	}
	if len(messages) == 0 {
		return ProgressProfile{}, fmt.Errorf("profile %s has no messages: %w", name, ErrValidation)
	}
	return ProgressProfile{
		MessageInterval: msgEvery,
		messages:        append([]string(nil), messages...),
		Name:            name,
		TickInterval:    tick,
		TotalDuration:   total,
	}, nil
}

// FreshGenerationProfile paces a newly generated photo
func FreshGenerationProfile() ProgressProfile {
	p, _ := NewProgressProfile(ProfileFresh, 85*time.Second, 100*time.Millisecond, 4*time.Second, InspiringMessages)
	return p
}

// CachedResultProfile paces an existing photo returned by the backend
func CachedResultProfile() ProgressProfile {
	p, _ := NewProgressProfile(ProfileCached, 15*time.Second, 100*time.Millisecond, 4*time.Second, InspiringMessages)
	return p
}

// Ticks returns how many ticks it takes to reach 100 percent
func (p ProgressProfile) Ticks() int {
	n := int(p.TotalDuration / p.TickInterval)
	if n < 1 {
		return 1
	}
	return n
}

// Messages returns a copy of the message feed
func (p ProgressProfile) Messages() []string {
	return append([]string(nil), p.messages...)
}

// Message returns the i-th message with wraparound
func (p ProgressProfile) Message(i int) string {
	if len(p.messages) == 0 {
		return ""
	}
	i %= len(p.messages)
	if i < 0 {
		i += len(p.messages)
	}
	return p.messages[i]
}

// MessageCount returns the number of messages in the feed
func (p ProgressProfile) MessageCount() int {
	return len(p.messages)
}

// WithTotalDuration returns a copy of p with a different total duration
func (p ProgressProfile) WithTotalDuration(d time.Duration) (ProgressProfile, error) {
	return NewProgressProfile(p.Name, d, p.TickInterval, p.MessageInterval, p.messages)
}

// ProfileSet holds the two canonical profiles used by the workflow
type ProfileSet struct {
	Cached      ProgressProfile
	Fresh       ProgressProfile
	Provisional ProfileName
}

// DefaultProfileSet returns the canonical profiles with a fresh provisional guess
func DefaultProfileSet() ProfileSet {
	return ProfileSet{
		Cached:      CachedResultProfile(),
		Fresh:       FreshGenerationProfile(),
		Provisional: ProfileFresh,
	}
}

// Get returns the profile with the given name
func (s ProfileSet) Get(name ProfileName) ProgressProfile {
	if name == ProfileCached {
		return s.Cached
	}
	return s.Fresh
}

// ForOutcome returns the profile matching what the backend actually did
func (s ProfileSet) ForOutcome(hasExistingPhoto bool) ProgressProfile {
	if hasExistingPhoto {
		return s.Cached
	}
	return s.Fresh
}
