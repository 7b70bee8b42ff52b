package domain

import "time"

// AttemptKind is the backend operation an attempt refers to
type AttemptKind string

const (
	AttemptGenerate AttemptKind = "generate"
	AttemptVerify   AttemptKind = "verify"
)

// AttemptOutcome is the result of an attempt
type AttemptOutcome string

const (
	OutcomeCached    AttemptOutcome = "cached"
	OutcomeFailed    AttemptOutcome = "failed"
	OutcomeGenerated AttemptOutcome = "generated"
	OutcomeNotFound  AttemptOutcome = "not_found"
	OutcomeVerified  AttemptOutcome = "verified"
)

// Attempt is one journaled call to the backend
type Attempt struct {
	CreatedAt  time.Time
	Duration   time.Duration
	ErrorKind  ErrorKind
	ID         string
	Identifier string
	Kind       AttemptKind
	Outcome    AttemptOutcome
}

// VerifyOutcome derives the journal outcome for a verification
func VerifyOutcome(res VerifyResult, err error) AttemptOutcome {
	switch {
	case KindOf(err) == KindNotFound:
		return OutcomeNotFound
	case err != nil:
		return OutcomeFailed
	case !res.Exists || res.User == nil:
		return OutcomeNotFound
	default:
		return OutcomeVerified
	}
}

// GenerateOutcome derives the journal outcome for a generation
func GenerateOutcome(res GenerateResult, err error) AttemptOutcome {
	switch {
	case KindOf(err) == KindNotFound:
		return OutcomeNotFound
	case err != nil:
		return OutcomeFailed
	case res.HasExistingPhoto:
		return OutcomeCached
	default:
		return OutcomeGenerated
	}
}
