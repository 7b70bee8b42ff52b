package domain

// State represents the step of the kiosk workflow
type State string

const (
	StateCapture State = "capture"
	StateLoading State = "loading"
	StateResult  State = "result"
	StateSearch  State = "search"
)

// Profile is the identity record returned by the backend for a cédula
type Profile struct {
	Career string `json:"career"`
	Cedula string `json:"cedula"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name"`
}

// Session is the mutable context of one person's pass through the kiosk
type Session struct {
	GeneratedArtifact string
	Identifier        string
	Profile           *Profile
	ProgressMessage   string
	ProgressPercent   float64
	State             State
	StatusMessage     string
}

// NewSession returns a session in its initial state
func NewSession() Session {
	return Session{State: StateSearch}
}

// Clone returns a copy that shares no pointers with s
func (s Session) Clone() Session {
	if s.Profile != nil {
		p := *s.Profile
		s.Profile = &p
	}
	return s
}

// VerifyResult is the outcome of an identity verification
type VerifyResult struct {
	Exists  bool     `json:"exists"`
	Success bool     `json:"success"`
	User    *Profile `json:"user"`
}

// GenerateResult is the outcome of a generation request
type GenerateResult struct {
	Generated        bool    `json:"generated"`
	HasExistingPhoto bool    `json:"hasExistingPhoto"`
	Image            string  `json:"image"`
	User             Profile `json:"user"`
}
