package ports

import (
	"context"

	"toga/internal/domain"
)

// VerificationClient checks identifiers against the backend
type VerificationClient interface {
	Verify(ctx context.Context, id string) (domain.VerifyResult, error)
}

// GenerationClient requests graduation photos from the backend
type GenerationClient interface {
	// Generate uploads a PNG encoded frame for the identifier
	Generate(ctx context.Context, id string, png []byte) (domain.GenerateResult, error)
}

// Backend is the composite interface
type Backend interface {
	GenerationClient
	VerificationClient
}
