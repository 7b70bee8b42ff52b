package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{"nil", nil, KindNone},
		{"not found", fmt.Errorf("verify: %w", ErrNotFound), KindNotFound},
		{"busy is validation", ErrBusy, KindValidation},
		{"permission", ErrPermissionDenied, KindPermissionDenied},
		{"device", ErrDeviceUnavailable, KindDeviceUnavailable},
		{"backend 400", &BackendError{Err: ErrBadRequest, Status: 400}, KindBadRequest},
		{"cancelled", fmt.Errorf("generate: %w", context.Canceled), KindCancelled},
		{"transport", &BackendError{Err: ErrTransport, Status: 502}, KindTransport},
		{"unknown", errors.New("boom"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestBackendError_UnwrapsAndCarriesMessage(t *testing.T) {
	err := fmt.Errorf("failed to generate: %w", &BackendError{Err: ErrBadRequest, Message: "Imagen requerida", Status: 400})

	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, "Imagen requerida", BackendMessage(err))
	assert.Empty(t, BackendMessage(errors.New("plain")))
	assert.Contains(t, err.Error(), "status 400")
}
