package workflow

import (
	"toga/internal/camera"
	"toga/internal/domain"
)

// SubmitIdentifierMsg asks the controller to verify an identifier
type SubmitIdentifierMsg struct {
	ID string
}

// CaptureAndGenerateMsg asks the controller to take the photo and generate the result
type CaptureAndGenerateMsg struct{}

// GoBackMsg returns from the capture step to the search step
type GoBackMsg struct{}

// RestartMsg resets the workflow from any step
type RestartMsg struct{}

// Result messages carry the epoch of the attempt that produced them so
// results of superseded attempts can be told apart and dropped.

type verifiedMsg struct {
	epoch  uint64
	err    error
	result domain.VerifyResult
}

type acquiredMsg struct {
	epoch  uint64
	err    error
	handle camera.Handle
}

type generatedMsg struct {
	epoch  uint64
	err    error
	result domain.GenerateResult
}

type settledMsg struct {
	epoch uint64
}
