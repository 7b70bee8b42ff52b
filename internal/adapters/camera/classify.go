package camera

import (
	"fmt"
	"strings"

	"toga/internal/domain"
)

var permissionKeywords = []string{
	"permission denied",
	"not permitted",
	"eacces",
	"unauthorized",
}

var unavailableKeywords = []string{
	"cannot identify device",
	"no such file",
	"no such device",
	"not found",
	"device or resource busy",
	"could not open",
	"failed to open",
}

// classifyPipelineError maps a GStreamer error to a domain error
func classifyPipelineError(device, message, debug string) error {
	text := strings.ToLower(message + " " + debug)

	for _, kw := range permissionKeywords {
		if strings.Contains(text, kw) {
			return fmt.Errorf("camera %s: %s: %w", device, message, domain.ErrPermissionDenied)
		}
	}
	for _, kw := range unavailableKeywords {
		if strings.Contains(text, kw) {
			return fmt.Errorf("camera %s: %s: %w", device, message, domain.ErrDeviceUnavailable)
		}
	}
	return fmt.Errorf("camera %s: %s: %w", device, message, domain.ErrDeviceUnavailable)
}
