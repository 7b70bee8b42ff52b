//go:build unix

package camera

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"toga/internal/domain"
)

// checkDevice fails fast when the device node is missing or not accessible
func checkDevice(device string) error {
	err := unix.Access(device, unix.R_OK|unix.W_OK)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, unix.ENOENT), errors.Is(err, unix.ENODEV), errors.Is(err, unix.ENXIO):
		return fmt.Errorf("camera %s: %w", device, domain.ErrDeviceUnavailable)
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return fmt.Errorf("camera %s: %w", device, domain.ErrPermissionDenied)
	default:
		return fmt.Errorf("camera %s: %w: %w", device, domain.ErrDeviceUnavailable, err)
	}
}
