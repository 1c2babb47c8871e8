//go:build !linux

package peoplecount

import "errors"

// SetCPUAffinity is only supported on linux
func SetCPUAffinity(mask uintptr) error {
	return errors.New("cpu affinity is not supported on this platform")
}
