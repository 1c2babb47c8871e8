package peoplecount

import (
	"fmt"
	"syscall"
	"unsafe"
)

// SetCPUAffinity sets the CPU Affinity mask of the program to run on the
// specified cores
func SetCPUAffinity(mask uintptr) error {

	_, _, err := syscall.RawSyscall(syscall.SYS_SCHED_SETAFFINITY, 0,
		unsafe.Sizeof(mask), uintptr(unsafe.Pointer(&mask)))

	if err != 0 {
		return fmt.Errorf("failed to set CPU affinity: %w", err)
	}

	return nil
}
