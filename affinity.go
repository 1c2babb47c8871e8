package peoplecount

import (
	"fmt"
	"strconv"
	"strings"
)

// CPUCoreMask calculates the core mask by passing in the CPU core numbers as a
// slice, eg: []int{4,5,6,7}
func CPUCoreMask(cores []int) uintptr {

	var mask uintptr

	for _, core := range cores {
		mask |= 1 << core
	}

	return mask
}

// ParseCores parses a comma separated list of CPU core numbers, eg: "4,5,6,7"
func ParseCores(s string) ([]int, error) {

	var cores []int

	for _, part := range strings.Split(s, ",") {

		part = strings.TrimSpace(part)

		if part == "" {
			continue
		}

		core, err := strconv.Atoi(part)

		if err != nil || core < 0 || core >= 64 {
			return nil, fmt.Errorf("invalid cpu core %q", part)
		}

		cores = append(cores, core)
	}

	if len(cores) == 0 {
		return nil, fmt.Errorf("no cpu cores given in %q", s)
	}

	return cores, nil
}
