package tracker

import (
	"errors"
	"fmt"
	"math"
)

// MatchMode selects the algorithm used to associate existing identities
// with new detections
type MatchMode int

const (
	// MatchGreedy processes identities in order of their closest detection
	// and binds each to its nearest unused detection
	MatchGreedy MatchMode = 0
	// MatchOptimal finds the minimum total distance assignment using the
	// Jonker-Volgenant linear assignment solver
	MatchOptimal MatchMode = 1
)

// String implements fmt.Stringer
func (m MatchMode) String() string {
	switch m {
	case MatchGreedy:
		return "greedy"
	case MatchOptimal:
		return "optimal"
	}
	return fmt.Sprintf("MatchMode(%d)", int(m))
}

// ParseMatchMode converts a name given on the command line to a MatchMode
func ParseMatchMode(name string) (MatchMode, error) {
	switch name {
	case "greedy", "":
		return MatchGreedy, nil
	case "optimal":
		return MatchOptimal, nil
	}
	return MatchGreedy, fmt.Errorf("unknown match mode %q", name)
}

// ErrInvalidConfig is returned by Config.Validate
var ErrInvalidConfig = errors.New("invalid tracker config")

// Config defines the parameters of the CentroidTracker
type Config struct {
	// MaxDisappeared is the number of consecutive frames an identity may go
	// unmatched before it is retired
	MaxDisappeared int
	// MaxDistance is the largest centroid displacement in pixels accepted as
	// the same object between matched frames
	MaxDistance float64
	// Matching is the association algorithm
	Matching MatchMode
}

// DefaultConfig returns the tracker parameters used for people counting
func DefaultConfig() Config {
	return Config{
		MaxDisappeared: 10,
		MaxDistance:    50,
		Matching:       MatchGreedy,
	}
}

// Validate checks the configuration values are usable
func (c Config) Validate() error {

	if c.MaxDisappeared < 0 {
		return fmt.Errorf("%w: MaxDisappeared must not be negative, got %d",
			ErrInvalidConfig, c.MaxDisappeared)
	}

	if c.MaxDistance < 0 || math.IsNaN(c.MaxDistance) {
		return fmt.Errorf("%w: MaxDistance must not be negative, got %v",
			ErrInvalidConfig, c.MaxDistance)
	}

	if c.Matching != MatchGreedy && c.Matching != MatchOptimal {
		return fmt.Errorf("%w: unknown match mode %v", ErrInvalidConfig, c.Matching)
	}

	return nil
}
