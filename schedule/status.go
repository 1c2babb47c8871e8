package schedule

// Status is the scheduler state label reported for each processed frame
type Status int

const (
	// Waiting means no lightweight trackers are held and the frame was not a
	// detection frame
	Waiting Status = iota
	// Detecting means the detector was run on the frame
	Detecting
	// Tracking means the held lightweight trackers were updated
	Tracking
)

// String implements fmt.Stringer
func (s Status) String() string {
	switch s {
	case Waiting:
		return "Waiting"
	case Detecting:
		return "Detecting"
	case Tracking:
		return "Tracking"
	}
	return "Unknown"
}
