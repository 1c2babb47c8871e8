package counter

// Tally holds the running totals of zone crossings for a run
type Tally struct {
	in  int
	out int
}

// Add increments the total matching the event direction
func (t *Tally) Add(evt CrossingEvent) {
	switch evt.Direction {
	case In:
		t.in++
	case Out:
		t.out++
	}
}

// In returns the number of objects counted entering
func (t *Tally) In() int {
	return t.in
}

// Out returns the number of objects counted leaving
func (t *Tally) Out() int {
	return t.out
}
