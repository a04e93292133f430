package core

import "time"

// Presence records when each connection was established.
type Presence struct {
	since map[string]time.Time
}

// NewPresence constructs an empty registry.
func NewPresence() *Presence {
	return &Presence{since: make(map[string]time.Time)}
}

// Connect records id as connected at t.
func (p *Presence) Connect(id string, t time.Time) {
	p.since[id] = t
}

// Disconnect forgets id and returns how long it was online as of t.
// The duration is never negative.
func (p *Presence) Disconnect(id string, t time.Time) (time.Duration, bool) {
	start, ok := p.since[id]
	if !ok {
		return 0, false
	}
	delete(p.since, id)
	d := t.Sub(start)
	if d < 0 {
		d = 0
	}
	return d, true
}

// Len returns the number of connected ids.
func (p *Presence) Len() int {
	return len(p.since)
}
