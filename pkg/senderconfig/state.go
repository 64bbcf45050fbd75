package senderconfig

import "time"

// State describes which value Resolve serves without contacting the source.
type State int

const (
	// StateUnset: no usable snapshot, the fallback name is served.
	StateUnset State = iota
	// StateStale: a snapshot exists but is older than the TTL.
	StateStale
	// StateFresh: the snapshot is younger than the TTL.
	StateFresh
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	default:
		return "unset"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is the last successfully fetched sender configuration.
// It is never mutated, only replaced.
type Snapshot struct {
	FromName  string    `json:"fromName"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Age returns how long ago the snapshot was fetched.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}
