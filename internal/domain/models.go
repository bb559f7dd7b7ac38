package domain

import "time"

// Status is the last known reachability of a target. The zero value means the
// target has never been checked.
type Status int

const (
	StatusUnknown Status = iota
	StatusUp
	StatusDown
)

func StatusFromBool(up bool) Status {
	if up {
		return StatusUp
	}
	return StatusDown
}

func (s Status) String() string {
	switch s {
	case StatusUp:
		return "UP"
	case StatusDown:
		return "DOWN"
	default:
		return "unknown"
	}
}

// Known reports whether at least one check has completed.
func (s Status) Known() bool { return s != StatusUnknown }

// Target is a monitored name/URL pair. URL is the key used for state lookups.
type Target struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	URL  string `json:"url" yaml:"url" validate:"required,url,http_protocol"`
}

// TargetState is the in-memory view of one target. LastCheckedAt is zero
// until the first check completes.
type TargetState struct {
	Target        Target
	Status        Status
	LastCheckedAt time.Time
}

// Age returns how long ago the last check finished, or false if never checked.
func (s TargetState) Age(now time.Time) (time.Duration, bool) {
	if s.LastCheckedAt.IsZero() {
		return 0, false
	}
	d := now.Sub(s.LastCheckedAt)
	if d < 0 {
		d = 0
	}
	return d, true
}

// CheckResult is the outcome of classifying a single probe.
type CheckResult struct {
	Up     bool
	Reason string
}
