package repo

import (
	"time"

	"github.com/hamed0406/uptimebot/internal/domain"
)

// StateStore holds the last known status of every registered target.
// The scheduler is the only writer; command and HTTP handlers only read.
type StateStore interface {
	// Record stores the outcome of a check and returns the status it replaced.
	// ok is false when url is not a registered target; nothing is stored then.
	Record(url string, up bool, at time.Time) (before domain.Status, ok bool)
	Get(url string) (domain.TargetState, bool)
	// Snapshot returns a copy of every state in registry order.
	Snapshot() []domain.TargetState
}
