package scheduler

import (
	"github.com/hamed0406/uptimebot/internal/domain"
	"github.com/hamed0406/uptimebot/internal/notify"
)

// Event classifies one check against the status it replaced.
type Event int

const (
	EventUnchanged Event = iota
	EventFirstCheck
	EventChanged
)

func (e Event) String() string {
	switch e {
	case EventFirstCheck:
		return "first_check"
	case EventChanged:
		return "transition"
	default:
		return "unchanged"
	}
}

// Decide compares the previous status with a fresh result. A target seen for
// the first time always notifies, whichever way it went.
func Decide(before domain.Status, up bool) Event {
	switch {
	case !before.Known():
		return EventFirstCheck
	case before != domain.StatusFromBool(up):
		return EventChanged
	default:
		return EventUnchanged
	}
}

// Notifies reports whether the event produces a message.
func (e Event) Notifies() bool { return e != EventUnchanged }

// Message renders the notification text for a notifying event.
func (e Event) Message(t domain.Target, up bool) string {
	switch e {
	case EventFirstCheck:
		return notify.FirstCheckMessage(t, up)
	case EventChanged:
		return notify.TransitionMessage(t, up)
	default:
		return ""
	}
}
