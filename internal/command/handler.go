package command

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/hamed0406/uptimebot/internal/domain"
	"github.com/hamed0406/uptimebot/internal/metrics"
	"github.com/hamed0406/uptimebot/internal/repo"
)

const (
	pingReply    = "🏓 pong — command channel is alive"
	helpReply    = "Available commands:\n/status - current state of every monitored target\n/ping - check that the bot is responding\n/help - show this message"
	unknownReply = "Unknown command. Available: /status, /ping, /help"
)

// Handler renders replies from the state store. It never writes to the store.
type Handler struct {
	Store   repo.StateStore
	Now     func() time.Time
	Metrics *metrics.Metrics
}

func NewHandler(store repo.StateStore, m *metrics.Metrics) *Handler {
	return &Handler{Store: store, Now: time.Now, Metrics: m}
}

// Handle returns the HTML reply for text.
func (h *Handler) Handle(text string) string {
	cmd := Parse(text)
	h.Metrics.IncCommand(cmd.String())

	switch cmd {
	case CommandStatus:
		return h.status()
	case CommandPing:
		return pingReply
	case CommandHelp:
		return helpReply
	default:
		return unknownReply
	}
}

func (h *Handler) status() string {
	states := h.Store.Snapshot()
	if len(states) == 0 {
		return "No targets configured."
	}
	now := h.Now()

	var b strings.Builder
	b.WriteString("📊 <b>Status</b>\n")
	for _, st := range states {
		fmt.Fprintf(&b, "\n• <b>%s</b> → %s\n%s\n%s\n",
			html.EscapeString(st.Target.Name),
			st.Status,
			html.EscapeString(st.Target.URL),
			lastCheck(st, now),
		)
	}
	return b.String()
}

func lastCheck(st domain.TargetState, now time.Time) string {
	age, ok := st.Age(now)
	if !ok {
		return "never checked"
	}
	return fmt.Sprintf("last check: %ds ago", int64(age/time.Second))
}
