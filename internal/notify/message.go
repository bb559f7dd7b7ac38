package notify

import (
	"fmt"
	"html"
	"time"

	"github.com/hamed0406/uptimebot/internal/domain"
)

// All messages are HTML formatted; target fields are escaped.

func FirstCheckMessage(t domain.Target, up bool) string {
	if up {
		return fmt.Sprintf("✅ %s is UP (first check)", label(t))
	}
	return fmt.Sprintf("⚠️ %s is UNREACHABLE! (first check)", label(t))
}

func TransitionMessage(t domain.Target, up bool) string {
	if up {
		return fmt.Sprintf("✅ %s is reachable again!", label(t))
	}
	return fmt.Sprintf("⚠️ %s became unreachable!", label(t))
}

func TestMessage(now time.Time) string {
	return fmt.Sprintf("🔔 Test notification from the uptime monitor (%s)", now.UTC().Format(time.RFC3339))
}

func label(t domain.Target) string {
	return fmt.Sprintf("<b>%s</b> %s", html.EscapeString(t.Name), html.EscapeString(t.URL))
}
