package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hamed0406/uptimebot/internal/domain"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		before domain.Status
		up     bool
		want   Event
	}{
		{domain.StatusUnknown, true, EventFirstCheck},
		{domain.StatusUnknown, false, EventFirstCheck},
		{domain.StatusUp, false, EventChanged},
		{domain.StatusDown, true, EventChanged},
		{domain.StatusUp, true, EventUnchanged},
		{domain.StatusDown, false, EventUnchanged},
	}
	for _, tt := range tests {
		got := Decide(tt.before, tt.up)
		assert.Equal(t, tt.want, got, "before=%v up=%v", tt.before, tt.up)
		assert.Equal(t, tt.want != EventUnchanged, got.Notifies())
	}
}

func TestEvent_Message(t *testing.T) {
	tgt := domain.Target{Name: "Primary", URL: "https://example.test/"}

	assert.Contains(t, EventFirstCheck.Message(tgt, true), "is UP (first check)")
	assert.Contains(t, EventFirstCheck.Message(tgt, false), "UNREACHABLE! (first check)")
	assert.Contains(t, EventChanged.Message(tgt, false), "became unreachable")
	assert.Contains(t, EventChanged.Message(tgt, true), "reachable again")
	assert.Empty(t, EventUnchanged.Message(tgt, true))
	assert.Equal(t, "first_check", EventFirstCheck.String())
}
