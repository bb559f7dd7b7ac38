package probe

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func page(n int, keyword string) string {
	if n < len(keyword) {
		return keyword[:n]
	}
	return keyword + strings.Repeat("x", n-len(keyword))
}

func TestClassifier_Evaluate(t *testing.T) {
	c := NewClassifier(5000, "Betorspin")

	tests := []struct {
		name   string
		resp   Response
		up     bool
		reason string
	}{
		{
			name:   "transport error wins over a perfect body",
			resp:   Response{StatusCode: 200, Body: page(6000, "Betorspin"), Err: errors.New("dial tcp: i/o timeout")},
			reason: ReasonTransportError,
		},
		{
			name:   "non-200 status",
			resp:   Response{StatusCode: 503, Body: page(6000, "Betorspin")},
			reason: ReasonHTTPStatus,
		},
		{
			name:   "redirect status is not 200",
			resp:   Response{StatusCode: 301, Body: page(6000, "Betorspin")},
			reason: ReasonHTTPStatus,
		},
		{
			name:   "body below threshold",
			resp:   Response{StatusCode: 200, Body: page(4000, "Betorspin")},
			reason: ReasonBodyTooShort,
		},
		{
			name:   "keyword missing",
			resp:   Response{StatusCode: 200, Body: strings.Repeat("a", 6000)},
			reason: ReasonKeywordMissing,
		},
		{
			name:   "keyword matched case-insensitively",
			resp:   Response{StatusCode: 200, Body: page(6000, "<title>BETORSPIN casino</title>")},
			up:     true,
			reason: ReasonOK,
		},
		{
			name:   "exactly at threshold is up",
			resp:   Response{StatusCode: 200, Body: page(5000, "betorspin")},
			up:     true,
			reason: ReasonOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Evaluate(tt.resp)
			assert.Equal(t, tt.up, got.Up)
			assert.Equal(t, tt.reason, got.Reason)
			assert.Equal(t, tt.up, c.Classify(tt.resp))
		})
	}
}

func TestClassifier_LengthCountsCharacters(t *testing.T) {
	c := NewClassifier(10, "")
	// 10 two-byte runes: 20 bytes but 10 characters
	assert.True(t, c.Classify(Response{StatusCode: 200, Body: strings.Repeat("ç", 10)}))
	assert.False(t, c.Classify(Response{StatusCode: 200, Body: strings.Repeat("ç", 9)}))
}

func TestClassifier_EmptyKeywordMatchesAnything(t *testing.T) {
	c := NewClassifier(0, "   ")
	assert.True(t, c.Classify(Response{StatusCode: 200}))
}
