package probe

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/hamed0406/uptimebot/internal/domain"
)

// Reasons reported by Classifier.Evaluate.
const (
	ReasonOK             = "ok"
	ReasonTransportError = "transport_error"
	ReasonHTTPStatus     = "http_status"
	ReasonBodyTooShort   = "body_too_short"
	ReasonKeywordMissing = "keyword_missing"
)

// Classifier decides UP/DOWN from page content rather than status alone, so
// placeholder and parking pages served with 200 still count as DOWN.
type Classifier struct {
	MinBodyLength int
	Keyword       string
}

func NewClassifier(minBodyLength int, keyword string) Classifier {
	return Classifier{MinBodyLength: minBodyLength, Keyword: strings.ToLower(strings.TrimSpace(keyword))}
}

func (c Classifier) Classify(r Response) bool {
	return c.Evaluate(r).Up
}

// Evaluate applies the rules in order; the first failing rule decides.
func (c Classifier) Evaluate(r Response) domain.CheckResult {
	switch {
	case r.Err != nil:
		return domain.CheckResult{Reason: ReasonTransportError}
	case r.StatusCode != http.StatusOK:
		return domain.CheckResult{Reason: ReasonHTTPStatus}
	case utf8.RuneCountInString(r.Body) < c.MinBodyLength:
		return domain.CheckResult{Reason: ReasonBodyTooShort}
	case !strings.Contains(strings.ToLower(r.Body), strings.ToLower(c.Keyword)):
		return domain.CheckResult{Reason: ReasonKeywordMissing}
	}
	return domain.CheckResult{Up: true, Reason: ReasonOK}
}
