package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"
	"time"
)

type Slack struct {
	Webhook string
	Client  *http.Client
}

func NewSlack(webhook string) *Slack {
	if webhook == "" {
		return nil
	}
	return &Slack{
		Webhook: webhook,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type slackPayload struct {
	Text string `json:"text"`
}

// Send posts to the incoming webhook; the webhook already pins the channel,
// so destination is ignored.
func (s *Slack) Send(ctx context.Context, _ string, text string, format Format) error {
	if s == nil || s.Webhook == "" {
		return errors.New("slack disabled")
	}
	if format == FormatHTML {
		text = htmlToMrkdwn(text)
	}
	body, err := json.Marshal(slackPayload{Text: text})
	if err != nil {
		return fmt.Errorf("slack payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Webhook, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("slack non-2xx: %d", resp.StatusCode)
	}
	return nil
}

var tagRe = regexp.MustCompile(`<[^>]*>`)

func htmlToMrkdwn(s string) string {
	s = strings.NewReplacer("<b>", "*", "</b>", "*", "<code>", "`", "</code>", "`").Replace(s)
	return html.UnescapeString(tagRe.ReplaceAllString(s, ""))
}
