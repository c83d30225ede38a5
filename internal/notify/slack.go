package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hamed0406/preflight/internal/report"
)

// Slack posts to an incoming-webhook URL. Used by the CLI to announce a
// failed preflight pass when PREFLIGHT_SLACK_WEBHOOK is set.
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

func (s *Slack) Send(ctx context.Context, title, text string) error {
	if s == nil || s.Webhook == "" {
		return errors.New("slack disabled")
	}
	body, _ := json.Marshal(slackPayload{Text: "*" + title + "*\n" + text})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, s.Webhook, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return errors.New("slack non-2xx")
	}
	return nil
}

// FailureMessage renders the summary into webhook title and body. The bool
// is false when there is nothing worth announcing.
func FailureMessage(s *report.Summary) (title, text string, ok bool) {
	failed := s.FailedURLs()
	if len(failed) == 0 {
		return "", "", false
	}
	var b strings.Builder
	for _, u := range failed {
		b.WriteString("• ")
		b.WriteString(u)
		b.WriteString("\n")
	}
	title = "Preflight connectivity check failed"
	return title, b.String(), true
}
