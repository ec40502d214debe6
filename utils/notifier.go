package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/closetly/styleloop/config"
)

var notifierHTTP = &http.Client{Timeout: 5 * time.Second}

// NotifyPersonalization posts unlock/progression events to the downstream
// personalization service. Best effort: failures are logged and swallowed so
// they never fail the primary operation.
func NotifyPersonalization(ctx context.Context, event string, payload interface{}) {
	cfg := config.Get()
	if cfg.PersonalizationWebhookURL == "" {
		return
	}

	body, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"payload": payload,
		"sent_at": time.Now().UTC(),
	})
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.PersonalizationWebhookURL, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := notifierHTTP.Do(req)
	if err != nil {
		if Sugar != nil {
			Sugar.Warnf("personalization notify failed event=%s err=%v", event, err)
		}
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 && Sugar != nil {
		Sugar.Warnf("personalization notify rejected event=%s status=%d", event, resp.StatusCode)
	}
}
