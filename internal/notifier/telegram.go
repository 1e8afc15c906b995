// Package notifier delivers analysis reports and watchlist alerts to a
// Telegram chat.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier pushes formatted alert text to the user. The scheduler only
// needs delivery with retry; polling stays on the concrete type.
type Notifier interface {
	Send(text string) error
	SendWithRetry(ctx context.Context, text string) error
}

// TelegramNotifier sends HTML-formatted messages to one configured chat via
// the Bot API.
type TelegramNotifier struct {
	BotToken   string
	ChatID     string
	APIBase    string
	MaxRetries int
	Client     *http.Client
}

// NewTelegramNotifier creates a notifier with optional proxy support. The
// retry bound comes from config so noisy watchlists can tune it down.
func NewTelegramNotifier(botToken, chatID, proxyURL string, maxRetries int) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken:   botToken,
		ChatID:     chatID,
		APIBase:    defaultAPIBase,
		MaxRetries: maxRetries,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (t *TelegramNotifier) method(name string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.APIBase, t.BotToken, name)
}

// sendMessage is the Bot API request body. Reports use <b> markup, so
// parse_mode must stay HTML; link previews would drown the factor tables.
type sendMessage struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// apiResponse is the envelope every Bot API call returns. A 200 status with
// ok=false still means the message was not delivered.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Send delivers one message to the configured chat.
func (t *TelegramNotifier) Send(text string) error {
	body, err := json.Marshal(sendMessage{
		ChatID:                t.ChatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	resp, err := t.Client.Post(t.method("sendMessage"), "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API status %d: %s", resp.StatusCode, string(respBody))
	}
	var api apiResponse
	if err := json.Unmarshal(respBody, &api); err == nil && !api.OK {
		return fmt.Errorf("telegram API rejected message: %s", api.Description)
	}
	return nil
}

// SendWithRetry sends with exponential backoff, bounded by MaxRetries
// additional attempts.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string) error {
	var lastErr error
	for attempt := 0; ; attempt++ {
		if lastErr = t.Send(text); lastErr == nil {
			return nil
		}
		if attempt >= t.MaxRetries {
			return fmt.Errorf("all %d attempts failed: %w", attempt+1, lastErr)
		}
		backoff := time.Duration(1<<uint(attempt)) * time.Second
		log.Printf("[WARN] telegram send failed (attempt %d/%d): %v, retrying in %v",
			attempt+1, t.MaxRetries+1, lastErr, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
}
