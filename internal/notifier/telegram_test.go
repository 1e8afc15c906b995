package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testNotifier(apiBase string, maxRetries int) *TelegramNotifier {
	return &TelegramNotifier{
		BotToken:   "test-token",
		ChatID:     "42",
		APIBase:    apiBase,
		MaxRetries: maxRetries,
		Client:     &http.Client{Timeout: 5 * time.Second},
	}
}

func TestSend(t *testing.T) {
	var got sendMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "bottest-token/sendMessage") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := testNotifier(srv.URL, 0)
	if err := n.Send("<b>hello</b>"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if got.ChatID != "42" || got.Text != "<b>hello</b>" {
		t.Errorf("payload = %+v", got)
	}
	if got.ParseMode != "HTML" || !got.DisableWebPagePreview {
		t.Errorf("payload options = %+v", got)
	}
}

func TestSendRejectedByAPI(t *testing.T) {
	// A 200 status with ok=false still means the message was dropped.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ok":false,"description":"bot was blocked by the user"}`))
	}))
	defer srv.Close()

	n := testNotifier(srv.URL, 0)
	err := n.Send("hi")
	if err == nil {
		t.Fatal("expected error on ok=false")
	}
	if !strings.Contains(err.Error(), "blocked") {
		t.Errorf("error %q should carry the API description", err)
	}
}

func TestSendWithRetryEventualSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := testNotifier(srv.URL, 2)
	if err := n.SendWithRetry(context.Background(), "hi"); err != nil {
		t.Fatalf("SendWithRetry failed: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("got %d calls, want 2", calls.Load())
	}
}

func TestSendWithRetryExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	// Zero retries: one attempt, immediate failure, no backoff sleep.
	n := testNotifier(srv.URL, 0)
	if err := n.SendWithRetry(context.Background(), "hi"); err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls.Load() != 1 {
		t.Errorf("got %d calls, want 1", calls.Load())
	}
}

func TestDispatchFiltersByChat(t *testing.T) {
	n := testNotifier("http://unused", 0)
	handler := func(cmd string) string { return "reply:" + cmd }

	msg := func(chatID int64, text string) update {
		var u update
		u.Message = &struct {
			Text string `json:"text"`
			Chat struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		}{Text: text}
		u.Message.Chat.ID = chatID
		return u
	}

	if got := n.dispatch(msg(42, " /watchlist "), handler); got != "reply:/watchlist" {
		t.Errorf("owner command reply = %q", got)
	}
	if got := n.dispatch(msg(7, "/watchlist"), handler); got != "" {
		t.Errorf("foreign chat reply = %q, want dropped", got)
	}
	if got := n.dispatch(update{}, handler); got != "" {
		t.Errorf("empty update reply = %q, want dropped", got)
	}
}
