package translator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nguyenvanduocit/zhtrans/pkg/detector"
)

func TestAnthropicTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/messages") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-3-5-sonnet-20240620",
			"content": [{"type": "text", "text": "Hello"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 12, "output_tokens": 1}
		}`))
	}))
	defer srv.Close()

	a, err := NewAnthropic(Config{APIKey: "test", BaseURL: srv.URL, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("NewAnthropic() error = %v", err)
	}

	got, err := a.Translate(context.Background(), "你好", detector.Chinese, detector.English)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "Hello" {
		t.Errorf("Translate() = %q, want %q", got, "Hello")
	}
}

func TestAnthropicTranslateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"type": "error", "error": {"type": "api_error", "message": "internal"}}`))
	}))
	defer srv.Close()

	a, err := NewAnthropic(Config{APIKey: "test", BaseURL: srv.URL, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("NewAnthropic() error = %v", err)
	}

	_, err = a.Translate(context.Background(), "hello", detector.English, detector.Chinese)
	if !IsServiceError(err) {
		t.Errorf("Translate() error = %v, want ServiceError", err)
	}
}

func TestNewAnthropicDefaultTimeout(t *testing.T) {
	a, err := NewAnthropic(Config{APIKey: "test", Logger: quietLogger()})
	if err != nil {
		t.Fatalf("NewAnthropic() error = %v", err)
	}
	if a.timeout != DefaultAnthropicTimeout {
		t.Errorf("timeout = %v, want %v", a.timeout, DefaultAnthropicTimeout)
	}
}

func TestAnthropicTranslateStalledServer(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	a, err := NewAnthropic(Config{APIKey: "test", BaseURL: srv.URL, Timeout: 100 * time.Millisecond, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("NewAnthropic() error = %v", err)
	}

	done := make(chan error, 1)
	go func() {
		// The caller's context never ends, as in the interactive session.
		_, err := a.Translate(context.WithoutCancel(context.Background()), "hello", detector.English, detector.Chinese)
		done <- err
	}()

	select {
	case err := <-done:
		if !IsServiceError(err) {
			t.Errorf("Translate() error = %v, want ServiceError", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Translate() did not return after the timeout")
	}
}

func TestCreateTranslationSystem(t *testing.T) {
	system := createTranslationSystem(detector.English, detector.Chinese)
	if !strings.Contains(system, "from English to") {
		t.Errorf("system prompt does not name the source language: %s", system)
	}
}
