package translator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/nguyenvanduocit/zhtrans/pkg/detector"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestLibreTranslateTranslate(t *testing.T) {
	var got libreTranslateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translatedText":"你好"}`))
	}))
	defer srv.Close()

	client := NewLibreTranslate(Config{BaseURL: srv.URL, APIKey: "secret", Logger: quietLogger()})
	translated, err := client.Translate(context.Background(), "hello", detector.English, detector.Chinese)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if translated != "你好" {
		t.Errorf("Translate() = %q, want %q", translated, "你好")
	}

	want := libreTranslateRequest{Q: "hello", Source: "en", Target: "zh", Format: "text", APIKey: "secret"}
	if got != want {
		t.Errorf("request = %+v, want %+v", got, want)
	}
}

func TestLibreTranslateErrors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantRateLimit bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"model not loaded"}`},
		{name: "bad request", status: http.StatusBadRequest, body: `not json`},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":"slow down"}`, wantRateLimit: true},
		{name: "malformed success body", status: http.StatusOK, body: `{"translatedText":`},
		{name: "empty translation", status: http.StatusOK, body: `{"translatedText":""}`},
		{name: "blank translation", status: http.StatusOK, body: `{"translatedText":"  \n"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewLibreTranslate(Config{BaseURL: srv.URL, Logger: quietLogger()})
			_, err := client.Translate(context.Background(), "hello", detector.English, detector.Chinese)
			if !IsServiceError(err) {
				t.Fatalf("Translate() error = %v, want ServiceError", err)
			}
			if got := errors.Is(err, ErrRateLimitExceeded); got != tt.wantRateLimit {
				t.Errorf("errors.Is(err, ErrRateLimitExceeded) = %v, want %v", got, tt.wantRateLimit)
			}
		})
	}
}

func TestLibreTranslateUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewLibreTranslate(Config{BaseURL: url, Logger: quietLogger()})
	_, err := client.Translate(context.Background(), "你好", detector.Chinese, detector.English)
	if !IsServiceError(err) {
		t.Errorf("Translate() error = %v, want ServiceError", err)
	}
}
