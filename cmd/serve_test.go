package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/nguyenvanduocit/zhtrans/pkg/detector"
	"github.com/nguyenvanduocit/zhtrans/pkg/session"
	"github.com/nguyenvanduocit/zhtrans/pkg/translator"
)

type stubTranslator struct {
	err error
}

func (s stubTranslator) Translate(_ context.Context, text string, _, target detector.Lang) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "[" + string(target) + "] " + text, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestServeTranslate(t *testing.T) {
	tests := []struct {
		name       string
		tr         stubTranslator
		body       string
		wantStatus int
		want       *session.Result
	}{
		{
			name:       "english to chinese",
			body:       `{"text":" hello "}`,
			wantStatus: http.StatusOK,
			want:       &session.Result{Text: "hello", Translation: "[zh] hello", Direction: "en->zh", Source: detector.English, Target: detector.Chinese},
		},
		{
			name:       "chinese to english",
			body:       `{"text":"你好"}`,
			wantStatus: http.StatusOK,
			want:       &session.Result{Text: "你好", Translation: "[en] 你好", Direction: "zh->en", Source: detector.Chinese, Target: detector.English},
		},
		{name: "empty text", body: `{"text":"   "}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", body: `{"text":`, wantStatus: http.StatusBadRequest},
		{
			name:       "provider failure",
			tr:         stubTranslator{err: translator.NewServiceError("stub", "unavailable", nil)},
			body:       `{"text":"hello"}`,
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unexpected failure",
			tr:         stubTranslator{err: errors.New("bad state")},
			body:       `{"text":"hello"}`,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newServer(tt.tr, quietLogger())

			req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.want == nil {
				return
			}

			var got session.Result
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if got != *tt.want {
				t.Errorf("response = %+v, want %+v", got, *tt.want)
			}
		})
	}
}

func TestServeHealth(t *testing.T) {
	app := newServer(stubTranslator{}, quietLogger())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}
