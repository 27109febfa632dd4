package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nguyenvanduocit/zhtrans/pkg/detector"
)

const (
	libreTranslateProvider = "libretranslate"
	// DefaultLibreTranslateURL is the default base URL for a self-hosted LibreTranslate.
	DefaultLibreTranslateURL = "http://localhost:5000"
	// DefaultLibreTranslateTimeout is the default timeout for HTTP requests.
	DefaultLibreTranslateTimeout = 30 * time.Second
)

// LibreTranslate implements Translator against a LibreTranslate server.
type LibreTranslate struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewLibreTranslate creates a new LibreTranslate client.
// cfg.BaseURL should point to the server root (default: http://localhost:5000).
func NewLibreTranslate(cfg Config) *LibreTranslate {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultLibreTranslateURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultLibreTranslateTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	return &LibreTranslate{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: cfg.Logger,
	}
}

type libreTranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type libreTranslateResponse struct {
	TranslatedText string `json:"translatedText"`
	Error          string `json:"error"`
}

func (c *LibreTranslate) Translate(ctx context.Context, text string, source, target detector.Lang) (string, error) {
	c.logger.WithFields(logrus.Fields{
		"source_lang": source,
		"target_lang": target,
		"text_length": len(text),
	}).Debug("Translating text with LibreTranslate")

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(&libreTranslateRequest{
		Q:      text,
		Source: string(source),
		Target: string(target),
		Format: "text",
		APIKey: c.apiKey,
	}); err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := c.baseURL + "/translate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("url", url).Error("Translation request failed")
		return "", NewServiceError(libreTranslateProvider, "request failed", err)
	}
	defer resp.Body.Close()

	duration := time.Since(startTime)

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"response":    string(bodyBytes),
		}).Error("Translation request returned non-OK status")

		var ltErr libreTranslateResponse
		reason := fmt.Sprintf("unexpected status %d", resp.StatusCode)
		if json.Unmarshal(bodyBytes, &ltErr) == nil && ltErr.Error != "" {
			reason = fmt.Sprintf("%s: %s", reason, ltErr.Error)
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return "", NewServiceError(libreTranslateProvider, reason, ErrRateLimitExceeded)
		}
		return "", NewServiceError(libreTranslateProvider, reason, nil)
	}

	var ltResp libreTranslateResponse
	if err := json.NewDecoder(resp.Body).Decode(&ltResp); err != nil {
		return "", NewServiceError(libreTranslateProvider, "decode response", err)
	}

	translated := strings.TrimSpace(ltResp.TranslatedText)
	if translated == "" {
		return "", NewServiceError(libreTranslateProvider, "empty translation received", nil)
	}

	c.logger.WithFields(logrus.Fields{
		"source_lang": source,
		"target_lang": target,
		"duration_ms": duration.Milliseconds(),
	}).Debug("Translation completed successfully")

	return translated, nil
}
