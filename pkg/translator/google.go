package translator

import (
	"context"
	"net/url"
	"strings"
	"time"

	googletrans "github.com/Conight/go-googletrans"
	"github.com/sirupsen/logrus"

	"github.com/nguyenvanduocit/zhtrans/pkg/detector"
)

const (
	googleProvider = "google"
	// DefaultGoogleTimeout bounds a single call; the web endpoint has no deadline of its own.
	DefaultGoogleTimeout = 15 * time.Second
)

type googleClient interface {
	Translate(origin, src, dest string) (*googletrans.Translated, error)
}

// Google translates through the public Google Translate web endpoint.
type Google struct {
	client  googleClient
	timeout time.Duration
	logger  *logrus.Logger
}

func NewGoogle(cfg Config) *Google {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultGoogleTimeout
	}

	gc := googletrans.Config{Proxy: cfg.Proxy}
	if cfg.BaseURL != "" {
		gc.ServiceUrls = []string{googleServiceHost(cfg.BaseURL)}
	}

	return &Google{
		client:  googletrans.New(gc),
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// googleServiceHost reduces an endpoint to the bare host name the client
// expects, so both "translate.google.com.hk" and "https://translate.google.com.hk/"
// are accepted.
func googleServiceHost(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if strings.Contains(endpoint, "://") {
		if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
			return u.Host
		}
	}
	return strings.TrimSuffix(endpoint, "/")
}

// googleCode maps a Lang to the code the web endpoint expects.
func googleCode(l detector.Lang) string {
	if l == detector.Chinese {
		return "zh-cn"
	}
	return "en"
}

func (g *Google) Translate(ctx context.Context, text string, source, target detector.Lang) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		res, err := g.client.Translate(text, googleCode(source), googleCode(target))
		if err != nil || res == nil {
			done <- result{err: err}
			return
		}
		done <- result{text: res.Text}
	}()

	select {
	case <-ctx.Done():
		return "", NewServiceError(googleProvider, "request did not complete", ctx.Err())
	case r := <-done:
		if r.err != nil {
			g.logger.WithError(r.err).WithFields(logrus.Fields{
				"source_lang": source,
				"target_lang": target,
			}).Debug("google translate failed")
			return "", NewServiceError(googleProvider, "translate", r.err)
		}
		translated := strings.TrimSpace(r.text)
		if translated == "" {
			return "", NewServiceError(googleProvider, "empty translation received", nil)
		}
		return translated, nil
	}
}
