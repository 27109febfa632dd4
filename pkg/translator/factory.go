package translator

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// EngineType names a translation provider.
type EngineType string

const (
	EngineGoogle         EngineType = "google"
	EngineLibreTranslate EngineType = "libretranslate"
	EngineAnthropic      EngineType = "anthropic"
)

// Config holds configuration for creating a Translator instance.
type Config struct {
	Engine EngineType
	// APIKey is required by anthropic and optional for libretranslate.
	APIKey string
	// Model is only used by anthropic.
	Model string
	// BaseURL overrides the provider endpoint.
	BaseURL string
	// Proxy is only used by google.
	Proxy   string
	Timeout time.Duration
	// RatePerMinute caps provider calls; 0 disables limiting.
	RatePerMinute int
	// CacheTTL enables the translation cache when positive.
	CacheTTL     time.Duration
	CacheMaxCost int64
	Logger       *logrus.Logger
}

// NewTranslator builds the configured provider and wraps it with the rate
// limiter and the cache. The cache sits outermost so hits never wait on the
// limiter.
func NewTranslator(cfg Config) (Translator, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	cfg.Logger.WithFields(logrus.Fields{
		"engine":   cfg.Engine,
		"base_url": cfg.BaseURL,
	}).Debug("Creating translator instance")

	var t Translator
	switch cfg.Engine {
	case EngineGoogle:
		t = NewGoogle(cfg)
	case EngineLibreTranslate:
		t = NewLibreTranslate(cfg)
	case EngineAnthropic:
		a, err := NewAnthropic(cfg)
		if err != nil {
			return nil, err
		}
		t = a
	default:
		return nil, fmt.Errorf("unknown translation engine: %s", cfg.Engine)
	}

	if cfg.RatePerMinute > 0 {
		t = NewLimited(t, cfg.RatePerMinute)
	}

	if cfg.CacheTTL > 0 {
		if cfg.CacheMaxCost <= 0 {
			cfg.CacheMaxCost = 1e7
		}
		cached, err := NewCached(t, cfg.CacheMaxCost, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		t = cached
	}

	return t, nil
}

// ParseEngineType parses a string into an EngineType.
func ParseEngineType(s string) (EngineType, error) {
	switch EngineType(strings.ToLower(strings.TrimSpace(s))) {
	case EngineGoogle:
		return EngineGoogle, nil
	case EngineLibreTranslate:
		return EngineLibreTranslate, nil
	case EngineAnthropic:
		return EngineAnthropic, nil
	default:
		return "", fmt.Errorf("unknown engine type: %s (supported: google, libretranslate, anthropic)", s)
	}
}
