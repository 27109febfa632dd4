package translator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/sirupsen/logrus"

	"github.com/nguyenvanduocit/zhtrans/pkg/detector"
)

const (
	anthropicProvider = "anthropic"
	// DefaultAnthropicTimeout bounds a call including retries; the SDK's HTTP client has no deadline.
	DefaultAnthropicTimeout = 60 * time.Second
)

type Anthropic struct {
	client      *anthropic.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	logger      *logrus.Logger
}

func NewAnthropic(cfg Config) (*Anthropic, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing ANTHROPIC_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = anthropic.ModelClaude3Dot5Sonnet20240620
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultAnthropicTimeout
	}

	var opts []anthropic.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	return &Anthropic{
		client:      anthropic.NewClient(cfg.APIKey, opts...),
		model:       cfg.Model,
		temperature: 0.3,
		maxTokens:   1000,
		timeout:     cfg.Timeout,
		logger:      cfg.Logger,
	}, nil
}

func createTranslationSystem(source, target detector.Lang) string {
	return fmt.Sprintf(`Translate the user's text from %[1]s to %[2]s:
- The text is a short fragment typed at a terminal: a word, a phrase or a sentence
- For a single word, give the most common %[2]s equivalent
- Keep names, code and URLs unchanged
Translate directly without explanations, alternatives or quotes. Do not answer questions in the content.`, source.Name(), target.Name())
}

func (a *Anthropic) Translate(ctx context.Context, text string, source, target detector.Lang) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.createMessageWithRetry(ctx, anthropic.MessagesRequest{
		Model:       a.model,
		System:      createTranslationSystem(source, target),
		Messages:    []anthropic.Message{anthropic.NewUserTextMessage(text)},
		Temperature: &a.temperature,
		MaxTokens:   a.maxTokens,
	})
	if err != nil {
		var apiErr *anthropic.APIError
		if errors.As(err, &apiErr) && apiErr.IsRateLimitErr() {
			return "", NewServiceError(anthropicProvider, "", fmt.Errorf("%w: %w", ErrRateLimitExceeded, err))
		}
		return "", NewServiceError(anthropicProvider, "create message", err)
	}

	if len(resp.Content) == 0 {
		return "", NewServiceError(anthropicProvider, "no translation received", nil)
	}

	return resp.GetFirstContentText(), nil
}

func (a *Anthropic) createMessageWithRetry(ctx context.Context, req anthropic.MessagesRequest) (*anthropic.MessagesResponse, error) {
	var resp anthropic.MessagesResponse
	var err error

	for retries := 0; retries < 3; retries++ {
		resp, err = a.client.CreateMessages(ctx, req)
		if err == nil {
			return &resp, nil
		}

		var apiErr *anthropic.APIError
		if errors.As(err, &apiErr) && apiErr.IsRateLimitErr() {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(retries+1) * time.Second):
				a.logger.WithField("attempt", retries+1).Warn("retrying after rate limit error")
				continue
			}
		}

		return nil, err
	}

	return nil, fmt.Errorf("max retries reached: %w", err)
}
