package completion

import (
	"context"
	"fmt"
	"log/slog"

	"resumeBuilder/internal/config"
)

// NewServiceFromConfig picks the upstream named by cfg.Provider. A missing key
// yields a service that fails every request rather than an error, so the
// proxy still starts and reports the problem per call.
func NewServiceFromConfig(ctx context.Context, cfg config.CompletionConfig, logger *slog.Logger) (*Service, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		missing := &NotConfiguredError{EnvVar: "GEMINI_API_KEY"}
		if cfg.GeminiKey == "" {
			return NewService(nil, missing, logger), nil
		}
		upstream, err := NewGemini(ctx, cfg.GeminiKey, cfg.GeminiModel, cfg.MaxTokens, float32(cfg.Temperature))
		if err != nil {
			return nil, err
		}
		return NewService(upstream, missing, logger), nil
	case config.ProviderOpenRouter, "":
		missing := &NotConfiguredError{EnvVar: "OPENROUTER_API_KEY"}
		if cfg.APIKey == "" {
			return NewService(nil, missing, logger), nil
		}
		upstream := NewOpenRouter(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens, float32(cfg.Temperature),
			cfg.Title, cfg.Referer, cfg.Timeout, logger)
		return NewService(upstream, missing, logger), nil
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}
