// Package completion maps (type, prompt) requests onto an upstream chat model.
package completion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Request 与 Response 是代理的线上格式。
type Request struct {
	Type   Type   `json:"type"`
	Prompt string `json:"prompt"`
}

type Response struct {
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// 这些错误文本直接返回给调用方。
var (
	ErrUnknownType       = errors.New("Invalid generation type")
	ErrNotConfigured     = errors.New("completion provider is not configured")
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// NotConfiguredError names the missing credential.
type NotConfiguredError struct {
	EnvVar string
}

func (e *NotConfiguredError) Error() string { return e.EnvVar + " is not configured" }

func (e *NotConfiguredError) Is(target error) bool { return target == ErrNotConfigured }

// UpstreamError is a non-2xx answer from the provider.
type UpstreamError struct {
	Provider   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error: %d", e.Provider, e.StatusCode)
}

// Upstream is a chat model that answers one system/user exchange.
type Upstream interface {
	Chat(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Service 是补全代理的核心逻辑，HTTP 层只负责编解码。
type Service struct {
	upstream Upstream
	missing  error
	logger   *slog.Logger
}

// NewService wires an upstream. A nil upstream makes every call fail with missing.
func NewService(upstream Upstream, missing error, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if missing == nil {
		missing = &NotConfiguredError{EnvVar: "OPENROUTER_API_KEY"}
	}
	return &Service{upstream: upstream, missing: missing, logger: logger}
}

// Complete builds the prompt pair for req.Type and returns the upstream text.
func (s *Service) Complete(ctx context.Context, req Request) (string, error) {
	if s.upstream == nil {
		return "", s.missing
	}
	prompt, err := BuildPrompt(req.Type, req.Prompt)
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := s.upstream.Chat(ctx, prompt.System, prompt.User)
	logger := s.logger.With(slog.String("type", string(req.Type)), slog.Duration("latency", time.Since(start)))
	if err != nil {
		logger.Error("completion failed", slog.Any("error", err))
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		logger.Error("completion returned empty content")
		return "", ErrMalformedResponse
	}
	logger.Info("completion succeeded", slog.Int("chars", len(text)))
	return text, nil
}
