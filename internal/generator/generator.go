// Package generator runs AI text generation for resume fields.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resumeBuilder/internal/completion"
	"resumeBuilder/internal/errcode"
	"resumeBuilder/internal/metrics"
	"resumeBuilder/internal/notify"
)

// Completer turns a (type, prompt) request into text.
type Completer interface {
	Complete(ctx context.Context, req completion.Request) (string, error)
}

// Generator 负责前置检查、状态流转、调用代理与通知。
type Generator struct {
	completer Completer
	tracker   Tracker
	publisher notify.Publisher
	logger    *slog.Logger
}

func New(completer Completer, tracker Tracker, publisher notify.Publisher, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{completer: completer, tracker: tracker, publisher: publisher, logger: logger}
}

// Key scopes a field key to one session.
func Key(scope, field string) string {
	return scope + ":" + field
}

// Run executes job for the session scope. The returned notification has
// already been published; it is also returned so callers can echo it.
//
// Missing context yields ErrMissingInformation without calling the completer.
// A pending field yields ErrAlreadyPending. Any completer or Apply failure
// yields ErrGenerationFailed and leaves the field Failed.
func (g *Generator) Run(ctx context.Context, scope string, job Job) (notify.Notification, error) {
	log := g.logger.With(
		slog.String("session_id", scope),
		slog.String("field", job.Field),
		slog.String("type", string(job.Type)),
	)

	if len(job.Missing) > 0 {
		metrics.ObserveGeneration(string(job.Type), metrics.OutcomeMissing)
		n := notify.Notification{
			Kind:        notify.KindMissingInformation,
			Title:       job.MissingMessage.Title,
			Description: job.MissingMessage.Description,
			Field:       job.Field,
			Code:        errcode.MissingInformation,
			Missing:     job.Missing,
		}
		g.publish(ctx, log, scope, n)
		return n, &MissingInformationError{Fields: job.Missing}
	}

	key := Key(scope, job.Field)
	if err := g.tracker.Begin(ctx, key); err != nil {
		if errors.Is(err, ErrAlreadyPending) {
			metrics.ObserveGeneration(string(job.Type), metrics.OutcomePending)
			return notify.Notification{
				Kind:        notify.KindFailure,
				Title:       "Generation In Progress",
				Description: "A generation for this field is already running.",
				Field:       job.Field,
				Code:        errcode.GenerationPending,
			}, err
		}
		return notify.Notification{}, fmt.Errorf("begin generation: %w", err)
	}

	err := g.complete(ctx, job)
	if ferr := g.tracker.Finish(context.WithoutCancel(ctx), key, err == nil); ferr != nil {
		log.Error("finish generation state failed", slog.Any("error", ferr))
	}

	if err != nil {
		metrics.ObserveGeneration(string(job.Type), metrics.OutcomeFailed)
		log.Warn("generation failed", slog.Any("error", err))
		n := notify.Notification{
			Kind:        notify.KindFailure,
			Title:       job.Failure.Title,
			Description: job.Failure.Description,
			Field:       job.Field,
			Code:        errcode.GenerationFailed,
		}
		g.publish(ctx, log, scope, n)
		return n, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	metrics.ObserveGeneration(string(job.Type), metrics.OutcomeSucceeded)
	log.Info("generation applied")
	n := notify.Notification{
		Kind:        notify.KindSuccess,
		Title:       job.Success.Title,
		Description: job.Success.Description,
		Field:       job.Field,
		Code:        errcode.OK,
	}
	g.publish(ctx, log, scope, n)
	return n, nil
}

// State reports the generation state of field in scope.
func (g *Generator) State(ctx context.Context, scope, field string) (State, error) {
	return g.tracker.State(ctx, Key(scope, field))
}

func (g *Generator) complete(ctx context.Context, job Job) error {
	start := time.Now()
	text, err := g.completer.Complete(ctx, completion.Request{Type: job.Type, Prompt: job.Prompt})
	metrics.ObserveUpstream(string(job.Type), time.Since(start))
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return completion.ErrMalformedResponse
	}
	if job.Apply == nil {
		return nil
	}
	if err := job.Apply(ctx, text); err != nil {
		return fmt.Errorf("apply generated text: %w", err)
	}
	return nil
}

// publish never fails the generation; the HTTP response carries the notification too.
func (g *Generator) publish(ctx context.Context, log *slog.Logger, scope string, n notify.Notification) {
	if g.publisher == nil {
		return
	}
	if err := g.publisher.Publish(ctx, scope, n); err != nil {
		log.Error("publish notification failed", slog.Any("error", err))
	}
}
