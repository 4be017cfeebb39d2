package document

import (
	"context"
	"io"
	"log/slog"
	"time"

	"studynotes/common"
)

const (
	opRender  = "render document"
	opDeliver = "deliver document"

	// ContentType of every rendered document.
	ContentType = "application/pdf"
)

// Attachment is a rendered document ready to be streamed to a client.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// DeliverFunc streams an attachment to its recipient. It must fully consume
// or abandon Body before returning; the artifact is deleted afterwards.
type DeliverFunc func(Attachment) error

// ComposeFunc writes a complete document for content.
type ComposeFunc func(w io.Writer, content string, createdAt time.Time) error

// Renderer turns text into a transient PDF, hands it to a DeliverFunc and
// removes it once delivery has finished or failed.
type Renderer struct {
	store   Store
	timeout time.Duration
	logger  *slog.Logger
	compose ComposeFunc
	now     func() time.Time
	onState func(key string, state ArtifactState)
}

// RendererOption customizes a Renderer.
type RendererOption func(*Renderer)

// WithComposer replaces the PDF composer.
func WithComposer(fn ComposeFunc) RendererOption {
	return func(r *Renderer) { r.compose = fn }
}

// WithClock overrides the time source used for attachment names.
func WithClock(now func() time.Time) RendererOption {
	return func(r *Renderer) { r.now = now }
}

// WithStateObserver registers a callback invoked on every artifact state change.
func WithStateObserver(fn func(key string, state ArtifactState)) RendererOption {
	return func(r *Renderer) { r.onState = fn }
}

// NewRenderer returns a Renderer writing to store. A non-positive timeout
// disables the render deadline.
func NewRenderer(store Store, timeout time.Duration, logger *slog.Logger, opts ...RendererOption) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{
		store:   store,
		timeout: timeout,
		logger:  logger,
		compose: Compose,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render composes content into a new artifact and passes it to deliver. The
// artifact is deleted exactly once on every return path, including render
// failure, delivery failure and caller cancellation.
func (r *Renderer) Render(ctx context.Context, content string, deliver DeliverFunc) error {
	if content == "" {
		return common.New(common.ErrValidation, opRender, "No content provided.")
	}

	created := r.now()
	a := newArtifact(r.store, NewArtifactKey(), r.logger)
	r.transition(a, StateCreated)
	defer func() {
		if err := a.Release(ctx); err != nil {
			r.logger.Warn("artifact cleanup failed", "key", a.Key, "error", err)
		}
		r.observe(a.Key, StateDeleted)
	}()

	renderCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		renderCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	if _, err := r.store.Write(renderCtx, a.Key, func(w io.Writer) error {
		return r.compose(w, content, created)
	}); err != nil {
		r.logger.Error("render failed", "key", a.Key, "error", err)
		return common.Wrap(common.ErrRender, opRender, err)
	}

	// The render deadline covers compose and persist only; streaming lasts as
	// long as the client keeps reading.
	body, size, err := r.store.Open(ctx, a.Key)
	if err != nil {
		r.logger.Error("open rendered artifact failed", "key", a.Key, "error", err)
		return common.Wrap(common.ErrRender, opRender, err)
	}
	defer body.Close()

	r.transition(a, StateStreaming)
	err = deliver(Attachment{
		Filename:    AttachmentName(created),
		ContentType: ContentType,
		Size:        size,
		Body:        body,
	})
	if err != nil {
		r.transition(a, StateDeliveryFailed)
		r.logger.Error("delivery failed", "key", a.Key, "error", err)
		return common.Wrap(common.ErrDelivery, opDeliver, err)
	}

	r.transition(a, StateDelivered)
	r.logger.Info("document delivered",
		"key", a.Key,
		"bytes", size,
		"elapsed", time.Since(start),
	)
	return nil
}

func (r *Renderer) transition(a *Artifact, s ArtifactState) {
	a.setState(s)
	r.observe(a.Key, s)
}

func (r *Renderer) observe(key string, s ArtifactState) {
	if r.onState != nil {
		r.onState(key, s)
	}
}
