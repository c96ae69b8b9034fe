package logging

import (
	"context"
	"log/slog"
)

const SubmissionKey = "submission_id"

type submissionKey struct{}

// WithSubmission tags ctx so every record logged with it carries id.
func WithSubmission(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, submissionKey{}, id)
}

func SubmissionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(submissionKey{}).(string)
	return id, ok && id != ""
}

// Handler adds the submission id found in the record's context.
type Handler struct {
	slog.Handler
}

func NewHandler(h slog.Handler) *Handler {
	return &Handler{Handler: h}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := SubmissionID(ctx); ok {
		r.AddAttrs(slog.String(SubmissionKey, id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name)}
}
