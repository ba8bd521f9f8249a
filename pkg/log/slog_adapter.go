package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to follow a build in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Errors are logged at Warn level,
// everything else at Debug level.
func (a *SlogAdapter) Log(event Event) {
	level := slog.LevelDebug
	attrs := []slog.Attr{
		slog.String("build_id", event.BuildID),
		slog.String("kind", event.Kind.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Path != "" {
		attrs = append(attrs, slog.String("document", event.Path))
	}

	switch {
	case event.Document != nil:
		attrs = append(attrs, slog.String("stage", event.Document.Stage.String()))
		if event.Document.Stage == StageEnd {
			attrs = append(attrs, slog.Int("elements", event.Document.Elements))
		}
		if event.Document.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.Document.Duration))
		}
	case event.Element != nil:
		attrs = append(attrs,
			slog.String("stage", event.Element.Stage.String()),
			slog.String("element", event.Element.Name),
		)
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error_msg", event.Error.Message))
		if event.Error.Class != "" {
			attrs = append(attrs, slog.String("error_class", event.Error.Class))
		}
		if event.Error.Line > 0 {
			attrs = append(attrs,
				slog.Int("line", event.Error.Line),
				slog.Int("column", event.Error.Column),
			)
		}
	case event.Stats != nil:
		attrs = append(attrs, slog.Duration("duration", event.Stats.Duration))
		for entity, n := range event.Stats.Counts {
			attrs = append(attrs, slog.Int(entity, n))
		}
	}

	a.logger.LogAttrs(context.Background(), level, "build", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
