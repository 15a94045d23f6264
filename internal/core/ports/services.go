package ports

import (
	"context"

	"github.com/samirrijal/touristapi/internal/core/domain"
)

// TextGenerator is the optional generative-text capability. Callers treat
// any error or empty output as "use the local fallback".
type TextGenerator interface {
	Enabled() bool
	Condense(ctx context.Context, text, lang string, lines, maxChars int) (string, error)
	Translate(ctx context.Context, text, targetLang string) (string, error)
	Blurb(ctx context.Context, place *domain.PlaceRecord, lang string) (string, error)
}

// SpeechSynthesizer turns text into audio.
type SpeechSynthesizer interface {
	Provider() string
	Synthesize(ctx context.Context, text, lang string) (audio []byte, mimeType string, err error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishLookupCompleted(ctx context.Context, event *domain.LookupCompleted) error
}
