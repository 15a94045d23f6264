package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/samirrijal/touristapi/internal/core/domain"
	"github.com/samirrijal/touristapi/internal/core/ports"
	"github.com/samirrijal/touristapi/internal/pkg/logging"
	"github.com/samirrijal/touristapi/internal/pkg/metrics"
)

// Summary budgets.
const (
	ShortLines    = 5
	ShortMaxChars = 700
	MoreLines     = 15
	MoreMaxChars  = 3000
)

// ErrGeneratorDisabled is returned by NoopGenerator.
var ErrGeneratorDisabled = errors.New("text generator disabled")

// NoopGenerator stands in for the generative backend when none is configured.
type NoopGenerator struct{}

func (NoopGenerator) Enabled() bool { return false }

func (NoopGenerator) Condense(context.Context, string, string, int, int) (string, error) {
	return "", ErrGeneratorDisabled
}

func (NoopGenerator) Translate(context.Context, string, string) (string, error) {
	return "", ErrGeneratorDisabled
}

func (NoopGenerator) Blurb(context.Context, *domain.PlaceRecord, string) (string, error) {
	return "", ErrGeneratorDisabled
}

// Condenser produces line- and length-bounded text, preferring the generator
// and falling back to sentence clipping.
type Condenser struct {
	gen ports.TextGenerator
}

// NewCondenser creates a Condenser. A nil generator behaves like NoopGenerator.
func NewCondenser(gen ports.TextGenerator) *Condenser {
	if gen == nil {
		gen = NoopGenerator{}
	}
	return &Condenser{gen: gen}
}

// GeneratorEnabled reports whether a generative backend is configured.
func (c *Condenser) GeneratorEnabled() bool {
	return c.gen.Enabled()
}

// Condense returns text reduced to about lines sentences in lang, at most
// maxChars runes, one sentence per line.
func (c *Condenser) Condense(ctx context.Context, text, lang string, lines, maxChars int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	out, err := c.gen.Condense(ctx, text, lang, lines, maxChars)
	out = strings.TrimSpace(out)
	switch {
	case err != nil:
		if !errors.Is(err, ErrGeneratorDisabled) {
			logging.FromContext(ctx).Debug("condense failed, using fallback", "lang", lang, "error", err)
		}
		out = ""
	case out != "":
		out = Truncate(out, maxChars)
	}

	if out == "" {
		metrics.CondenserPath.WithLabelValues("fallback").Inc()
		out = Shorten(text, lines, maxChars)
	} else {
		metrics.CondenserPath.WithLabelValues("generator").Inc()
	}

	return EnforceLines(out, lines)
}

// Translate returns text in targetLang and true, or the unchanged text and
// false when no translation was produced. Empty input yields "".
func (c *Condenser) Translate(ctx context.Context, text, targetLang string) (string, bool) {
	if text == "" {
		return "", true
	}

	out, err := c.gen.Translate(ctx, text, targetLang)
	if err != nil {
		if !errors.Is(err, ErrGeneratorDisabled) {
			logging.FromContext(ctx).Debug("translate failed, keeping original", "lang", targetLang, "error", err)
		}
		metrics.Translations.WithLabelValues("unchanged").Inc()
		return text, false
	}
	if out = strings.TrimSpace(out); out == "" {
		metrics.Translations.WithLabelValues("unchanged").Inc()
		return text, false
	}

	metrics.Translations.WithLabelValues("translated").Inc()
	return out, true
}

// Blurb writes a short travel blurb for place, or returns nil.
func (c *Condenser) Blurb(ctx context.Context, place *domain.PlaceRecord, lang string) *string {
	out, err := c.gen.Blurb(ctx, place, lang)
	if err != nil {
		if !errors.Is(err, ErrGeneratorDisabled) {
			logging.FromContext(ctx).Debug("blurb failed", "pageid", place.PageID, "error", err)
		}
		return nil
	}
	if out = strings.TrimSpace(out); out == "" {
		return nil
	}
	return &out
}
