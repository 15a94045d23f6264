// Package gemini implements ports.TextGenerator on the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/samirrijal/touristapi/internal/core/domain"
	"github.com/samirrijal/touristapi/internal/pkg/metrics"
)

const provider = "gemini"

// maxPassage bounds the source text sent in one prompt, in runes.
const maxPassage = 24000

// Config configures the Gemini client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Generator implements ports.TextGenerator.
type Generator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// New creates a Generator. BaseURL overrides the API host when set.
func New(ctx context.Context, cfg Config) (*Generator, error) {
	config := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Generator{client: client, model: cfg.Model, timeout: timeout}, nil
}

func (g *Generator) Enabled() bool { return true }

// Condense asks for a summary of text in lang of about lines sentences.
func (g *Generator) Condense(ctx context.Context, text, lang string, lines, maxChars int) (string, error) {
	return g.generate(ctx, condensePrompt(text, lang, lines, maxChars))
}

// Translate asks for text rendered in targetLang.
func (g *Generator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return g.generate(ctx, translatePrompt(text, targetLang))
}

// Blurb asks for a short travel blurb built only from place's fields.
func (g *Generator) Blurb(ctx context.Context, place *domain.PlaceRecord, lang string) (string, error) {
	return g.generate(ctx, blurbPrompt(place, lang))
}

func (g *Generator) generate(ctx context.Context, prompt string) (out string, err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.ObserveUpstream(provider, outcome, start)
	}()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	temp := float32(0.3)
	config := &genai.GenerateContentConfig{Temperature: &temp}
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("%w: gemini generation failed: %w", domain.ErrUpstream, err)
	}

	var content strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				content.WriteString(part.Text)
			}
		}
	}

	text := strings.TrimSpace(content.String())
	if text == "" {
		return "", fmt.Errorf("gemini: %w", domain.ErrEmptyResult)
	}
	return text, nil
}

func condensePrompt(text, lang string, lines, maxChars int) string {
	return fmt.Sprintf(
		"Summarize the passage below for a traveler.\n"+
			"Write in language ISO code %s.\n"+
			"Aim for about %d lines, one sentence per line.\n"+
			"Keep total length under %d characters.\n"+
			"Be factual; do not add new facts.\n\n"+
			"PASSAGE:\n%s",
		lang, lines, maxChars, clip(text))
}

func translatePrompt(text, lang string) string {
	return fmt.Sprintf(
		"Translate into language with ISO code '%s'. "+
			"Preserve meaning and names; no extra commentary.\n\n"+
			"TEXT:\n%s",
		lang, clip(text))
}

func blurbPrompt(p *domain.PlaceRecord, lang string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a 3-4 sentence travel blurb in language ISO code %s "+
		"using only the facts below. Do not add new facts.\n\n", lang)
	fmt.Fprintf(&b, "Title: %s\n", p.Title)
	if d := domain.Deref(p.Description); d != "" {
		fmt.Fprintf(&b, "Description: %s\n", d)
	}
	if p.ShortSummary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", clip(p.ShortSummary))
	}
	if u := domain.Deref(p.PageURL); u != "" {
		fmt.Fprintf(&b, "URL: %s\n", u)
	}
	return b.String()
}

func clip(s string) string {
	r := []rune(s)
	if len(r) <= maxPassage {
		return s
	}
	return string(r[:maxPassage])
}
