// Package di wires adapters and use cases from configuration.
package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/samirrijal/touristapi/internal/adapters/gemini"
	natsadapter "github.com/samirrijal/touristapi/internal/adapters/nats"
	"github.com/samirrijal/touristapi/internal/adapters/speech"
	"github.com/samirrijal/touristapi/internal/adapters/upstream"
	"github.com/samirrijal/touristapi/internal/adapters/wikidata"
	"github.com/samirrijal/touristapi/internal/adapters/wikipedia"
	"github.com/samirrijal/touristapi/internal/core/ports"
	"github.com/samirrijal/touristapi/internal/core/usecases"
	"github.com/samirrijal/touristapi/internal/pkg/config"
)

// Components holds the wired services shared by the API server and the CLI.
type Components struct {
	Lookups *usecases.LookupService
	Speech  *usecases.SpeechService

	// Publisher is nil when NATS is disabled or unreachable.
	Publisher *natsadapter.Publisher
}

// Options tweaks wiring per binary.
type Options struct {
	// Publish enables the lookup event publisher when NATS is enabled.
	Publish bool
}

// NewComponents builds every adapter from cfg. Optional backends that fail
// to start are logged and left out; lookups still work without them.
func NewComponents(ctx context.Context, cfg *config.Config, opts Options) *Components {
	fetch := upstream.NewFetcher(nil, cfg.Wikipedia.UserAgent)

	wiki := wikipedia.NewClient(wikipedia.Config{
		APIURL:      cfg.Wikipedia.APIURL,
		LangAPIURL:  cfg.Wikipedia.LangAPIURL,
		RESTURL:     cfg.Wikipedia.RESTURL,
		JSONTimeout: seconds(cfg.Wikipedia.JSONTimeout),
		TextTimeout: seconds(cfg.Wikipedia.TextTimeout),
	}, fetch)
	entities := wikidata.NewClient(cfg.Wikipedia.WikidataURL, seconds(cfg.Wikipedia.JSONTimeout), fetch)

	var gen ports.TextGenerator
	if cfg.Gemini.Enabled() {
		g, err := gemini.New(ctx, gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			BaseURL: cfg.Gemini.BaseURL,
			Timeout: seconds(cfg.Gemini.Timeout),
		})
		if err != nil {
			slog.Warn("gemini unavailable, using local summaries", "error", err)
		} else {
			gen = g
		}
	}

	var synth ports.SpeechSynthesizer
	s, err := speech.New(cfg.Speech.Provider, cfg.Speech.Endpoint, seconds(cfg.Speech.Timeout), fetch)
	if err != nil {
		slog.Warn("speech synthesis disabled", "provider", cfg.Speech.Provider, "error", err)
	} else {
		synth = s
	}

	c := &Components{}
	var publisher ports.EventPublisher
	if opts.Publish && cfg.NATS.Enabled {
		p, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, lookup events disabled", "error", err)
		} else {
			c.Publisher = p
			publisher = p
		}
	}

	c.Lookups = usecases.NewLookupService(wiki, wiki, entities, wiki, usecases.NewCondenser(gen), publisher)
	c.Speech = usecases.NewSpeechService(synth)
	return c
}

// Close releases broker connections.
func (c *Components) Close() {
	if c.Publisher != nil {
		c.Publisher.Close()
	}
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
