package http

import (
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/touristapi/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Lookups  *usecases.LookupService
	Speech   *usecases.SpeechService
	NATS     *nats.Conn
	Settings Settings
}

// Settings carries request defaults and values reported by /v1/config.
type Settings struct {
	DefaultLang    string
	RequestTimeout time.Duration
	Voices         map[string]string
	Version        string
	OpenAPIPath    string
}

func (s Settings) requestTimeout() time.Duration {
	if s.RequestTimeout <= 0 {
		return 60 * time.Second
	}
	return s.RequestTimeout
}
