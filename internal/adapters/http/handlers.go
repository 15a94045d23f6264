package http

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/touristapi/internal/core/domain"
	"github.com/samirrijal/touristapi/internal/core/usecases"
	"github.com/samirrijal/touristapi/internal/pkg/locale"
	"github.com/samirrijal/touristapi/internal/pkg/logging"
)

// LookupHandler returns the places near lat/lng described in lang.
func LookupHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, msg := parseLookupQuery(c, deps.Settings.DefaultLang)
		if msg != "" {
			return errBadRequest(c, msg)
		}

		res := deps.Lookups.Lookup(c.UserContext(), req)

		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.JSON(res)
	}
}

// parseLookupQuery validates the lookup query string. It returns a non-empty
// message when the request must be rejected.
func parseLookupQuery(c *fiber.Ctx, defaultLang string) (domain.LookupRequest, string) {
	latRaw, lngRaw := c.Query("lat"), c.Query("lng")
	if latRaw == "" || lngRaw == "" {
		return domain.LookupRequest{}, "lat and lng are required"
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return domain.LookupRequest{}, "lat must be a number"
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return domain.LookupRequest{}, "lng must be a number"
	}
	if !(domain.GeoPoint{Lat: lat, Lng: lng}).Valid() {
		return domain.LookupRequest{}, "lat must be within [-90, 90] and lng within [-180, 180]"
	}

	radius, err := queryIntDefault(c, "radius", usecases.DefaultRadius)
	if err != nil || radius < usecases.MinRadius || radius > usecases.MaxRadius {
		return domain.LookupRequest{}, fmt.Sprintf("radius must be between %d and %d meters", usecases.MinRadius, usecases.MaxRadius)
	}
	limit, err := queryIntDefault(c, "limit", usecases.DefaultLimit)
	if err != nil || limit < usecases.MinLimit || limit > usecases.MaxLimit {
		return domain.LookupRequest{}, fmt.Sprintf("limit must be between %d and %d", usecases.MinLimit, usecases.MaxLimit)
	}

	return domain.LookupRequest{
		Lat:          lat,
		Lng:          lng,
		Lang:         locale.Resolve(c.Query("lang"), defaultLang),
		RadiusMeters: radius,
		Limit:        limit,
	}, ""
}

func queryIntDefault(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

type ttsRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// TTSHandler synthesizes speech for the posted text.
func TTSHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req ttsRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if strings.TrimSpace(req.Text) == "" {
			return errBadRequest(c, "text is required")
		}
		if deps.Speech == nil {
			return newError(c, fiber.StatusBadRequest, "synthesis_failed", "speech synthesis is not configured")
		}

		lang := locale.Resolve(req.Lang, deps.Settings.DefaultLang)
		audio, mime, err := deps.Speech.Synthesize(c.UserContext(), req.Text, lang)
		if err != nil {
			logging.FromContext(c.UserContext()).Warn("speech synthesis failed", "lang", lang, "error", err)
			msg := "synthesis failed"
			if errors.Is(err, domain.ErrUnsupportedProvider) {
				msg = "synthesis failed: unsupported provider"
			} else if !errors.Is(err, domain.ErrUpstream) && !errors.Is(err, domain.ErrEmptyResult) {
				msg = err.Error()
			}
			return newError(c, fiber.StatusBadRequest, "synthesis_failed", msg)
		}

		c.Set(fiber.HeaderContentType, mime)
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Send(audio)
	}
}

// Language is one entry of the supported language list.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Languages returns the supported languages sorted by code.
func Languages() []Language {
	out := make([]Language, 0, len(domain.SupportedLanguages))
	for code, name := range domain.SupportedLanguages {
		out = append(out, Language{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// ConfigResponse is the client bootstrap document.
type ConfigResponse struct {
	DefaultLang    string            `json:"default_lang"`
	TTSProvider    string            `json:"tts_provider"`
	SupportedLangs map[string]string `json:"supported_langs"`
	GeminiEnabled  bool              `json:"gemini_enabled"`
	TTSVoices      map[string]string `json:"tts_voices,omitempty"`
}

// ConfigHandler reports defaults and which optional backends are enabled.
func ConfigHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := ConfigResponse{
			DefaultLang:    locale.Resolve("", deps.Settings.DefaultLang),
			SupportedLangs: domain.SupportedLanguages,
			TTSVoices:      deps.Settings.Voices,
		}
		if deps.Speech != nil {
			resp.TTSProvider = deps.Speech.Provider()
		}
		if deps.Lookups != nil {
			resp.GeminiEnabled = deps.Lookups.GeneratorEnabled()
		}
		return c.JSON(resp)
	}
}
