package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/samirrijal/touristapi/internal/core/domain"
	"github.com/samirrijal/touristapi/internal/core/ports"
	"github.com/samirrijal/touristapi/internal/pkg/logging"
	"github.com/samirrijal/touristapi/internal/pkg/metrics"
)

// Lookup bounds.
const (
	MinRadius     = 100
	MaxRadius     = 30000
	DefaultRadius = 8000
	MinLimit      = 1
	MaxLimit      = 20
	DefaultLimit  = 8
)

var tracer = otel.Tracer("github.com/samirrijal/touristapi/internal/core/usecases")

// LookupService resolves nearby places and enriches them with localized,
// condensed descriptions.
type LookupService struct {
	geo       ports.GeoSearcher
	entities  ports.EntityResolver
	titles    ports.TitleResolver
	content   ports.ContentFetcher
	condenser *Condenser
	publisher ports.EventPublisher
}

// NewLookupService creates a new LookupService. publisher may be nil.
func NewLookupService(
	geo ports.GeoSearcher,
	entities ports.EntityResolver,
	titles ports.TitleResolver,
	content ports.ContentFetcher,
	condenser *Condenser,
	publisher ports.EventPublisher,
) *LookupService {
	if condenser == nil {
		condenser = NewCondenser(nil)
	}
	return &LookupService{
		geo:       geo,
		entities:  entities,
		titles:    titles,
		content:   content,
		condenser: condenser,
		publisher: publisher,
	}
}

// GeneratorEnabled reports whether summaries can come from the generative backend.
func (s *LookupService) GeneratorEnabled() bool {
	return s.condenser.GeneratorEnabled()
}

// Lookup finds places near the requested point and describes them in
// req.Lang. Failures never surface: a failed or empty search, or a search
// whose candidates all lack content, yields an empty result.
func (s *LookupService) Lookup(ctx context.Context, req domain.LookupRequest) domain.LookupResult {
	start := time.Now()
	req = clampRequest(req)

	ctx, span := tracer.Start(ctx, "LookupService.Lookup", trace.WithAttributes(
		attribute.Float64("lookup.lat", req.Lat),
		attribute.Float64("lookup.lng", req.Lng),
		attribute.String("lookup.lang", req.Lang),
		attribute.Int("lookup.radius", req.RadiusMeters),
		attribute.Int("lookup.limit", req.Limit),
	))
	defer span.End()

	log := logging.FromContext(ctx).With("lat", req.Lat, "lng", req.Lng, "lang", req.Lang)

	candidates, err := s.geo.GeoSearch(ctx, req.Lat, req.Lng, req.RadiusMeters, req.Limit)
	if err != nil {
		log.Warn("geosearch failed", "error", err)
		span.RecordError(err)
		metrics.Lookups.WithLabelValues("search_failed").Inc()
		return s.finish(ctx, req, domain.EmptyLookup(), start)
	}
	if len(candidates) == 0 {
		metrics.Lookups.WithLabelValues("empty").Inc()
		return s.finish(ctx, req, domain.EmptyLookup(), start)
	}
	if len(candidates) > req.Limit {
		candidates = candidates[:req.Limit]
	}

	enriched := make([]*domain.PlaceRecord, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(candidates))
	for i, c := range candidates {
		g.Go(func() error {
			enriched[i] = s.enrich(gctx, c, req.Lang)
			return nil
		})
	}
	_ = g.Wait()

	places := make([]domain.PlaceRecord, 0, len(enriched))
	for _, p := range enriched {
		if p != nil {
			places = append(places, *p)
		}
	}
	if len(places) == 0 {
		log.Info("no candidate had usable content", "candidates", len(candidates))
		metrics.Lookups.WithLabelValues("empty").Inc()
		return s.finish(ctx, req, domain.EmptyLookup(), start)
	}

	best := &places[SelectBest(places)]
	best.AIBlurb = s.condenser.Blurb(ctx, best, req.Lang)

	metrics.Lookups.WithLabelValues("results").Inc()
	log.Info("lookup complete", "candidates", len(candidates), "places", len(places), "best", best.Title)
	return s.finish(ctx, req, domain.LookupResult{Best: best, Candidates: places}, start)
}

// SelectBest returns the index of the first place with a thumbnail, or 0.
// The choice is positional and follows provider order.
func SelectBest(places []domain.PlaceRecord) int {
	for i := range places {
		if places[i].HasThumbnail() {
			return i
		}
	}
	return 0
}

// enrich runs the per-candidate chain. It returns nil when the candidate has
// no summary in either the target language or English.
func (s *LookupService) enrich(ctx context.Context, c domain.GeoCandidate, lang string) *domain.PlaceRecord {
	ctx, span := tracer.Start(ctx, "LookupService.enrich", trace.WithAttributes(
		attribute.Int64("candidate.pageid", c.PageID),
		attribute.String("candidate.title", c.Title),
	))
	defer span.End()

	log := logging.FromContext(ctx).With("pageid", c.PageID, "title", c.Title)
	localTitle := s.localizedTitle(ctx, c, lang)

	var summary *domain.SummaryPayload
	if localTitle != "" {
		summary = s.content.Summary(ctx, localTitle, lang)
	}
	usedFallback := false
	if summary == nil {
		summary = s.content.Summary(ctx, c.Title, domain.FallbackLanguage)
		usedFallback = true
	}
	if summary == nil {
		log.Debug("candidate dropped, no summary")
		metrics.CandidatesDropped.Inc()
		return nil
	}
	if usedFallback {
		metrics.EnglishFallbacks.WithLabelValues(lang).Inc()
	}

	var full *string
	if localTitle != "" {
		full = s.content.FullExtract(ctx, localTitle, lang)
	}
	if full == nil {
		full = s.content.FullExtract(ctx, c.Title, domain.FallbackLanguage)
	}

	place := Normalize(c, summary, lang)
	place.UsedEnglishFallback = usedFallback
	if usedFallback {
		place.ContentLang = domain.FallbackLanguage
	}

	shortSource := joinNonEmpty(place.Title, domain.Deref(place.Description), domain.Deref(place.Extract))
	if shortSource == "" {
		shortSource = domain.Deref(full)
	}
	moreSource := domain.Deref(full)
	if moreSource == "" {
		moreSource = domain.Deref(place.Extract)
	}

	place.ShortSummary = s.condenser.Condense(ctx, shortSource, lang, ShortLines, ShortMaxChars)
	place.MoreSummary = s.condenser.Condense(ctx, moreSource, lang, MoreLines, MoreMaxChars)
	if place.ShortSummary == "" {
		place.ShortSummary = EnforceLines(Shorten(domain.Deref(place.Extract), ShortLines, ShortMaxChars), ShortLines)
	}
	if place.MoreSummary == "" {
		place.MoreSummary = place.ShortSummary
	}

	if usedFallback && lang != domain.FallbackLanguage {
		s.translateFallback(ctx, &place, lang)
	}

	return &place
}

// localizedTitle resolves the candidate's title in lang through its graph id.
// Any failure is treated as "no edition in lang".
func (s *LookupService) localizedTitle(ctx context.Context, c domain.GeoCandidate, lang string) string {
	log := logging.FromContext(ctx)

	id, ok, err := s.entities.GraphID(ctx, c.PageID)
	if err != nil {
		log.Debug("graph id lookup failed", "pageid", c.PageID, "error", err)
		return ""
	}
	if !ok {
		return ""
	}

	title, ok, err := s.titles.TitleInLanguage(ctx, id, lang)
	if err != nil {
		log.Debug("sitelink lookup failed", "graph_id", id, "lang", lang, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return title
}

// translateFallback translates the English title and description into lang.
// Fields that fail to translate keep their English text.
func (s *LookupService) translateFallback(ctx context.Context, place *domain.PlaceRecord, lang string) {
	title, titleOK := s.condenser.Translate(ctx, place.Title, lang)
	place.Title = title

	descOK := true
	if place.Description != nil && *place.Description != "" {
		var desc string
		desc, descOK = s.condenser.Translate(ctx, *place.Description, lang)
		place.Description = &desc
	}

	if titleOK && descOK {
		place.Translated = true
		place.ContentLang = lang
	}
}

// finish records latency and publishes the completion event.
func (s *LookupService) finish(ctx context.Context, req domain.LookupRequest, res domain.LookupResult, start time.Time) domain.LookupResult {
	elapsed := time.Since(start)
	metrics.LookupDuration.Observe(elapsed.Seconds())

	if s.publisher == nil {
		return res
	}

	event := &domain.LookupCompleted{
		ID:         uuid.NewString(),
		Location:   domain.GeoPoint{Lat: req.Lat, Lng: req.Lng},
		Lang:       req.Lang,
		Candidates: len(res.Candidates),
		DurationMs: elapsed.Milliseconds(),
	}
	if res.Best != nil {
		id := res.Best.PageID
		event.BestPageID = &id
	}

	// Best-effort
	if err := s.publisher.PublishLookupCompleted(ctx, event); err != nil {
		logging.FromContext(ctx).Warn("publish lookup event failed", "error", err)
		metrics.EventsPublished.WithLabelValues("error").Inc()
	} else {
		metrics.EventsPublished.WithLabelValues("ok").Inc()
	}
	return res
}

func clampRequest(req domain.LookupRequest) domain.LookupRequest {
	if req.RadiusMeters == 0 {
		req.RadiusMeters = DefaultRadius
	}
	req.RadiusMeters = min(max(req.RadiusMeters, MinRadius), MaxRadius)
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}
	req.Limit = min(max(req.Limit, MinLimit), MaxLimit)
	if req.Lang == "" {
		req.Lang = domain.FallbackLanguage
	}
	return req
}
