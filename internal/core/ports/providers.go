package ports

import (
	"context"

	"github.com/samirrijal/touristapi/internal/core/domain"
)

// GeoSearcher discovers knowledge-base entries near a coordinate.
type GeoSearcher interface {
	GeoSearch(ctx context.Context, lat, lng float64, radiusMeters, limit int) ([]domain.GeoCandidate, error)
}

// EntityResolver maps a page id to its language-independent graph id.
// A page without a graph id returns ok == false and a nil error.
type EntityResolver interface {
	GraphID(ctx context.Context, pageID int64) (id domain.GraphID, ok bool, err error)
}

// TitleResolver finds the title of an entity's edition in a given language.
type TitleResolver interface {
	TitleInLanguage(ctx context.Context, id domain.GraphID, lang string) (title string, ok bool, err error)
}

// ContentFetcher retrieves localized page content. Both methods fail soft and
// return nil when nothing usable is available.
type ContentFetcher interface {
	Summary(ctx context.Context, title, lang string) *domain.SummaryPayload
	FullExtract(ctx context.Context, title, lang string) *string
}
