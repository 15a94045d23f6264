package usecases

import (
	"github.com/samirrijal/touristapi/internal/core/domain"
)

// Normalize shapes a geosearch candidate and its summary into a PlaceRecord
// tagged with lang. Summary fields win; the candidate supplies what the
// summary lacks. Summaries are left empty for the caller to fill.
func Normalize(c domain.GeoCandidate, s *domain.SummaryPayload, lang string) domain.PlaceRecord {
	if s == nil {
		s = &domain.SummaryPayload{}
	}

	title := c.Title
	if s.Title != nil && *s.Title != "" {
		title = *s.Title
	}

	normalized := s.NormalizedTitle
	if normalized == nil || *normalized == "" {
		normalized = s.Title
	}

	return domain.PlaceRecord{
		Title:            title,
		NormalizedTitle:  normalized,
		Description:      s.Description,
		Extract:          s.Extract,
		Coordinates:      domain.GeoPoint{Lat: c.Lat, Lng: c.Lon},
		PageURL:          s.PageURL,
		ThumbnailURL:     s.ThumbnailURL,
		OriginalImageURL: s.OriginalImageURL,
		PageID:           c.PageID,
		Lang:             lang,
		ContentLang:      lang,
	}
}
