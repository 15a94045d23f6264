package domain

// GeoCandidate is one nearby knowledge-base entry as returned by geosearch.
type GeoCandidate struct {
	PageID int64   `json:"pageid"`
	Title  string  `json:"title"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// GraphID identifies a real-world entity across language editions (e.g. "Q12345").
type GraphID string

// SummaryPayload is the localized page summary. Nil fields were not returned
// by the provider, which is different from an empty string.
type SummaryPayload struct {
	Title            *string   `json:"title"`
	NormalizedTitle  *string   `json:"normalized_title"`
	Description      *string   `json:"description"`
	Extract          *string   `json:"extract"`
	PageURL          *string   `json:"page_url"`
	ThumbnailURL     *string   `json:"thumbnail_url"`
	OriginalImageURL *string   `json:"original_image_url"`
	Coordinates      *GeoPoint `json:"coordinates"`
}

// PlaceRecord is the canonical, localized description of one nearby place.
type PlaceRecord struct {
	Title            string   `json:"title"`
	NormalizedTitle  *string  `json:"normalized_title"`
	Description      *string  `json:"description"`
	Extract          *string  `json:"extract"`
	Coordinates      GeoPoint `json:"coordinates"`
	PageURL          *string  `json:"page_url"`
	ThumbnailURL     *string  `json:"thumbnail_url"`
	OriginalImageURL *string  `json:"original_image_url"`
	PageID           int64    `json:"pageid"`

	// Lang is always the requested target language.
	Lang string `json:"lang"`
	// ContentLang is the language the text fields are actually written in.
	// It differs from Lang when English content could not be translated.
	ContentLang         string `json:"content_lang"`
	UsedEnglishFallback bool   `json:"used_english_fallback"`
	Translated          bool   `json:"translated"`

	ShortSummary string  `json:"short_summary"`
	MoreSummary  string  `json:"more_summary"`
	AIBlurb      *string `json:"ai_blurb,omitempty"`
}

// HasThumbnail reports whether the record carries a non-empty thumbnail URL.
func (p *PlaceRecord) HasThumbnail() bool {
	return p.ThumbnailURL != nil && *p.ThumbnailURL != ""
}

// LookupRequest describes one "what is near here" query.
type LookupRequest struct {
	Lat          float64
	Lng          float64
	Lang         string
	RadiusMeters int
	Limit        int
}

// LookupResult is the answer to a lookup. Candidates is never nil.
type LookupResult struct {
	Best       *PlaceRecord  `json:"best"`
	Candidates []PlaceRecord `json:"candidates"`
}

// EmptyLookup returns the result reported when nothing usable was found.
func EmptyLookup() LookupResult {
	return LookupResult{Best: nil, Candidates: []PlaceRecord{}}
}

// LookupCompleted is published after a lookup finishes. It carries no place
// content.
type LookupCompleted struct {
	ID         string   `json:"id"`
	Location   GeoPoint `json:"location"`
	Lang       string   `json:"lang"`
	Candidates int      `json:"candidates"`
	BestPageID *int64   `json:"best_page_id,omitempty"`
	DurationMs int64    `json:"duration_ms"`
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
