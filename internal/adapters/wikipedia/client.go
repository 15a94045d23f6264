// Package wikipedia implements geosearch, entity resolution and content
// retrieval against the MediaWiki Action API and the REST summary endpoint.
package wikipedia

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samirrijal/touristapi/internal/adapters/upstream"
	"github.com/samirrijal/touristapi/internal/core/domain"
	"github.com/samirrijal/touristapi/internal/pkg/logging"
)

const (
	providerGeo     = "wikipedia_geosearch"
	providerProps   = "wikipedia_pageprops"
	providerSummary = "wikipedia_summary"
	providerExtract = "wikipedia_extract"
)

// Config holds endpoint templates. LangAPIURL and RESTURL contain "{lang}".
type Config struct {
	APIURL      string
	LangAPIURL  string
	RESTURL     string
	JSONTimeout time.Duration
	TextTimeout time.Duration
}

// Client implements ports.GeoSearcher, ports.EntityResolver and ports.ContentFetcher.
type Client struct {
	cfg   Config
	fetch *upstream.Fetcher
}

// NewClient creates a Client.
func NewClient(cfg Config, fetch *upstream.Fetcher) *Client {
	if cfg.JSONTimeout <= 0 {
		cfg.JSONTimeout = 15 * time.Second
	}
	if cfg.TextTimeout <= 0 {
		cfg.TextTimeout = 20 * time.Second
	}
	return &Client{cfg: cfg, fetch: fetch}
}

type geosearchResponse struct {
	Query struct {
		GeoSearch []domain.GeoCandidate `json:"geosearch"`
	} `json:"query"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// GeoSearch lists up to limit pages within radiusMeters of (lat, lng) in the
// English edition, nearest first.
func (c *Client) GeoSearch(ctx context.Context, lat, lng float64, radiusMeters, limit int) ([]domain.GeoCandidate, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("list", "geosearch")
	q.Set("gscoord", formatCoord(lat)+"|"+formatCoord(lng))
	q.Set("gsradius", strconv.Itoa(radiusMeters))
	q.Set("gslimit", strconv.Itoa(limit))
	q.Set("format", "json")

	var out geosearchResponse
	if _, err := c.fetch.GetJSON(ctx, providerGeo, c.cfg.APIURL+"?"+q.Encode(), c.cfg.JSONTimeout, nil, &out); err != nil {
		return nil, fmt.Errorf("geosearch: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("geosearch: %w: %s: %s", domain.ErrUpstream, out.Error.Code, out.Error.Info)
	}
	if out.Query.GeoSearch == nil {
		return []domain.GeoCandidate{}, nil
	}
	return out.Query.GeoSearch, nil
}

type pagepropsResponse struct {
	Query struct {
		Pages map[string]struct {
			PageProps struct {
				WikibaseItem string `json:"wikibase_item"`
			} `json:"pageprops"`
		} `json:"pages"`
	} `json:"query"`
}

// GraphID returns the Wikidata item linked to an English page id.
func (c *Client) GraphID(ctx context.Context, pageID int64) (domain.GraphID, bool, error) {
	id := strconv.FormatInt(pageID, 10)
	q := url.Values{}
	q.Set("action", "query")
	q.Set("prop", "pageprops")
	q.Set("pageids", id)
	q.Set("ppprop", "wikibase_item")
	q.Set("format", "json")

	var out pagepropsResponse
	if _, err := c.fetch.GetJSON(ctx, providerProps, c.cfg.APIURL+"?"+q.Encode(), c.cfg.JSONTimeout, nil, &out); err != nil {
		return "", false, fmt.Errorf("pageprops %d: %w", pageID, err)
	}

	page, ok := out.Query.Pages[id]
	if !ok || page.PageProps.WikibaseItem == "" {
		return "", false, nil
	}
	return domain.GraphID(page.PageProps.WikibaseItem), true, nil
}

type summaryResponse struct {
	Type   *string `json:"type"`
	Title  *string `json:"title"`
	Titles *struct {
		Normalized *string `json:"normalized"`
	} `json:"titles"`
	Description *string `json:"description"`
	Extract     *string `json:"extract"`
	ContentURLs *struct {
		Desktop *struct {
			Page *string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
	Thumbnail *struct {
		Source *string `json:"source"`
	} `json:"thumbnail"`
	OriginalImage *struct {
		Source *string `json:"source"`
	} `json:"originalimage"`
	Coordinates *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coordinates"`
}

// Summary fetches the page summary for title in lang. Any failure, including
// a problem document, is reported as absent.
func (c *Client) Summary(ctx context.Context, title, lang string) *domain.SummaryPayload {
	if title == "" || !validLang(lang) {
		return nil
	}
	base := strings.ReplaceAll(c.cfg.RESTURL, "{lang}", lang)
	rawURL := base + "/page/summary/" + url.PathEscape(title)

	var out summaryResponse
	resp, err := c.fetch.GetJSON(ctx, providerSummary, rawURL, c.cfg.JSONTimeout, http.Header{"Accept-Language": {lang}}, &out)
	if err != nil {
		if !upstream.IsNotFound(err) {
			logging.FromContext(ctx).Debug("summary fetch failed", "title", title, "lang", lang, "error", err)
		}
		return nil
	}
	if resp.IsProblem() || out.isProblem() {
		return nil
	}
	return out.payload()
}

// isProblem reports whether the body is a problem document served with a
// plain JSON content type.
func (s *summaryResponse) isProblem() bool {
	return strings.HasSuffix(domain.Deref(s.Type), "problem+json")
}

func (s *summaryResponse) payload() *domain.SummaryPayload {
	p := &domain.SummaryPayload{
		Title:       s.Title,
		Description: s.Description,
		Extract:     s.Extract,
	}
	if s.Titles != nil && s.Titles.Normalized != nil {
		p.NormalizedTitle = s.Titles.Normalized
	} else {
		p.NormalizedTitle = s.Title
	}
	if s.ContentURLs != nil && s.ContentURLs.Desktop != nil {
		p.PageURL = s.ContentURLs.Desktop.Page
	}
	if s.Thumbnail != nil {
		p.ThumbnailURL = s.Thumbnail.Source
	}
	if s.OriginalImage != nil {
		p.OriginalImageURL = s.OriginalImage.Source
	}
	if s.Coordinates != nil {
		p.Coordinates = &domain.GeoPoint{Lat: s.Coordinates.Lat, Lng: s.Coordinates.Lon}
	}
	return p
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

// FullExtract fetches the plain-text article body for title in lang,
// following redirects. Missing or blank text is reported as absent.
func (c *Client) FullExtract(ctx context.Context, title, lang string) *string {
	if title == "" || !validLang(lang) {
		return nil
	}
	q := url.Values{}
	q.Set("action", "query")
	q.Set("prop", "extracts")
	q.Set("explaintext", "1")
	q.Set("redirects", "1")
	q.Set("titles", title)
	q.Set("format", "json")
	rawURL := strings.ReplaceAll(c.cfg.LangAPIURL, "{lang}", lang) + "?" + q.Encode()

	var out extractResponse
	if _, err := c.fetch.GetJSON(ctx, providerExtract, rawURL, c.cfg.TextTimeout, http.Header{"Accept-Language": {lang}}, &out); err != nil {
		logging.FromContext(ctx).Debug("extract fetch failed", "title", title, "lang", lang, "error", err)
		return nil
	}

	// Page ids are map keys; sort for a stable pick.
	keys := make([]string, 0, len(out.Query.Pages))
	for k := range out.Query.Pages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if text := strings.TrimSpace(out.Query.Pages[k].Extract); text != "" {
			return &text
		}
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// validLang guards the language code before it is spliced into a hostname.
func validLang(lang string) bool {
	if lang == "" || len(lang) > 12 {
		return false
	}
	for _, r := range lang {
		if (r < 'a' || r > 'z') && r != '-' {
			return false
		}
	}
	return true
}
