// Package wikidata resolves a language edition's page title from a Wikidata item.
package wikidata

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samirrijal/touristapi/internal/adapters/upstream"
	"github.com/samirrijal/touristapi/internal/core/domain"
)

const provider = "wikidata_entity"

// Client implements ports.TitleResolver.
type Client struct {
	entityURL string
	timeout   time.Duration
	fetch     *upstream.Fetcher
}

// NewClient creates a Client. entityURL is the Special:EntityData base.
func NewClient(entityURL string, timeout time.Duration, fetch *upstream.Fetcher) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{entityURL: strings.TrimRight(entityURL, "/"), timeout: timeout, fetch: fetch}
}

type entityResponse struct {
	Entities map[string]struct {
		Sitelinks map[string]struct {
			Title string `json:"title"`
		} `json:"sitelinks"`
	} `json:"entities"`
}

// TitleInLanguage returns the title of id's sitelink to the lang edition.
// An empty id or a missing sitelink reports ok=false without error.
func (c *Client) TitleInLanguage(ctx context.Context, id domain.GraphID, lang string) (string, bool, error) {
	if id == "" || lang == "" {
		return "", false, nil
	}
	rawURL := c.entityURL + "/" + url.PathEscape(string(id)) + ".json"

	var out entityResponse
	if _, err := c.fetch.GetJSON(ctx, provider, rawURL, c.timeout, nil, &out); err != nil {
		if upstream.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("entity %s: %w", id, err)
	}

	entity, ok := out.Entities[string(id)]
	if !ok {
		// Merged items come back under their new id.
		if len(out.Entities) != 1 {
			return "", false, nil
		}
		for _, e := range out.Entities {
			entity = e
		}
	}

	link, ok := entity.Sitelinks[lang+"wiki"]
	if !ok || link.Title == "" {
		return "", false, nil
	}
	return link.Title, true, nil
}
