package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/touristapi/internal/core/domain"
)

func TestRender(t *testing.T) {
	req := domain.LookupRequest{Lat: 48.8584, Lng: 2.2945, Lang: "ja", RadiusMeters: 8000, Limit: 8}
	best := domain.PlaceRecord{
		Title:        "Champ de Mars",
		Coordinates:  domain.GeoPoint{Lat: 48.8556, Lng: 2.2986},
		PageID:       2,
		PageURL:      domain.StrPtr("https://en.wikipedia.org/wiki/Champ_de_Mars"),
		Lang:         "ja",
		ContentLang:  "en",
		ShortSummary: "A large public park.\nIt lies next to the tower.",

		UsedEnglishFallback: true,
	}
	other := domain.PlaceRecord{
		Title:        "Eiffel Tower",
		Coordinates:  domain.GeoPoint{Lat: 48.8584, Lng: 2.2945},
		PageID:       1,
		Lang:         "ja",
		ContentLang:  "ja",
		ShortSummary: "エッフェル塔。",
	}

	var buf bytes.Buffer
	require.NoError(t, render(&buf, req, domain.LookupResult{Best: &best, Candidates: []domain.PlaceRecord{other, best}}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"* Champ de Mars (432 m)",
		"    A large public park.",
		"    It lies next to the tower.",
		"    [en]",
		"    https://en.wikipedia.org/wiki/Champ_de_Mars",
		"  Eiffel Tower (0 m)",
		"    エッフェル塔。",
	}, lines)
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	req := domain.LookupRequest{RadiusMeters: 2000}
	require.NoError(t, render(&buf, req, domain.EmptyLookup()))
	assert.Equal(t, "No places found within 2.0 km.\n", buf.String())
}

func TestValidate(t *testing.T) {
	ok := domain.LookupRequest{Lat: 10, Lng: 10, RadiusMeters: 100, Limit: 20}
	assert.NoError(t, validate(ok))

	bad := ok
	bad.Lat = 91
	assert.Error(t, validate(bad))

	bad = ok
	bad.RadiusMeters = 99
	assert.Error(t, validate(bad))

	bad = ok
	bad.Limit = 0
	assert.Error(t, validate(bad))
}

func TestFormatEvent(t *testing.T) {
	best := int64(9232)
	e := &domain.LookupCompleted{
		ID:         "abc",
		Location:   domain.GeoPoint{Lat: 48.8584, Lng: 2.2945},
		Lang:       "fr",
		Candidates: 3,
		BestPageID: &best,
		DurationMs: 640,
	}
	assert.Equal(t, "abc  48.85840,2.29450  lang=fr  candidates=3  best=9232  640ms", formatEvent(e))

	e.BestPageID = nil
	assert.Contains(t, formatEvent(e), "best=-")
}
