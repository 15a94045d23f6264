package wikidata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/touristapi/internal/adapters/upstream"
	"github.com/samirrijal/touristapi/internal/core/domain"
)

const eiffel = `{"entities":{"Q243":{"id":"Q243","sitelinks":{
	"enwiki":{"site":"enwiki","title":"Eiffel Tower"},
	"frwiki":{"site":"frwiki","title":"Tour Eiffel"},
	"jawiki":{"site":"jawiki","title":"エッフェル塔"}
}}}}`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/wiki/Special:EntityData/", time.Second, upstream.NewFetcher(srv.Client(), "touristapi-test"))
}

func TestTitleInLanguage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wiki/Special:EntityData/Q243.json", r.URL.Path)
		_, _ = w.Write([]byte(eiffel))
	})

	tests := []struct {
		lang   string
		want   string
		wantOK bool
	}{
		{"fr", "Tour Eiffel", true},
		{"ja", "エッフェル塔", true},
		{"sv", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			got, ok, err := c.TitleInLanguage(context.Background(), "Q243", tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTitleInLanguage_EmptyID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty id")
	})
	_, ok, err := c.TitleInLanguage(context.Background(), "", "fr")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTitleInLanguage_Redirected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"entities":{"Q2":{"sitelinks":{"dewiki":{"title":"Erde"}}}}}`))
	})
	got, ok, err := c.TitleInLanguage(context.Background(), "Q999", "de")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Erde", got)
}

func TestTitleInLanguage_Failures(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		_, ok, err := c.TitleInLanguage(context.Background(), "Q1", "fr")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		_, ok, err := c.TitleInLanguage(context.Background(), "Q1", "fr")
		assert.ErrorIs(t, err, domain.ErrUpstream)
		assert.False(t, ok)
	})
}
