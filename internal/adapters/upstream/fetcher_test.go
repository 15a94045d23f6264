package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/touristapi/internal/core/domain"
)

func TestFetcher_GetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "touristapi-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "fr", r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), "touristapi-test")
	var out struct {
		Name string `json:"name"`
	}
	resp, err := f.GetJSON(context.Background(), "test", srv.URL, time.Second, http.Header{"Accept-Language": {"fr"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.Name)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.False(t, resp.IsProblem())
}

func TestFetcher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewFetcher(srv.Client(), "").Get(context.Background(), "test", srv.URL, time.Second, nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, domain.ErrUpstream))
}

func TestFetcher_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.Client(), "").Get(context.Background(), "test", srv.URL, time.Second, nil)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := NewFetcher(srv.Client(), "").Get(context.Background(), "test", srv.URL, 50*time.Millisecond, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestFetcher_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	var out map[string]any
	_, err := NewFetcher(srv.Client(), "").GetJSON(context.Background(), "test", srv.URL, time.Second, nil, &out)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestResponse_IsProblem(t *testing.T) {
	tests := []struct {
		ct   string
		want bool
	}{
		{"application/problem+json", true},
		{"application/problem+json; charset=utf-8", true},
		{"application/json; charset=utf-8; profile=\"https://www.mediawiki.org/wiki/Specs/Summary/1.4.2\"", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, (&Response{ContentType: tt.ct}).IsProblem(), tt.ct)
	}
}
