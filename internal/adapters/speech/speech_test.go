package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/touristapi/internal/adapters/upstream"
	"github.com/samirrijal/touristapi/internal/core/domain"
)

func TestChunk(t *testing.T) {
	assert.Empty(t, Chunk("   ", 200))
	assert.Equal(t, []string{"hello world"}, Chunk("  hello \n world ", 200))
	assert.Equal(t, []string{"aaa bb", "cccc"}, Chunk("aaa bb cccc", 6))
	assert.Equal(t, []string{"abcde", "fgh x"}, Chunk("abcdefgh x", 5))

	long := strings.Repeat("Ωmega word ", 100)
	for _, c := range Chunk(long, maxChunk) {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), maxChunk)
	}
	assert.Equal(t, strings.Join(strings.Fields(long), " "), strings.Join(Chunk(long, maxChunk), " "))
}

func TestNew(t *testing.T) {
	s, err := New("GTTS", "http://example", time.Second, upstream.NewFetcher(nil, ""))
	require.NoError(t, err)
	assert.Equal(t, ProviderGTTS, s.Provider())

	for _, p := range []string{ProviderEdge, "polly"} {
		_, err := New(p, "", 0, nil)
		assert.ErrorIs(t, err, domain.ErrUnsupportedProvider, p)
	}
}

func TestVoiceFor(t *testing.T) {
	assert.Equal(t, "nb-NO-IselinNeural", VoiceFor("no"))
	assert.Equal(t, "ja-JP-NanamiNeural", VoiceFor("ja"))
	assert.Equal(t, "en-US-JennyNeural", VoiceFor("xx"))
	for lang := range domain.SupportedLanguages {
		_, ok := EdgeVoices[lang]
		assert.True(t, ok, "missing voice for %s", lang)
	}
}

func TestGTTS_Synthesize(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "tw-ob", q.Get("client"))
		assert.Equal(t, "UTF-8", q.Get("ie"))
		assert.Equal(t, "fr", q.Get("tl"))
		assert.LessOrEqual(t, utf8.RuneCountInString(q.Get("q")), maxChunk)
		calls.Add(1)
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3" + q.Get("idx")))
	}))
	defer srv.Close()

	s, err := New(ProviderGTTS, srv.URL+"/translate_tts", time.Second, upstream.NewFetcher(srv.Client(), ""))
	require.NoError(t, err)

	text := strings.Repeat("La tour Eiffel est magnifique. ", 10)
	audio, mime, err := s.Synthesize(context.Background(), text, "fr")
	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", mime)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "ID30ID31", string(audio))
}

func TestGTTS_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s, err := New(ProviderGTTS, srv.URL, time.Second, upstream.NewFetcher(srv.Client(), ""))
	require.NoError(t, err)
	_, _, err = s.Synthesize(context.Background(), "hello", "en")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestGTTS_EmptyAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	s, err := New(ProviderGTTS, srv.URL, time.Second, upstream.NewFetcher(srv.Client(), ""))
	require.NoError(t, err)
	_, _, err = s.Synthesize(context.Background(), "hello", "en")
	assert.ErrorIs(t, err, domain.ErrEmptyResult)
}
