// Package speech implements ports.SpeechSynthesizer.
package speech

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/samirrijal/touristapi/internal/adapters/upstream"
	"github.com/samirrijal/touristapi/internal/core/domain"
	"github.com/samirrijal/touristapi/internal/core/ports"
)

// Provider names.
const (
	ProviderGTTS = "gtts"
	ProviderEdge = "edge"
)

// maxChunk is the longest text the translate_tts endpoint accepts per request.
const maxChunk = 200

// EdgeVoices maps a language code to its neural voice.
var EdgeVoices = map[string]string{
	"en": "en-US-JennyNeural",
	"fr": "fr-FR-DeniseNeural",
	"de": "de-DE-KatjaNeural",
	"es": "es-ES-ElviraNeural",
	"it": "it-IT-IsabellaNeural",
	"ar": "ar-EG-SalmaNeural",
	"zh": "zh-CN-XiaoxiaoNeural",
	"ja": "ja-JP-NanamiNeural",
	"ru": "ru-RU-SvetlanaNeural",
	"nl": "nl-NL-ColetteNeural",
	"pt": "pt-BR-FranciscaNeural",
	"fa": "fa-IR-DilaraNeural",
	"ur": "ur-PK-AsadNeural",
	"bn": "bn-BD-NabanitaNeural",
	"pl": "pl-PL-AgnieszkaNeural",
	"sv": "sv-SE-HilleviNeural",
	"no": "nb-NO-IselinNeural",
	"da": "da-DK-ChristelNeural",
	"fi": "fi-FI-NooraNeural",
	"hu": "hu-HU-NoemiNeural",
	"tr": "tr-TR-AhmetNeural",
	"hi": "hi-IN-SwaraNeural",
}

// VoiceFor returns the edge voice for lang, defaulting to English.
func VoiceFor(lang string) string {
	if v, ok := EdgeVoices[lang]; ok {
		return v
	}
	return EdgeVoices["en"]
}

// New returns the synthesizer for provider.
func New(provider, endpoint string, timeout time.Duration, fetch *upstream.Fetcher) (ports.SpeechSynthesizer, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderGTTS:
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		return &GTTS{endpoint: endpoint, timeout: timeout, fetch: fetch}, nil
	default:
		return nil, fmt.Errorf("speech provider %q: %w", provider, domain.ErrUnsupportedProvider)
	}
}

// GTTS speaks through the Google Translate TTS endpoint.
type GTTS struct {
	endpoint string
	timeout  time.Duration
	fetch    *upstream.Fetcher
}

func (g *GTTS) Provider() string { return ProviderGTTS }

// Synthesize requests each chunk of text in order and concatenates the MP3
// frames into one stream.
func (g *GTTS) Synthesize(ctx context.Context, text, lang string) ([]byte, string, error) {
	chunks := Chunk(text, maxChunk)
	if len(chunks) == 0 {
		return nil, "", fmt.Errorf("gtts: %w", domain.ErrEmptyResult)
	}

	header := http.Header{"Referer": {"https://translate.google.com/"}}
	var audio []byte
	for i, chunk := range chunks {
		q := url.Values{}
		q.Set("ie", "UTF-8")
		q.Set("client", "tw-ob")
		q.Set("tl", lang)
		q.Set("q", chunk)
		q.Set("total", strconv.Itoa(len(chunks)))
		q.Set("idx", strconv.Itoa(i))
		q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

		resp, err := g.fetch.Get(ctx, ProviderGTTS, g.endpoint+"?"+q.Encode(), g.timeout, header)
		if err != nil {
			return nil, "", fmt.Errorf("gtts chunk %d/%d: %w", i+1, len(chunks), err)
		}
		audio = append(audio, resp.Body...)
	}

	if len(audio) == 0 {
		return nil, "", fmt.Errorf("gtts: %w", domain.ErrEmptyResult)
	}
	return audio, "audio/mpeg", nil
}

// Chunk splits text into pieces of at most size runes, breaking at
// whitespace. Words longer than size are cut.
func Chunk(text string, size int) []string {
	var (
		chunks []string
		cur    strings.Builder
		curLen int
	)
	flush := func() {
		if cur.Len() > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, word := range strings.Fields(text) {
		r := []rune(word)
		for len(r) > size {
			flush()
			chunks = append(chunks, string(r[:size]))
			r = r[size:]
		}
		if len(r) == 0 {
			continue
		}
		if curLen > 0 && curLen+1+len(r) > size {
			flush()
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(string(r))
		curLen += len(r)
	}
	flush()
	return chunks
}
