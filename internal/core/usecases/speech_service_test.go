package usecases_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/samirrijal/touristapi/internal/core/domain"
	"github.com/samirrijal/touristapi/internal/core/usecases"
)

type mockSynth struct {
	synthFn func(ctx context.Context, text, lang string) ([]byte, string, error)
}

func (m *mockSynth) Provider() string { return "mock" }

func (m *mockSynth) Synthesize(ctx context.Context, text, lang string) ([]byte, string, error) {
	return m.synthFn(ctx, text, lang)
}

func TestSpeech_Synthesize(t *testing.T) {
	var gotText, gotLang string
	svc := usecases.NewSpeechService(&mockSynth{synthFn: func(_ context.Context, text, lang string) ([]byte, string, error) {
		gotText, gotLang = text, lang
		return []byte{0xFF, 0xFB}, "audio/mpeg", nil
	}})

	audio, mime, err := svc.Synthesize(context.Background(), "  Bonjour  ", "fr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(audio) != 2 || mime != "audio/mpeg" {
		t.Errorf("unexpected audio %v %s", audio, mime)
	}
	if gotText != "Bonjour" || gotLang != "fr" {
		t.Errorf("unexpected synth args %q %q", gotText, gotLang)
	}
	if svc.Provider() != "mock" {
		t.Errorf("expected provider mock, got %s", svc.Provider())
	}
}

func TestSpeech_RejectsEmptyText(t *testing.T) {
	svc := usecases.NewSpeechService(&mockSynth{synthFn: func(context.Context, string, string) ([]byte, string, error) {
		t.Error("synthesizer must not be called")
		return nil, "", nil
	}})
	if _, _, err := svc.Synthesize(context.Background(), " \n", "en"); err == nil {
		t.Error("expected error for empty text")
	}
}

func TestSpeech_RejectsLongText(t *testing.T) {
	svc := usecases.NewSpeechService(&mockSynth{})
	text := strings.Repeat("a", usecases.MaxSpeechChars+1)
	if _, _, err := svc.Synthesize(context.Background(), text, "en"); err == nil {
		t.Error("expected error for oversized text")
	}
}

func TestSpeech_NoSynthesizer(t *testing.T) {
	svc := usecases.NewSpeechService(nil)
	_, _, err := svc.Synthesize(context.Background(), "hello", "en")
	if !errors.Is(err, domain.ErrUnsupportedProvider) {
		t.Errorf("expected ErrUnsupportedProvider, got %v", err)
	}
	if svc.Provider() != "" {
		t.Errorf("expected empty provider")
	}
}

func TestSpeech_EmptyAudio(t *testing.T) {
	svc := usecases.NewSpeechService(&mockSynth{synthFn: func(context.Context, string, string) ([]byte, string, error) {
		return nil, "audio/mpeg", nil
	}})
	_, _, err := svc.Synthesize(context.Background(), "hello", "en")
	if !errors.Is(err, domain.ErrEmptyResult) {
		t.Errorf("expected ErrEmptyResult, got %v", err)
	}
}

func TestSpeech_ProviderFailure(t *testing.T) {
	svc := usecases.NewSpeechService(&mockSynth{synthFn: func(context.Context, string, string) ([]byte, string, error) {
		return nil, "", domain.ErrUpstream
	}})
	_, _, err := svc.Synthesize(context.Background(), "hello", "en")
	if !errors.Is(err, domain.ErrUpstream) || !strings.HasPrefix(err.Error(), "synthesis failed") {
		t.Errorf("unexpected error %v", err)
	}
}
