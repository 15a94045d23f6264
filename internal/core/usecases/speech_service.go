package usecases

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/samirrijal/touristapi/internal/core/domain"
	"github.com/samirrijal/touristapi/internal/core/ports"
)

// MaxSpeechChars caps the text accepted for synthesis.
const MaxSpeechChars = 5000

// SpeechService turns place descriptions into audio.
type SpeechService struct {
	synth ports.SpeechSynthesizer
}

// NewSpeechService creates a new SpeechService.
func NewSpeechService(synth ports.SpeechSynthesizer) *SpeechService {
	return &SpeechService{synth: synth}
}

// Provider names the configured synthesis backend.
func (s *SpeechService) Provider() string {
	if s.synth == nil {
		return ""
	}
	return s.synth.Provider()
}

// Synthesize returns audio bytes and their MIME type for text read in lang.
func (s *SpeechService) Synthesize(ctx context.Context, text, lang string) ([]byte, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, "", fmt.Errorf("text must not be empty")
	}
	if utf8.RuneCountInString(text) > MaxSpeechChars {
		return nil, "", fmt.Errorf("text too long (max %d characters)", MaxSpeechChars)
	}
	if s.synth == nil {
		return nil, "", fmt.Errorf("synthesis: %w", domain.ErrUnsupportedProvider)
	}

	audio, mime, err := s.synth.Synthesize(ctx, text, lang)
	if err != nil {
		return nil, "", fmt.Errorf("synthesis failed: %w", err)
	}
	if len(audio) == 0 {
		return nil, "", fmt.Errorf("synthesis failed: %w", domain.ErrEmptyResult)
	}
	return audio, mime, nil
}
