// Package locale resolves user-supplied language identifiers to the ISO 639-1
// codes used to address knowledge-base editions.
package locale

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/samirrijal/touristapi/internal/core/domain"
)

// aliases maps base languages that share an edition with another code.
var aliases = map[string]string{
	"nb": "no",
	"nn": "no",
}

// Base returns the lower-case base language of raw ("pt-BR" → "pt"), or ""
// when raw is not a valid BCP 47 tag.
func Base(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	code := strings.ToLower(base.String())
	if alias, ok := aliases[code]; ok {
		return alias
	}
	return code
}

// Resolve picks the target language for a request: raw when supported,
// otherwise def when raw is empty, otherwise English.
func Resolve(raw, def string) string {
	code := Base(raw)
	if code == "" && strings.TrimSpace(raw) == "" {
		code = Base(def)
	}
	if _, ok := domain.SupportedLanguages[code]; ok {
		return code
	}
	return domain.FallbackLanguage
}

// Supported reports whether code names a supported language.
func Supported(code string) bool {
	_, ok := domain.SupportedLanguages[code]
	return ok
}
