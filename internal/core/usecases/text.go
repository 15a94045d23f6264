package usecases

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ellipsis marks text cut at a character cap.
const Ellipsis = "…"

// SplitSentences breaks text into trimmed, non-empty sentence units. A unit
// ends after '.', '!' or '?' followed by whitespace, or at a line break.
func SplitSentences(text string) []string {
	var (
		parts []string
		cur   strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			parts = append(parts, s)
		}
		cur.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' {
			flush()
			continue
		}
		cur.WriteRune(r)
		if isTerminal(r) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			flush()
		}
	}
	flush()
	return parts
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// EnforceLines keeps at most lines sentence units of text and puts each on its
// own line. Applying it to its own output is a no-op.
func EnforceLines(text string, lines int) string {
	if text == "" {
		return ""
	}
	parts := SplitSentences(text)
	if len(parts) > max(1, lines) {
		parts = parts[:max(1, lines)]
	}
	return strings.Join(parts, "\n")
}

// Shorten is the deterministic condenser: the first sentences of text joined
// by spaces, cut to maxChars runes.
func Shorten(text string, sentences, maxChars int) string {
	parts := SplitSentences(text)
	if len(parts) == 0 {
		return ""
	}
	if len(parts) > max(1, sentences) {
		parts = parts[:max(1, sentences)]
	}
	return Truncate(strings.Join(parts, " "), maxChars)
}

// Truncate cuts s to at most maxChars runes. When it has to cut, it backs off
// to the last whitespace and appends Ellipsis; the ellipsis counts toward the cap.
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	runes := []rune(s)[:maxChars-1]
	for i := len(runes) - 1; i > 0; i-- {
		if unicode.IsSpace(runes[i]) {
			runes = runes[:i]
			break
		}
	}
	return strings.TrimRightFunc(string(runes), unicode.IsSpace) + Ellipsis
}

// joinNonEmpty space-joins the non-blank values.
func joinNonEmpty(values ...string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, " ")
}
