package usecases_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/samirrijal/touristapi/internal/core/usecases"
)

func TestSplitSentences(t *testing.T) {
	got := usecases.SplitSentences("  First one. Second!  Third?\nFourth line\n\nv1.2 stays whole. ")
	want := []string{"First one.", "Second!", "Third?", "Fourth line", "v1.2 stays whole."}
	if len(got) != len(want) {
		t.Fatalf("expected %d parts, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("part %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestEnforceLines_Empty(t *testing.T) {
	for _, n := range []int{1, 5, 15} {
		if got := usecases.EnforceLines("", n); got != "" {
			t.Errorf("EnforceLines(\"\", %d) = %q, want empty", n, got)
		}
	}
}

func TestEnforceLines_KeepsAtMostN(t *testing.T) {
	got := usecases.EnforceLines("One. Two. Three. Four.", 2)
	if got != "One.\nTwo." {
		t.Errorf("unexpected output %q", got)
	}
}

func TestEnforceLines_MinimumOne(t *testing.T) {
	if got := usecases.EnforceLines("One. Two.", 0); got != "One." {
		t.Errorf("expected one sentence for n=0, got %q", got)
	}
}

func TestEnforceLines_Idempotent(t *testing.T) {
	inputs := []string{
		"Plain text without any terminator",
		"A. B! C? D.",
		"Line one\nLine two.  Line three!\n\n  Line four",
		"Trailing whitespace.   ",
		"Ünïcødé sentence. 東京タワー is tall. Ends here…",
		strings.Repeat("Word word word. ", 40),
	}
	for _, in := range inputs {
		for _, n := range []int{1, 3, 5, 15} {
			once := usecases.EnforceLines(in, n)
			twice := usecases.EnforceLines(once, n)
			if once != twice {
				t.Errorf("not idempotent for n=%d:\n once=%q\ntwice=%q", n, once, twice)
			}
			if lines := strings.Count(once, "\n") + 1; once != "" && lines > n && n >= 1 {
				t.Errorf("expected at most %d lines, got %d", n, lines)
			}
		}
	}
}

func TestShorten(t *testing.T) {
	text := "Alpha is first. Beta is second. Gamma is third."
	if got := usecases.Shorten(text, 2, 700); got != "Alpha is first. Beta is second." {
		t.Errorf("unexpected output %q", got)
	}
	if got := usecases.Shorten("", 2, 700); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	got := usecases.Truncate("the quick brown fox jumps", 12)
	if got != "the quick…" {
		t.Errorf("unexpected output %q", got)
	}
	if n := utf8.RuneCountInString(got); n > 12 {
		t.Errorf("expected at most 12 runes, got %d", n)
	}

	if got := usecases.Truncate("short", 10); got != "short" {
		t.Errorf("expected unchanged text, got %q", got)
	}

	long := strings.Repeat("é", 50)
	got = usecases.Truncate(long, 10)
	if n := utf8.RuneCountInString(got); n != 10 {
		t.Errorf("expected 10 runes for text without spaces, got %d", n)
	}
}
