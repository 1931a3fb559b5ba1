package text

import (
	"math/rand"
	"strings"
	"testing"
	"unicode"
)

// fixedMeasurer reports the same advance for every character.
type fixedMeasurer float32

func (m fixedMeasurer) GlyphAdvance(rune) float32 { return float32(m) }

func lineText(t *testing.T, text string, l Line) string {
	t.Helper()
	if l.Start < 0 || l.End > len(text) || l.Start > l.End {
		t.Fatalf("line range [%d,%d) out of bounds for %q", l.Start, l.End, text)
	}
	return text[l.Start:l.End]
}

func TestComputeLinesNoneSplitsOnNewlineOnly(t *testing.T) {
	const text = "ab\ncd"
	lines := ComputeLines(nil, text, 5, WrapNone, fixedMeasurer(10), 10)

	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2 (%+v)", len(lines), lines)
	}
	if got := lineText(t, text, lines[0]); got != "ab" {
		t.Errorf("line 0 = %q, want \"ab\"", got)
	}
	if got := lineText(t, text, lines[1]); got != "cd" {
		t.Errorf("line 1 = %q, want \"cd\"", got)
	}
	if lines[0].Width != 20 || lines[1].Width != 20 {
		t.Errorf("widths = %v, %v, want 20, 20", lines[0].Width, lines[1].Width)
	}
}

func TestComputeLinesLetterBreaksAtOverflowingGlyph(t *testing.T) {
	const text = "abcde"
	lines := ComputeLines(nil, text, 25, WrapLetter, fixedMeasurer(10), 10)

	want := []string{"ab", "cd", "e"}
	if len(lines) != len(want) {
		t.Fatalf("line count = %d, want %d (%+v)", len(lines), len(want), lines)
	}
	for i, w := range want {
		if got := lineText(t, text, lines[i]); got != w {
			t.Errorf("line %d = %q, want %q", i, got, w)
		}
	}
}

func TestComputeLinesWordMovesWholeWord(t *testing.T) {
	const text = "aa bb"
	lines := ComputeLines(nil, text, 35, WrapWord, fixedMeasurer(10), 10)

	if len(lines) != 2 {
		t.Fatalf("line count = %d, want 2 (%+v)", len(lines), lines)
	}
	if got := lineText(t, text, lines[0]); got != "aa " {
		t.Errorf("line 0 = %q, want \"aa \"", got)
	}
	if got := lineText(t, text, lines[1]); got != "bb" {
		t.Errorf("line 1 = %q, want \"bb\"", got)
	}

	TrimLines(lines, text, fixedMeasurer(10))
	if got := lineText(t, text, lines[0]); got != "aa" {
		t.Errorf("trimmed line 0 = %q, want \"aa\"", got)
	}
	if lines[0].Width != 20 {
		t.Errorf("trimmed line 0 width = %v, want 20", lines[0].Width)
	}
}

func TestComputeLinesWordFallsBackToLetterMidWord(t *testing.T) {
	const text = "abcdef"
	lines := ComputeLines(nil, text, 25, WrapWord, fixedMeasurer(10), 10)

	want := []string{"ab", "cd", "ef"}
	if len(lines) != len(want) {
		t.Fatalf("line count = %d, want %d (%+v)", len(lines), len(want), lines)
	}
	for i, w := range want {
		if got := lineText(t, text, lines[i]); got != w {
			t.Errorf("line %d = %q, want %q", i, got, w)
		}
	}
}

func TestComputeLinesEmptyText(t *testing.T) {
	lines := ComputeLines(nil, "", 100, WrapWord, fixedMeasurer(10), 10)
	if len(lines) != 1 || lines[0] != (Line{0, 0, 0}) {
		t.Fatalf("lines = %+v, want one empty line", lines)
	}
}

func TestTrimLinesStripsBothEnds(t *testing.T) {
	const text = "  hi  "
	lines := []Line{{0, len(text), 60}}
	TrimLines(lines, text, fixedMeasurer(10))

	if got := lineText(t, text, lines[0]); got != "hi" {
		t.Fatalf("trimmed = %q, want \"hi\"", got)
	}
	if lines[0].Width != 20 {
		t.Fatalf("trimmed width = %v, want 20", lines[0].Width)
	}
}

// Word wrap must never break a word whose rendered width alone fits the
// available width.
func TestWordWrapKeepsFittingWordsIntact(t *testing.T) {
	const advance = 10
	rng := rand.New(rand.NewSource(7))

	for iter := 0; iter < 200; iter++ {
		var sb strings.Builder
		wordCount := 1 + rng.Intn(12)
		for w := 0; w < wordCount; w++ {
			if w > 0 {
				sb.WriteByte(' ')
			}
			for n := 1 + rng.Intn(6); n > 0; n-- {
				sb.WriteByte(byte('a' + rng.Intn(5)))
			}
		}
		text := sb.String()
		available := float32((2 + rng.Intn(5)) * advance)

		lines := ComputeLines(nil, text, available, WrapWord, fixedMeasurer(advance), advance)

		// Locate word spans directly from the text.
		for start := 0; start < len(text); {
			if text[start] == ' ' {
				start++
				continue
			}
			end := start
			for end < len(text) && text[end] != ' ' {
				end++
			}
			width := float32(end-start) * advance

			if width <= available && !spanInsideOneLine(lines, start, end) {
				t.Fatalf("word %q (width %v <= %v) split across lines: text=%q lines=%+v",
					text[start:end], width, available, text, lines)
			}
			start = end
		}
	}
}

// Letter wrap never produces a line wider than the available width when
// every glyph fits by itself.
func TestLetterWrapNeverExceedsAvailableWidth(t *testing.T) {
	const advance = 10
	rng := rand.New(rand.NewSource(11))

	for iter := 0; iter < 200; iter++ {
		var sb strings.Builder
		for n := rng.Intn(60); n > 0; n-- {
			sb.WriteByte(byte('a' + rng.Intn(26)))
		}
		text := sb.String()
		available := float32((1 + rng.Intn(8)) * advance)

		lines := ComputeLines(nil, text, available, WrapLetter, fixedMeasurer(advance), advance)
		for _, l := range lines {
			if l.Width > available {
				t.Fatalf("line %q width %v > available %v", text[l.Start:l.End], l.Width, available)
			}
		}
	}
}

func spanInsideOneLine(lines []Line, start, end int) bool {
	for _, l := range lines {
		if l.Start <= start && l.End >= end {
			return true
		}
	}
	return false
}

// Sanity check on the whitespace classifier the wrapper relies on.
func TestNewlineIsWhitespace(t *testing.T) {
	if !unicode.IsSpace('\n') || !unicode.IsSpace(' ') || !unicode.IsSpace('\t') {
		t.Fatal("unexpected unicode.IsSpace behavior")
	}
}
