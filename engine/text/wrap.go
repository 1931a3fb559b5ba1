package text

import (
	"unicode"
	"unicode/utf8"
)

// Wrap selects the line breaking mode for text layout.
type Wrap int

const (
	// WrapWord breaks before the in-progress word when it fits on a line
	// by itself, falling back to letter wrapping mid-word otherwise.
	WrapWord Wrap = iota
	// WrapLetter breaks exactly at the glyph that would exceed the
	// available width.
	WrapLetter
	// WrapNone splits only on explicit newlines.
	WrapNone
)

// Line is one laid-out line: a half-open byte range into the source text
// plus its measured width.
type Line struct {
	Start, End int
	Width      float32
}

// Measurer provides per-character horizontal advances in pixels.
type Measurer interface {
	GlyphAdvance(c rune) float32
}

// ComputeLines splits text into lines no wider than availableWidth under
// the given wrap mode. It is a pure function of its inputs. Characters
// whose advance alone exceeds availableWidth are measured as
// missingAdvance (the missing-glyph box) when wrapping is enabled.
//
// Lines are appended to dst (reset first) so callers can reuse the slice
// across frames.
func ComputeLines(dst []Line, text string, availableWidth float32, wrap Wrap, m Measurer, missingAdvance float32) []Line {
	dst = dst[:0]

	lastWasSpace := false
	begunWordStart := 0

	lineStart, lineEnd := 0, 0
	var lineWidth float32

	for i, c := range text {
		begunWord := !unicode.IsSpace(c)
		if lastWasSpace && begunWord {
			begunWordStart = i
		}
		lastWasSpace = !begunWord

		if c == '\n' && lineEnd > lineStart {
			dst = append(dst, Line{lineStart, lineEnd, lineWidth})

			// 1 is the byte width of '\n'.
			lineStart, lineEnd = i+1, i+1
			lineWidth = 0
			continue
		}

		advance := m.GlyphAdvance(c)
		if wrap != WrapNone && advance > availableWidth {
			advance = missingAdvance
		}

		if lineWidth+advance > availableWidth {
			switch wrap {
			case WrapWord:
				// Re-measure the in-progress word. The decision below must
				// see the word's own width, not the whole line's.
				var wordWidth float32
				if begunWord {
					for _, wc := range text[begunWordStart:i] {
						wordWidth += m.GlyphAdvance(wc)
					}
				}

				if !begunWord || wordWidth+advance > availableWidth {
					// Not inside a word, or the word is wide enough to wrap
					// by itself: fall back to letter wrapping.
					dst = append(dst, Line{lineStart, lineEnd, lineWidth})

					lineStart = i
					lineEnd = i + utf8.RuneLen(c)
					lineWidth = advance
				} else {
					// Commit the line without the word and move the whole
					// word to the next line.
					dst = append(dst, Line{lineStart, begunWordStart, lineWidth - wordWidth})

					lineStart = begunWordStart
					lineEnd = i + utf8.RuneLen(c)
					lineWidth = wordWidth + advance
				}
				continue

			case WrapLetter:
				dst = append(dst, Line{lineStart, lineEnd, lineWidth})

				lineStart = i
				lineEnd = i + utf8.RuneLen(c)
				lineWidth = advance
				continue

			case WrapNone:
			}
		}

		lineEnd = i + utf8.RuneLen(c)
		lineWidth += advance
	}

	return append(dst, Line{lineStart, lineEnd, lineWidth})
}

// TrimLines strips leading and trailing whitespace from each line,
// reducing widths accordingly. Wrapping decisions were already made with
// the untrimmed widths, so trimming never re-triggers wrapping.
func TrimLines(lines []Line, text string, m Measurer) {
	for li := range lines {
		line := &lines[li]
		slice := text[line.Start:line.End]

		start := line.Start
		end := line.End
		var trimWidth float32

		for _, c := range slice {
			if !unicode.IsSpace(c) {
				break
			}
			start += utf8.RuneLen(c)
			trimWidth += m.GlyphAdvance(c)
		}

		for idx := len(slice); idx > 0; {
			c, size := utf8.DecodeLastRuneInString(slice[:idx])
			if !unicode.IsSpace(c) {
				break
			}
			idx -= size
			if idx > 0 {
				end -= size
				trimWidth += m.GlyphAdvance(c)
			}
		}

		if start > end {
			start = end
		}

		line.Start = start
		line.End = end
		if line.Width -= trimWidth; line.Width < 0 {
			line.Width = 0
		}
	}
}
