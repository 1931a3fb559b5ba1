package text

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func isPowerOfTwo(v int) bool { return v > 0 && v&(v-1) == 0 }

func TestFindAtlasImageSize(t *testing.T) {
	tests := []struct {
		cellCount, cellWidth, cellHeight int
	}{
		{1, 1, 1},
		{2, 8, 16},
		{97, 10, 18},
		{128, 12, 20},
		{500, 7, 13},
		{7000, 24, 30},
		{1, 100, 100},
	}

	for _, tt := range tests {
		w, h := findAtlasImageSize(tt.cellCount, tt.cellWidth, tt.cellHeight)

		if !isPowerOfTwo(w) || !isPowerOfTwo(h) {
			t.Errorf("size for %+v = %dx%d, want powers of two", tt, w, h)
			continue
		}

		cols := w / tt.cellWidth
		if cols < 1 {
			t.Errorf("size for %+v = %dx%d, fits no column", tt, w, h)
			continue
		}
		rows := (tt.cellCount + cols - 1) / cols
		if rows*tt.cellHeight > h {
			t.Errorf("size for %+v = %dx%d, %d rows x %d do not fit", tt, w, h, rows, tt.cellHeight)
		}
	}
}

func TestFindAtlasImageSizePrefersNonSquareWhenItFits(t *testing.T) {
	// 4 cells of 3x3: the 8x8 square fails the conservative
	// rows = count/cols + 1 accounting (cols=2, rows=3, 3*3=9 > 8), so the
	// search lands on 16 and then the 16x8 candidate must be taken.
	w, h := findAtlasImageSize(4, 3, 3)
	if w != 16 || h != 8 {
		t.Fatalf("size = %dx%d, want 16x8", w, h)
	}
}

func TestUnicodeRangesCodepointCount(t *testing.T) {
	if got := BasicLatin.CodepointCount(); got != 128 {
		t.Errorf("BasicLatin count = %d, want 128", got)
	}
	if got := AllLatin.CodepointCount(); got != 128+128+128+208 {
		t.Errorf("AllLatin count = %d, want 592", got)
	}
	if got := Hiragana.CodepointCount(); got != 96 {
		t.Errorf("Hiragana count = %d, want 96", got)
	}
}

func buildTestAtlas(t *testing.T) *FontAtlas {
	t.Helper()
	atlas, err := NewFontAtlas(goregular.TTF, BasicLatin, 16)
	if err != nil {
		t.Fatalf("NewFontAtlas: %v", err)
	}
	return atlas
}

func TestFontAtlasBuild(t *testing.T) {
	atlas := buildTestAtlas(t)

	w, h := atlas.ImageSize()
	if !isPowerOfTwo(w) || !isPowerOfTwo(h) {
		t.Errorf("image size = %dx%d, want powers of two", w, h)
	}
	if got := len(atlas.ImageRGBA8()); got != w*h*4 {
		t.Errorf("image byte length = %d, want %d", got, w*h*4)
	}

	cw, ch := atlas.CellSize()
	if cw <= 0 || ch <= 0 {
		t.Fatalf("cell size = %dx%d", cw, ch)
	}

	if atlas.GlyphCount() < 50 {
		t.Errorf("glyph count = %d, expected most of Basic Latin", atlas.GlyphCount())
	}

	m := atlas.Metrics()
	if m.Ascent <= 0 || m.NewLineSize <= 0 {
		t.Errorf("suspicious line metrics: %+v", m)
	}
	if m.Descent > 0 {
		t.Errorf("descent = %v, want <= 0", m.Descent)
	}
}

func TestFontAtlasReservedCellIsOpaqueWhite(t *testing.T) {
	atlas := buildTestAtlas(t)

	pix := atlas.ImageRGBA8()
	w, _ := atlas.ImageSize()
	cw, ch := atlas.CellSize()

	for _, p := range [][2]int{{0, 0}, {cw - 1, 0}, {0, ch - 1}, {cw - 1, ch - 1}, {cw / 2, ch / 2}} {
		i := (p[0] + p[1]*w) * 4
		if pix[i] != 255 || pix[i+1] != 255 || pix[i+2] != 255 || pix[i+3] != 255 {
			t.Fatalf("cell 0 pixel %v = %v, want opaque white", p, pix[i:i+4])
		}
	}
}

func TestFontAtlasRGBIsAlwaysWhite(t *testing.T) {
	atlas := buildTestAtlas(t)

	pix := atlas.ImageRGBA8()
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 255 || pix[i+1] != 255 || pix[i+2] != 255 {
			t.Fatalf("pixel %d RGB = %v, want white (tinting is vertex-color multiply)", i/4, pix[i:i+3])
		}
	}
}

func TestFontAtlasGlyphLookup(t *testing.T) {
	atlas := buildTestAtlas(t)

	a := atlas.Glyph('A')
	if a == atlas.MissingGlyph() {
		t.Fatal("glyph for 'A' resolved to the missing glyph")
	}
	if a.AdvanceWidth <= 0 || a.Width <= 0 || a.Height <= 0 {
		t.Fatalf("suspicious metrics for 'A': %+v", a)
	}
	if a.GridX == 0 && a.GridY == 0 {
		t.Fatal("glyph for 'A' mapped to the reserved cell")
	}

	// Distinct codepoints, distinct glyphs, distinct cells.
	b := atlas.Glyph('B')
	if a.GridX == b.GridX && a.GridY == b.GridY {
		t.Fatal("'A' and 'B' share an atlas cell")
	}
}

func TestFontAtlasUnmappedCodepoints(t *testing.T) {
	atlas := buildTestAtlas(t)

	// U+3042 is outside Basic Latin; the atlas never grows after build.
	// Every unmapped codepoint resolves through glyph index 0, so they all
	// share one glyph info.
	got := atlas.Glyph('あ')
	if other := atlas.Glyph('€'); other != got {
		t.Fatalf("unmapped codepoints disagree: %+v vs %+v", got, other)
	}

	if notdef, ok := atlas.glyphs[0]; ok {
		// The font's .notdef was rasterized into a regular cell.
		if got != notdef {
			t.Fatalf("unmapped glyph = %+v, want rasterized .notdef %+v", got, notdef)
		}
		if got.GridX == 0 && got.GridY == 0 {
			t.Fatal(".notdef mapped to the reserved white cell")
		}
	} else if got != atlas.MissingGlyph() {
		t.Fatalf("unmapped glyph = %+v, want synthesized placeholder", got)
	}
}

func TestFontAtlasGlyphCellsInBounds(t *testing.T) {
	atlas := buildTestAtlas(t)

	w, h := atlas.ImageSize()
	cw, ch := atlas.CellSize()

	for c := rune(0x20); c < 0x7f; c++ {
		g := atlas.Glyph(c)
		if (int(g.GridX)+1)*cw > w || (int(g.GridY)+1)*ch > h {
			t.Fatalf("glyph %q cell (%d,%d) exceeds %dx%d atlas with %dx%d cells",
				c, g.GridX, g.GridY, w, h, cw, ch)
		}
		if g.Width > float32(cw) || g.Height > float32(ch) {
			t.Fatalf("glyph %q bigger than its cell: %+v", c, g)
		}
	}
}

func TestFontAtlasMissingGlyphRatios(t *testing.T) {
	atlas := buildTestAtlas(t)

	cw, ch := atlas.CellSize()
	mg := atlas.MissingGlyph()

	if mg.GridX != 0 || mg.GridY != 0 {
		t.Fatalf("missing glyph cell = (%d,%d), want (0,0)", mg.GridX, mg.GridY)
	}
	if mg.AdvanceWidth != float32(cw)*0.8 {
		t.Errorf("missing glyph advance = %v, want %v", mg.AdvanceWidth, float32(cw)*0.8)
	}
	if mg.Width != float32(cw)*0.7 || mg.Height != float32(ch)*0.7 {
		t.Errorf("missing glyph box = %vx%v, want 70%% of cell %dx%d", mg.Width, mg.Height, cw, ch)
	}
}

func TestFontAtlasRejectsGarbage(t *testing.T) {
	if _, err := NewFontAtlas([]byte("definitely not a font"), BasicLatin, 16); err == nil {
		t.Fatal("NewFontAtlas accepted garbage bytes")
	}
}
