package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// UnicodeRanges selects which Unicode sub-ranges get rasterized into the
// atlas. The atlas is built once; codepoints outside the selected ranges
// render as the missing-glyph box.
type UnicodeRanges uint32

const (
	BasicLatin UnicodeRanges = 1 << iota
	Latin1Supplement
	LatinExtendedA
	LatinExtendedB
	CJKSymbolsAndPunctuation
	Hiragana
	Katakana
	CJKUnifiedIdeographs
)

const (
	AllLatin    = BasicLatin | Latin1Supplement | LatinExtendedA | LatinExtendedB
	AllJapanese = CJKSymbolsAndPunctuation | Hiragana | Katakana | CJKUnifiedIdeographs
	AllRanges   = AllLatin | AllJapanese
)

// Intersects reports whether the two masks share any bit.
func (ur UnicodeRanges) Intersects(other UnicodeRanges) bool { return ur&other != 0 }

type codepointRange struct {
	flag   UnicodeRanges
	lo, hi rune
}

var codepointRanges = [...]codepointRange{
	{BasicLatin, 0x0000, 0x007f},
	{Latin1Supplement, 0x0080, 0x00ff},
	{LatinExtendedA, 0x0100, 0x017f},
	{LatinExtendedB, 0x0180, 0x024f},
	{CJKSymbolsAndPunctuation, 0x3000, 0x303f},
	{Hiragana, 0x3040, 0x309f},
	{Katakana, 0x30a0, 0x30ff},
	{CJKUnifiedIdeographs, 0x4e00, 0x9fff},
}

// eachCodepoint visits every codepoint in the selected ranges, in range
// order. The enumeration order also fixes atlas cell assignment.
func (ur UnicodeRanges) eachCodepoint(fn func(rune)) {
	for _, r := range codepointRanges {
		if !ur.Intersects(r.flag) {
			continue
		}
		for c := r.lo; c <= r.hi; c++ {
			fn(c)
		}
	}
}

// CodepointCount reports how many codepoints the selected ranges cover.
func (ur UnicodeRanges) CodepointCount() int {
	count := 0
	for _, r := range codepointRanges {
		if ur.Intersects(r.flag) {
			count += int(r.hi-r.lo) + 1
		}
	}
	return count
}

// GlyphInfo locates one glyph in the atlas grid and carries its raw metrics
// in pixels. XMin is the left side bearing; YMin is the offset of the
// bounding box bottom from the baseline, positive upward (negative for
// descenders).
type GlyphInfo struct {
	GridX, GridY uint16

	AdvanceWidth float32

	Width, Height float32
	XMin, YMin    float32
}

// LineMetrics are the font's horizontal line metrics in pixels. Descent is
// negative (below the baseline). NewLineSize is the baseline-to-baseline
// advance: Ascent - Descent + LineGap.
type LineMetrics struct {
	Ascent      float32
	Descent     float32
	LineGap     float32
	NewLineSize float32
}

// FontAtlas maps glyph indices to fixed-size grid cells of a single packed
// RGBA8 bitmap. It is immutable once built; there is no incremental glyph
// addition.
type FontAtlas struct {
	font *sfnt.Font
	buf  sfnt.Buffer

	lineMetrics LineMetrics

	cellWidth, cellHeight   int
	imageWidth, imageHeight int
	image                   []byte

	glyphs       map[sfnt.GlyphIndex]GlyphInfo
	missingGlyph GlyphInfo
}

// NewFontAtlas rasterizes every distinct glyph of the selected codepoint
// ranges at sizePx into a grid-aligned atlas. Glyphs are white with alpha
// coverage so the backend can tint via vertex color. Unparsable font bytes
// are a construction failure; no partial atlas is produced.
func NewFontAtlas(fontBytes []byte, ranges UnicodeRanges, sizePx float32) (*FontAtlas, error) {
	fnt, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer face.Close()

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	a := &FontAtlas{
		font: fnt,
		lineMetrics: LineMetrics{
			Ascent:      ascent,
			Descent:     descent,
			LineGap:     lineGap,
			NewLineSize: ascent - descent + lineGap,
		},
	}

	// First pass: resolve codepoints to glyph indices, measure every
	// distinct glyph once and track the largest bounding box. Distinct
	// codepoints may share a glyph; only the first occurrence counts.
	// Unmapped codepoints all resolve to glyph index 0, the font's .notdef,
	// which gets measured and rasterized like any other glyph.
	type measured struct {
		c              rune
		advance        float32
		x0, y0, x1, y1 int
	}
	glyphBounds := make(map[sfnt.GlyphIndex]measured, ranges.CodepointCount())
	maxGlyphWidth, maxGlyphHeight := 0, 0

	ranges.eachCodepoint(func(c rune) {
		idx, err := fnt.GlyphIndex(&a.buf, c)
		if err != nil {
			return
		}
		if _, seen := glyphBounds[idx]; seen {
			return
		}

		bounds, advance, ok := face.GlyphBounds(c)
		if !ok {
			return
		}

		mg := measured{
			c:       c,
			advance: float32(advance.Round()),
			x0:      bounds.Min.X.Floor(),
			y0:      bounds.Min.Y.Floor(),
			x1:      bounds.Max.X.Ceil(),
			y1:      bounds.Max.Y.Ceil(),
		}
		glyphBounds[idx] = mg

		if w := mg.x1 - mg.x0; w > maxGlyphWidth {
			maxGlyphWidth = w
		}
		if h := mg.y1 - mg.y0; h > maxGlyphHeight {
			maxGlyphHeight = h
		}
	})

	if maxGlyphWidth < 1 {
		maxGlyphWidth = 1
	}
	if maxGlyphHeight < 1 {
		maxGlyphHeight = 1
	}
	a.cellWidth = maxGlyphWidth
	a.cellHeight = maxGlyphHeight

	// Cell 0 is reserved for the opaque placeholder, hence +1.
	cellCount := len(glyphBounds) + 1
	a.imageWidth, a.imageHeight = findAtlasImageSize(cellCount, maxGlyphWidth, maxGlyphHeight)
	gridWidth := a.imageWidth / maxGlyphWidth

	dst := image.NewRGBA(image.Rect(0, 0, a.imageWidth, a.imageHeight))

	// Opaque all-white cell 0, backing the synthesized missing-glyph box
	// and untextured quads.
	draw.Draw(dst, image.Rect(0, 0, maxGlyphWidth, maxGlyphHeight),
		image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)

	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	// Second pass: blit every distinct glyph into consecutive grid cells in
	// enumeration order. RGB stays white; only alpha carries coverage, so
	// the backend tints by multiplying with the vertex color.
	a.glyphs = make(map[sfnt.GlyphIndex]GlyphInfo, len(glyphBounds))
	cellIndex := 1
	ranges.eachCodepoint(func(c rune) {
		idx, err := fnt.GlyphIndex(&a.buf, c)
		if err != nil {
			return
		}
		if _, done := a.glyphs[idx]; done {
			return
		}
		mg, ok := glyphBounds[idx]
		if !ok {
			return
		}

		gridX := cellIndex % gridWidth
		gridY := cellIndex / gridWidth
		cellIndex++

		pixelX := gridX * maxGlyphWidth
		pixelY := gridY * maxGlyphHeight

		// The drawer paints the glyph box at Dot+bounds; place Dot so the
		// box lands exactly on the cell origin.
		drawer.Dot = fixed.P(pixelX-mg.x0, pixelY-mg.y0)
		drawer.DrawString(string(mg.c))

		a.glyphs[idx] = GlyphInfo{
			GridX: uint16(gridX),
			GridY: uint16(gridY),

			AdvanceWidth: mg.advance,

			Width:  float32(mg.x1 - mg.x0),
			Height: float32(mg.y1 - mg.y0),
			XMin:   float32(mg.x0),
			YMin:   float32(-mg.y1),
		}
	})

	whiteOnly(dst)
	a.image = dst.Pix

	a.missingGlyph = makeMissingGlyph(maxGlyphWidth, maxGlyphHeight)

	log.Printf("text: font atlas %dx%d px, %dx%d cells, %d glyphs",
		a.imageWidth, a.imageHeight, maxGlyphWidth, maxGlyphHeight, len(a.glyphs))

	return a, nil
}

// whiteOnly forces RGB to full white everywhere, keeping only coverage in
// alpha. The drawer writes antialiased gray RGB which would bleed when the
// backend multiplies by vertex color.
func whiteOnly(img *image.RGBA) {
	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = 255
		pix[i+1] = 255
		pix[i+2] = 255
	}
}

// makeMissingGlyph synthesizes placeholder metrics over the reserved cell 0:
// a box at 70% of the max cell size, advancing 80% of the cell width.
func makeMissingGlyph(cellWidth, cellHeight int) GlyphInfo {
	const advanceRatio = 0.8
	const sizeRatio = 0.7

	w := float32(cellWidth)
	h := float32(cellHeight)

	return GlyphInfo{
		GridX: 0,
		GridY: 0,

		AdvanceWidth: w * advanceRatio,

		Width:  w * sizeRatio,
		Height: h * sizeRatio,
		XMin:   w * 0.5 * (1 - sizeRatio),
		YMin:   h * 0.5 * (1 - sizeRatio),
	}
}

// Glyph returns the atlas info for the glyph rendering c. Codepoints the
// font does not map resolve to its rasterized .notdef glyph when one was
// built, and to the synthesized placeholder otherwise.
func (a *FontAtlas) Glyph(c rune) GlyphInfo {
	idx, err := a.font.GlyphIndex(&a.buf, c)
	if err == nil {
		if info, ok := a.glyphs[idx]; ok {
			return info
		}
	}
	return a.missingGlyph
}

// GlyphAdvance reports the horizontal advance for c in pixels. It satisfies
// the wrap measurer contract.
func (a *FontAtlas) GlyphAdvance(c rune) float32 {
	return a.Glyph(c).AdvanceWidth
}

// MissingGlyph returns the synthesized placeholder glyph over cell 0.
func (a *FontAtlas) MissingGlyph() GlyphInfo { return a.missingGlyph }

// Metrics returns the font's horizontal line metrics.
func (a *FontAtlas) Metrics() LineMetrics { return a.lineMetrics }

// CellSize returns the uniform grid cell extents in pixels.
func (a *FontAtlas) CellSize() (int, int) { return a.cellWidth, a.cellHeight }

// ImageSize returns the atlas pixel extents.
func (a *FontAtlas) ImageSize() (int, int) { return a.imageWidth, a.imageHeight }

// ImageRGBA8 returns the raw atlas pixels for one-time texture upload.
func (a *FontAtlas) ImageRGBA8() []byte { return a.image }

// GlyphCount reports the number of distinct rasterized glyphs, excluding
// the reserved placeholder cell.
func (a *FontAtlas) GlyphCount() int { return len(a.glyphs) }

// findAtlasImageSize searches increasing power-of-two square edges for the
// smallest atlas whose grid fits cellCount cells. If the square fits, a
// non-square candidate with the previous power-of-two height is tried
// before settling.
func findAtlasImageSize(cellCount, cellWidth, cellHeight int) (int, int) {
	fits := func(atlasWidth, atlasHeight int) bool {
		cols := atlasWidth / cellWidth
		if cols == 0 {
			return false
		}
		rows := cellCount/cols + 1
		return rows*cellHeight <= atlasHeight
	}

	prev := 1
	edge := 2
	for !fits(edge, edge) {
		prev = edge
		edge *= 2
	}

	if fits(edge, prev) {
		return edge, prev
	}
	return edge, edge
}
