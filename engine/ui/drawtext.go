package ui

import (
	"github.com/softglow/glimmer/engine/colors"
	"github.com/softglow/glimmer/engine/geom"
	"github.com/softglow/glimmer/engine/text"
)

// DrawText records text quads in the control's content space, one quad
// per visible glyph, textured from the font atlas.
//
// availableRect bounds the text within content space; nil means the
// control's whole content box. inset uniformly shrinks that rect before
// wrapping and alignment. When extendInline is set, every glyph grows the
// control's inline content rect, which feeds shrink/resize-to-fit.
// Vertical alignment is forced to AlignStart on controls with a vertical
// fit flag, since their height tracks the content.
//
// Like DrawRect, calls must not be interleaved with children's draw calls.
func (c Ctrl) DrawText(extendInline bool, availableRect *geom.Rect, inset float32, s string, halign, valign Align, wrap text.Wrap, color colors.Color) {
	if inset < 0 {
		panic("ui: negative text inset")
	}

	ui := c.ui
	node := &ui.tree[c.idx]
	if node.drawEnd != len(ui.drawPrimitives) {
		panic("ui: draw calls for a control must be contiguous")
	}

	if node.flags.Intersects(verticalFitFlags) {
		valign = AlignStart
	}

	var avail geom.Rect
	if availableRect != nil {
		avail = *availableRect
	} else {
		size := node.rect.Inset(node.border + node.padding).Size()
		avail = geom.R(0, 0, size.X, size.Y)
	}
	avail = avail.Inset(inset)

	atlas := ui.fontAtlas
	missing := atlas.MissingGlyph()

	// Nothing can fit: even the missing-glyph box overflows.
	if wrap != text.WrapNone && missing.AdvanceWidth > avail.Width {
		return
	}

	ui.lines = text.ComputeLines(ui.lines, s, avail.Width, wrap, atlas, missing.AdvanceWidth)
	text.TrimLines(ui.lines, s, atlas)

	metrics := atlas.Metrics()
	imageWidth, imageHeight := atlas.ImageSize()
	cellWidth, cellHeight := atlas.CellSize()
	atlasWidth, atlasHeight := float32(imageWidth), float32(imageHeight)

	packed := color.PackRGBA8()

	posY := metrics.LineGap
	if blockSize := float32(len(ui.lines))*metrics.NewLineSize - metrics.LineGap; blockSize < avail.Height {
		switch valign {
		case AlignStart:
			posY += avail.Y
		case AlignCenter:
			posY += avail.Y + (avail.Height-blockSize)/2
		case AlignEnd:
			posY += avail.Y + avail.Height - blockSize
		}
	}

	for _, line := range ui.lines {
		var posX float32
		switch halign {
		case AlignStart:
			posX = avail.X
		case AlignCenter:
			posX = avail.X + (avail.Width-line.Width)/2
		case AlignEnd:
			posX = avail.X + avail.Width - line.Width
		}

		for _, ch := range s[line.Start:line.End] {
			info := atlas.Glyph(ch)

			if info.Width > 0 && info.Height > 0 {
				rect := geom.R(
					posX+info.XMin,
					posY+metrics.Ascent-info.Height-info.YMin,
					info.Width,
					info.Height,
				)
				textureRect := geom.R(
					float32(int(info.GridX)*cellWidth)/atlasWidth,
					float32(int(info.GridY)*cellHeight)/atlasHeight,
					info.Width/atlasWidth,
					info.Height/atlasHeight,
				)

				ui.drawPrimitives = append(ui.drawPrimitives, drawPrimitive{
					rect:        rect,
					textureRect: textureRect,
					textureID:   ui.fontAtlasTextureID,
					color:       packed,
				})
				node.drawEnd++

				if extendInline {
					c.extendInlineContentRect(rect)
				}
			}

			posX += info.AdvanceWidth
		}

		posY += metrics.NewLineSize
	}

	// The inset counts as content when fitting.
	if extendInline && node.hasInlineContent {
		node.inlineContentRect = node.inlineContentRect.Resize(geom.Splat(inset))
	}
}
