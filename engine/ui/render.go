package ui

import "github.com/softglow/glimmer/engine/geom"

// renderCtrl walks the tree depth-first and replays recorded draw
// primitives into the draw list. parentScissor is the clip region the
// parent established; visible is the render-target rect used for culling.
// Controls whose clip region degenerates below half a pixel, or falls
// outside the target, are culled with their whole subtree.
func (ui *Ui) renderCtrl(idx int32, parentScissor, visible geom.Rect) {
	node := &ui.tree[idx]

	absoluteRect := geom.Rect{
		X:      node.layoutCacheResolvedPosition.X,
		Y:      node.layoutCacheResolvedPosition.Y,
		Width:  node.rect.Width,
		Height: node.rect.Height,
	}

	scissor := parentScissor.ClampRect(absoluteRect).Inset(node.border)
	if scissor.Width < 0.5 || scissor.Height < 0.5 || !scissor.IntersectsRect(visible) {
		return
	}

	// Decoration is clipped by the parent, not by the control itself: the
	// border lies outside the control's own clip region.
	if node.drawSelf {
		inner := absoluteRect.Inset(node.border)

		if node.drawSelfBorderColor>>24 != 0 && node.border > 0 {
			strips := [4]geom.Rect{
				geom.R(absoluteRect.X, absoluteRect.Y, inner.X-absoluteRect.X, absoluteRect.Height),
				geom.R(inner.MaxX(), absoluteRect.Y, absoluteRect.MaxX()-inner.MaxX(), absoluteRect.Height),
				geom.R(inner.X, absoluteRect.Y, inner.Width, inner.Y-absoluteRect.Y),
				geom.R(inner.X, inner.MaxY(), inner.Width, absoluteRect.MaxY()-inner.MaxY()),
			}
			for _, strip := range strips {
				if !strip.IsEmpty() {
					ui.drawList.DrawRect(strip, geom.Rect{}, node.drawSelfBorderColor, ui.fontAtlasTextureID)
				}
			}
		}

		if node.drawSelfBackgroundColor>>24 != 0 && !inner.IsEmpty() {
			ui.drawList.DrawRect(inner, geom.Rect{}, node.drawSelfBackgroundColor, ui.fontAtlasTextureID)
		}
	}

	ui.drawList.PushScissor(scissor)

	// Recorded primitives are in content space.
	delta := absoluteRect.MinPoint().
		Add(geom.Splat(node.border + node.padding)).
		Sub(node.scrollOffset)
	for i := node.drawStart; i < node.drawEnd; i++ {
		p := &ui.drawPrimitives[i]
		ui.drawList.DrawRect(p.rect.Translate(delta), p.textureRect, p.color, p.textureID)
	}

	if node.layout == LayoutFree {
		// Most recently active renders last, on top.
		var scratch [maxSortedSiblings]siblingStamp
		sorted, overflow := ui.sortChildrenByRecency(idx, scratch[:0])

		for _, s := range sorted {
			ui.renderCtrl(s.idx, scissor, visible)
		}
		for child := overflow; child != nilIndex; child = ui.tree[child].sibling {
			ui.renderCtrl(child, scissor, visible)
		}
	} else {
		for child := node.child; child != nilIndex; child = ui.tree[child].sibling {
			ui.renderCtrl(child, scissor, visible)
		}
	}

	ui.drawList.PopScissor()
}
