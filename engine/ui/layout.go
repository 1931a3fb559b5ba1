package ui

import "github.com/softglow/glimmer/engine/geom"

// layoutCtrl resolves the control's absolute position and content extents
// in a single post-order pass rooted at EndFrame. base is the parent's
// content origin in absolute coordinates, already shifted by the parent's
// scroll and by any stacking offset the parent's layout assigned to this
// child.
func (ui *Ui) layoutCtrl(idx int32, base geom.Vec2) {
	node := &ui.tree[idx]

	resolved := base.Add(node.rect.MinPoint()).Add(geom.Splat(node.margin))
	node.layoutCacheResolvedPosition = resolved

	extents := geom.Vec2{}
	if node.child != nilIndex {
		childBase := resolved.Add(geom.Splat(node.border + node.padding)).Sub(node.scrollOffset)

		switch node.layout {
		case LayoutFree:
			// Union of the children's margin boxes.
			first := true
			var union geom.Rect
			for child := node.child; child != nilIndex; child = ui.tree[child].sibling {
				ui.layoutCtrl(child, childBase)
				marginRect := ui.tree[child].rect.Offset(ui.tree[child].margin)
				if first {
					union = marginRect
					first = false
				} else {
					union = union.ExtendByRect(marginRect)
				}
			}
			extents = union.MaxPoint()

		case LayoutHorizontal:
			var offset float32
			for child := node.child; child != nilIndex; child = ui.tree[child].sibling {
				ui.layoutCtrl(child, childBase.Add(geom.V2(offset, 0)))
				size := ui.tree[child].rect.Offset(ui.tree[child].margin).Size()
				offset += size.X
				extents.X += size.X
				if size.Y > extents.Y {
					extents.Y = size.Y
				}
			}

		case LayoutVertical:
			var offset float32
			for child := node.child; child != nilIndex; child = ui.tree[child].sibling {
				ui.layoutCtrl(child, childBase.Add(geom.V2(0, offset)))
				size := ui.tree[child].rect.Offset(ui.tree[child].margin).Size()
				offset += size.Y
				extents.Y += size.Y
				if size.X > extents.X {
					extents.X = size.X
				}
			}
		}
	}

	if node.hasInlineContent {
		extents = extents.Max(node.inlineContentRect.MaxPoint())
	}
	node.layoutCacheContentExtents = extents

	if node.flags.Intersects(allResizeToFit) {
		outer := 2 * (node.border + node.padding)
		if node.flags.Intersects(ResizeToFitHorizontal) {
			node.rect.Width = extents.X + outer
		}
		if node.flags.Intersects(ResizeToFitVertical) {
			node.rect.Height = extents.Y + outer
		}
	}
}
