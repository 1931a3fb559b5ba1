package ui

import (
	"sort"

	"github.com/softglow/glimmer/engine/geom"
)

// maxSortedSiblings bounds the per-level scratch used to order free-layout
// siblings by active-path recency. Siblings beyond the bound are processed
// after the sorted ones, in declaration order: their stacking degrades but
// they are never dropped.
const maxSortedSiblings = 256

type siblingStamp struct {
	idx   int32
	stamp uint32
}

// sortChildrenByRecency collects up to maxSortedSiblings children of
// parentIdx into buf ordered by ascending lastFrameInActivePath, and
// returns the sorted slice plus the first uncollected child (nilIndex
// when everything fit).
func (ui *Ui) sortChildrenByRecency(parentIdx int32, buf []siblingStamp) ([]siblingStamp, int32) {
	child := ui.tree[parentIdx].child
	for child != nilIndex && len(buf) < maxSortedSiblings {
		buf = append(buf, siblingStamp{idx: child, stamp: ui.tree[child].lastFrameInActivePath})
		child = ui.tree[child].sibling
	}

	sort.Slice(buf, func(i, j int) bool { return buf[i].stamp < buf[j].stamp })

	return buf, child
}

// findHoveredCtrl descends from idx to the deepest control whose absolute
// rect (from the previous layout pass) contains the cursor. Free-layout
// children are probed most-recently-active first so that overlapping
// panels resolve to the one on top; horizontal/vertical children cannot
// overlap and are probed in declaration order. Returns nilIndex when the
// cursor is outside idx's rect.
func (ui *Ui) findHoveredCtrl(idx int32, cursor geom.Vec2) int32 {
	node := &ui.tree[idx]

	absoluteRect := geom.Rect{
		X:      node.layoutCacheResolvedPosition.X,
		Y:      node.layoutCacheResolvedPosition.Y,
		Width:  node.rect.Width,
		Height: node.rect.Height,
	}
	if !absoluteRect.ContainsPoint(cursor) {
		return nilIndex
	}

	if node.layout == LayoutFree {
		var scratch [maxSortedSiblings]siblingStamp
		sorted, overflow := ui.sortChildrenByRecency(idx, scratch[:0])

		for child := overflow; child != nilIndex; child = ui.tree[child].sibling {
			if hit := ui.findHoveredCtrl(child, cursor); hit != nilIndex {
				return hit
			}
		}
		for i := len(sorted) - 1; i >= 0; i-- {
			if hit := ui.findHoveredCtrl(sorted[i].idx, cursor); hit != nilIndex {
				return hit
			}
		}
	} else {
		for child := node.child; child != nilIndex; child = ui.tree[child].sibling {
			if hit := ui.findHoveredCtrl(child, cursor); hit != nilIndex {
				return hit
			}
		}
	}

	return idx
}

// applyScroll spends the frame's accumulated wheel delta on the hovered
// control, or failing that on the nearest ancestor that both captures
// scroll and can still move in the requested direction. The delta is
// consumed whole by the first control that accepts it.
func (ui *Ui) applyScroll() {
	if ui.scrollDelta == (geom.Vec2{}) || ui.hoveredCtrl == nilIndex {
		return
	}

	for idx := ui.hoveredCtrl; ; {
		node := &ui.tree[idx]

		// Scrollable range: content extents past the content box.
		inner := node.rect.Inset(node.border + node.padding).Size()
		scrollSize := node.layoutCacheContentExtents.Sub(inner).Max(geom.Vec2{})

		offset := node.scrollOffset.Sub(ui.scrollDelta).Clamp(geom.Vec2{}, scrollSize)
		if node.flags.Intersects(CaptureScroll) && offset != node.scrollOffset {
			node.scrollOffset = offset
			return
		}

		if node.parent == nilIndex {
			return
		}
		idx = node.parent
	}
}
