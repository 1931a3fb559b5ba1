package ui

import (
	"github.com/softglow/glimmer/engine/colors"
	"github.com/softglow/glimmer/engine/core"
	"github.com/softglow/glimmer/engine/geom"
)

// Frame is a handle to an open build session. It is only valid between the
// BeginFrame that produced it and the matching EndFrame.
type Frame struct {
	ui *Ui
}

// Push declares a control with the given id under the current build parent
// and descends into it: subsequent pushes declare its children until the
// matching Pop. The id must be unique among the siblings declared under
// one parent in one frame, but carries no meaning beyond that.
//
// If a control with the same id existed under this parent last frame, it
// is revived with all its retained data (rect, flags, scroll offset,
// state); otherwise a fresh control is appended to the arena. Either way
// the control ends up linked right after the previously pushed sibling,
// so sibling order always matches declaration order.
func (f *Frame) Push(id uint32) Ctrl {
	ui := f.ui
	if !ui.inFrame {
		panic("ui: Push outside a build session")
	}

	parentIdx := ui.buildParent
	drawStart := len(ui.drawPrimitives)

	// Only siblings not yet visited this frame are candidates: the search
	// starts right after the build cursor (or at the first child when
	// nothing was pushed under this parent yet).
	var searchStart, searchPrev int32
	if ui.buildSibling != nilIndex {
		searchPrev = ui.buildSibling
		searchStart = ui.tree[ui.buildSibling].sibling
	} else {
		searchPrev = nilIndex
		searchStart = ui.tree[parentIdx].child
	}

	found := nilIndex
	foundPrev := nilIndex
	for prev, idx := searchPrev, searchStart; idx != nilIndex; prev, idx = idx, ui.tree[idx].sibling {
		if ui.tree[idx].id == id {
			found, foundPrev = idx, prev
			break
		}
	}

	var idx int32
	if found != nilIndex {
		idx = found

		node := &ui.tree[idx]
		node.lastFrame = ui.currentFrame
		node.hasInlineContent = false
		node.inlineContentRect = geom.Rect{}
		node.drawStart = drawStart
		node.drawEnd = drawStart

		// Move the node right after the cursor unless it already is there.
		if ui.buildSibling != nilIndex {
			next := ui.tree[ui.buildSibling].sibling
			if next != idx {
				ui.tree[foundPrev].sibling = node.sibling
				ui.tree[ui.buildSibling].sibling = idx
				node.sibling = next
			}
		} else {
			first := ui.tree[parentIdx].child
			if first != idx {
				ui.tree[foundPrev].sibling = node.sibling
				ui.tree[parentIdx].child = idx
				node.sibling = first
			}
		}
	} else {
		idx = int32(len(ui.tree))

		// Link the new node after the cursor. The remainder of last
		// frame's chain hangs off the new node so later pushes can still
		// revive it.
		var next int32
		if ui.buildSibling != nilIndex {
			next = ui.tree[ui.buildSibling].sibling
			ui.tree[ui.buildSibling].sibling = idx
		} else {
			next = ui.tree[parentIdx].child
			ui.tree[parentIdx].child = idx
		}

		ui.tree = append(ui.tree, ctrlNode{
			id:        id,
			parent:    parentIdx,
			child:     nilIndex,
			sibling:   next,
			lastFrame: ui.currentFrame,
			layout:    LayoutFree,
			drawStart: drawStart,
			drawEnd:   drawStart,
		})
	}

	ui.buildParent = idx
	ui.buildSibling = nilIndex

	return Ctrl{ui: ui, idx: idx}
}

// Pop ascends from the current control back to its parent, sealing the
// current control's child list: anything linked after the last pushed
// child becomes unreachable and is collected at EndFrame. Popping the
// implicit root panics.
func (f *Frame) Pop() {
	ui := f.ui
	if !ui.inFrame {
		panic("ui: Pop outside a build session")
	}
	if ui.buildParent == rootIndex {
		panic("ui: Pop without matching Push")
	}

	idx := ui.buildParent
	node := &ui.tree[idx]

	if node.flags.Intersects(allShrinkToFitInline) {
		if ui.buildSibling != nilIndex {
			panic("ui: shrink-to-fit-inline control has children")
		}
		if node.hasInlineContent {
			content := node.inlineContentRect.MaxPoint()
			if node.flags.Intersects(ShrinkToFitInlineHorizontal) && content.X < node.rect.Width {
				node.rect.Width = content.X
			}
			if node.flags.Intersects(ShrinkToFitInlineVertical) && content.Y < node.rect.Height {
				node.rect.Height = content.Y
			}
		}
	}

	if ui.buildSibling != nilIndex {
		ui.tree[ui.buildSibling].sibling = nilIndex
	} else {
		node.child = nilIndex
	}

	ui.buildParent = node.parent
	ui.buildSibling = idx
}

// WindowSize returns the logical render-target extents for this frame.
func (f *Frame) WindowSize() geom.Vec2 { return f.ui.windowSize }

// CursorPosition returns the absolute cursor position for this frame.
func (f *Frame) CursorPosition() geom.Vec2 { return f.ui.cursorPosition }

// InputsPressed returns the buttons/keys pressed since the last frame.
func (f *Frame) InputsPressed() core.Inputs { return f.ui.inputsPressed }

// InputsReleased returns the buttons/keys released since the last frame.
func (f *Frame) InputsReleased() core.Inputs { return f.ui.inputsReleased }

// ReceivedCharacters returns the text characters received since the last
// frame, in arrival order. The slice is valid until EndFrame.
func (f *Frame) ReceivedCharacters() []rune { return f.ui.receivedCharacters }

// FontAtlasTextureID returns the id assigned to the uploaded atlas image.
func (f *Frame) FontAtlasTextureID() uint64 { return f.ui.fontAtlasTextureID }

// CtrlCount reports the number of controls currently in the arena.
func (f *Frame) CtrlCount() int { return len(f.ui.tree) }

// Ctrl is a lightweight handle to one control, valid only within the
// build session that produced it.
type Ctrl struct {
	ui  *Ui
	idx int32
}

// SetFlags replaces the control's capture and fit flags.
func (c Ctrl) SetFlags(flags Flags) { c.ui.tree[c.idx].flags = flags }

// Flags returns the control's current flags.
func (c Ctrl) Flags() Flags { return c.ui.tree[c.idx].flags }

// SetLayout selects how the control stacks its children.
func (c Ctrl) SetLayout(layout Layout) { c.ui.tree[c.idx].layout = layout }

// SetRect sets the control's rect relative to its parent's content
// origin. Under horizontal/vertical layout the position components act as
// extra offsets on top of the computed stacking position.
func (c Ctrl) SetRect(rect geom.Rect) { c.ui.tree[c.idx].rect = rect }

// Rect returns the control's rect.
func (c Ctrl) Rect() geom.Rect { return c.ui.tree[c.idx].rect }

// SetPadding sets the uniform inner spacing between the border and the
// content.
func (c Ctrl) SetPadding(padding float32) { c.ui.tree[c.idx].padding = padding }

// SetBorder sets the uniform border width drawn inside the rect.
func (c Ctrl) SetBorder(border float32) { c.ui.tree[c.idx].border = border }

// SetMargin sets the uniform outer spacing around the rect.
func (c Ctrl) SetMargin(margin float32) { c.ui.tree[c.idx].margin = margin }

// SetScrollOffsetX sets the horizontal content scroll programmatically,
// regardless of the CaptureScroll flag.
func (c Ctrl) SetScrollOffsetX(offset float32) { c.ui.tree[c.idx].scrollOffset.X = offset }

// SetScrollOffsetY sets the vertical content scroll programmatically.
func (c Ctrl) SetScrollOffsetY(offset float32) { c.ui.tree[c.idx].scrollOffset.Y = offset }

// ScrollOffsetX returns the horizontal content scroll.
func (c Ctrl) ScrollOffsetX() float32 { return c.ui.tree[c.idx].scrollOffset.X }

// ScrollOffsetY returns the vertical content scroll.
func (c Ctrl) ScrollOffsetY() float32 { return c.ui.tree[c.idx].scrollOffset.Y }

// SetDrawSelf toggles engine-drawn border and background decoration.
func (c Ctrl) SetDrawSelf(drawSelf bool) { c.ui.tree[c.idx].drawSelf = drawSelf }

// SetDrawSelfBorderColor sets the color of the engine-drawn border.
func (c Ctrl) SetDrawSelfBorderColor(color colors.Color) {
	c.ui.tree[c.idx].drawSelfBorderColor = color.PackRGBA8()
}

// SetDrawSelfBackgroundColor sets the color of the engine-drawn
// background.
func (c Ctrl) SetDrawSelfBackgroundColor(color colors.Color) {
	c.ui.tree[c.idx].drawSelfBackgroundColor = color.PackRGBA8()
}

// Hovered reports whether this control captured the hover resolved at
// BeginFrame from last frame's layout.
func (c Ctrl) Hovered() bool {
	return c.ui.hoveredCapturingCtrl == c.idx
}

// Active reports whether this control is the active control.
func (c Ctrl) Active() bool {
	return c.ui.activeCtrl == c.idx
}

// SetActive marks this control active, or relinquishes active status.
// Relinquishing hands active status to the nearest ancestor with
// CaptureActive; with no such ancestor, no control is active. Activation
// stamps the control's whole ancestor chain, which raises it above its
// free-layout siblings for hit-testing and rendering.
func (c Ctrl) SetActive(active bool) {
	ui := c.ui

	if active {
		ui.activeCtrl = c.idx
		ui.stampActivePath(c.idx)
		return
	}

	if ui.activeCtrl != c.idx {
		return
	}

	idx := ui.tree[c.idx].parent
	for idx != nilIndex && !ui.tree[idx].flags.Intersects(CaptureActive) {
		idx = ui.tree[idx].parent
	}

	ui.activeCtrl = idx
	if idx != nilIndex {
		ui.stampActivePath(idx)
	}
}

func (ui *Ui) stampActivePath(idx int32) {
	for ; idx != nilIndex; idx = ui.tree[idx].parent {
		ui.tree[idx].lastFrameInActivePath = ui.currentFrame
	}
}

// State returns the control's opaque state buffer, persisted across
// frames for as long as the control stays alive. The engine never
// interprets its contents. The pointer is invalidated by the next Push.
func (c Ctrl) State() *[StateSize]byte {
	return &c.ui.tree[c.idx].state
}

// AbsolutePosition returns the control's resolved position from the last
// layout pass. One frame stale during the build.
func (c Ctrl) AbsolutePosition() geom.Vec2 {
	return c.ui.tree[c.idx].layoutCacheResolvedPosition
}

// InnerSize returns the size of the control's content box: the rect
// shrunk by border and padding on every side, clamped to zero.
func (c Ctrl) InnerSize() geom.Vec2 {
	node := &c.ui.tree[c.idx]
	return node.rect.Inset(node.border + node.padding).Size()
}

// RequestWantCaptureKeyboard asks the application to route keyboard input
// to the UI this frame.
func (c Ctrl) RequestWantCaptureKeyboard() { c.ui.wantCaptureKeyboard = true }

// RequestWantCaptureMouse asks the application to route mouse input to
// the UI this frame.
func (c Ctrl) RequestWantCaptureMouse() { c.ui.wantCaptureMouse = true }

// DrawRect records a textured rectangle in the control's content space:
// it is replayed during rendering offset by the control's resolved
// position, border, padding and scroll. Draw calls for one control must
// be contiguous, i.e. not interleaved with its children's draw calls.
//
// textureRect is in normalized texture coordinates. For solid fills pass
// the zero rect and the font atlas texture: coordinate (0,0) falls on the
// atlas's reserved white cell.
func (c Ctrl) DrawRect(extendInline bool, rect, textureRect geom.Rect, color colors.Color, textureID uint64) {
	ui := c.ui
	node := &ui.tree[c.idx]
	if node.drawEnd != len(ui.drawPrimitives) {
		panic("ui: draw calls for a control must be contiguous")
	}

	ui.drawPrimitives = append(ui.drawPrimitives, drawPrimitive{
		rect:        rect,
		textureRect: textureRect,
		textureID:   textureID,
		color:       color.PackRGBA8(),
	})
	node.drawEnd++

	if extendInline {
		c.extendInlineContentRect(rect)
	}
}

func (c Ctrl) extendInlineContentRect(rect geom.Rect) {
	node := &c.ui.tree[c.idx]
	if node.hasInlineContent {
		node.inlineContentRect = node.inlineContentRect.ExtendByRect(rect)
	} else {
		node.inlineContentRect = rect
		node.hasInlineContent = true
	}
}
