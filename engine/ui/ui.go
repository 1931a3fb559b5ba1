// Package ui is the runtime core of the immediate-mode GUI: application
// code declares a control tree every frame with Push/Pop, and the engine
// reconciles the declaration against the retained tree from the previous
// frame, collects controls that were not revisited, computes layout,
// resolves hover/active/scroll and emits a renderer-agnostic draw list.
//
// A Ui instance is single-threaded: exactly one build session may be open
// at a time and every operation runs to completion on the calling thread.
package ui

import (
	"fmt"

	"github.com/softglow/glimmer/engine/core"
	"github.com/softglow/glimmer/engine/geom"
	"github.com/softglow/glimmer/engine/gfx/drawlist"
	"github.com/softglow/glimmer/engine/text"
)

const (
	// nilIndex is the sentinel for "no control" in the index-based forest.
	nilIndex = int32(-1)
	// rootIndex is the permanent root control. It is never collected.
	rootIndex = int32(0)

	nodeCapacity = 1024

	// maxReceivedCharacters bounds the per-frame text input queue.
	// Overflow characters are dropped, not buffered.
	maxReceivedCharacters = 32
)

// Flags is a per-control bitset opting into event capture and automatic
// sizing.
type Flags uint32

const (
	// CaptureScroll makes the control eligible for user-generated
	// scrolling. Controls can be scrolled programmatically regardless.
	CaptureScroll Flags = 1 << iota
	// CaptureHover makes the control report being hovered instead of
	// letting the hover flow to its parent.
	CaptureHover
	// CaptureActive makes the control become active when one of its
	// descendants relinquishes active status.
	CaptureActive
	// ShrinkToFitInlineHorizontal shrinks (never grows) the control's rect
	// width to its inline content at Pop.
	ShrinkToFitInlineHorizontal
	// ShrinkToFitInlineVertical shrinks (never grows) the control's rect
	// height to its inline content at Pop.
	ShrinkToFitInlineVertical
	// ResizeToFitHorizontal resizes the control's rect width to its
	// content extents during layout. Interactivity may lag one frame.
	ResizeToFitHorizontal
	// ResizeToFitVertical resizes the control's rect height to its
	// content extents during layout.
	ResizeToFitVertical
)

const (
	allShrinkToFitInline = ShrinkToFitInlineHorizontal | ShrinkToFitInlineVertical
	allResizeToFit       = ResizeToFitHorizontal | ResizeToFitVertical
	verticalFitFlags     = ShrinkToFitInlineVertical | ResizeToFitVertical
)

// Intersects reports whether the two flag sets share any bit.
func (f Flags) Intersects(other Flags) bool { return f&other != 0 }

// Layout selects how a control stacks its children.
type Layout uint8

const (
	// LayoutFree children are positioned absolutely by the declarer;
	// stacking order follows active-path recency.
	LayoutFree Layout = iota
	// LayoutHorizontal children stack left to right by margin box.
	LayoutHorizontal
	// LayoutVertical children stack top to bottom by margin box.
	LayoutVertical
)

// Align positions content within available space along one axis.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// StateSize is the size of the opaque per-control state buffer. The core
// never reads or writes its contents; widget code owns the interpretation.
const StateSize = 64

// drawPrimitive is one recorded draw call in control-local coordinates,
// replayed during rendering in the control's resolved frame.
type drawPrimitive struct {
	rect        geom.Rect
	textureRect geom.Rect
	textureID   uint64
	color       uint32
}

// ctrlNode lives exclusively in the tree arena and is addressed by index,
// never by pointer: the GC relocates nodes with swap-remove.
type ctrlNode struct {
	// Unique across siblings of one parent, but no further.
	id uint32

	parent, child, sibling int32

	// Collected if not equal to the current frame at EndFrame.
	lastFrame uint32
	// Orders free-layout siblings for hit-testing and rendering.
	lastFrameInActivePath uint32

	flags   Flags
	layout  Layout
	rect    geom.Rect
	padding float32
	border  float32
	margin  float32

	inlineContentRect geom.Rect
	hasInlineContent  bool

	scrollOffset geom.Vec2

	state [StateSize]byte

	drawSelf                bool
	drawSelfBorderColor     uint32
	drawSelfBackgroundColor uint32
	// Half-open range into Ui.drawPrimitives, contiguous per control.
	drawStart, drawEnd int

	// Written only by the layout pass; read by next frame's hit-test and
	// scroll resolution, and by this frame's rendering.
	layoutCacheResolvedPosition geom.Vec2
	layoutCacheContentExtents   geom.Vec2
}

// Ui owns the retained control tree and all per-frame buffers. Instances
// are fully independent; there is no process-global state.
type Ui struct {
	drawPrimitives []drawPrimitive
	drawList       *drawlist.DrawList

	fontAtlas          *text.FontAtlas
	fontAtlasTextureID uint64

	tree []ctrlNode

	inFrame      bool
	buildParent  int32
	buildSibling int32

	currentFrame uint32

	windowSize         geom.Vec2
	scrollDelta        geom.Vec2
	cursorPosition     geom.Vec2
	inputsPressed      core.Inputs
	inputsReleased     core.Inputs
	receivedCharacters []rune

	activeCtrl           int32
	hoveredCtrl          int32
	hoveredCapturingCtrl int32

	wantCaptureKeyboard bool
	wantCaptureMouse    bool

	// Reused across frames to keep the hot path allocation-free.
	lines []text.Line
}

// New constructs an engine for a logical render target of the given
// extents. The font atlas is built once from fontBytes and is immutable
// for the engine's lifetime; unparsable font bytes fail construction.
func New(windowWidth, windowHeight float32, fontBytes []byte, fontRanges text.UnicodeRanges, fontSize float32) (*Ui, error) {
	atlas, err := text.NewFontAtlas(fontBytes, fontRanges, fontSize)
	if err != nil {
		return nil, fmt.Errorf("build font atlas: %w", err)
	}

	windowSize := geom.V2(windowWidth, windowHeight)

	ui := &Ui{
		drawPrimitives: make([]drawPrimitive, 0, nodeCapacity),
		drawList:       drawlist.New(nodeCapacity),

		fontAtlas: atlas,

		tree: make([]ctrlNode, 0, nodeCapacity),

		buildParent:  nilIndex,
		buildSibling: nilIndex,

		windowSize: windowSize,

		receivedCharacters: make([]rune, 0, maxReceivedCharacters),

		activeCtrl:           nilIndex,
		hoveredCtrl:          nilIndex,
		hoveredCapturingCtrl: nilIndex,
	}

	ui.tree = append(ui.tree, ctrlNode{
		parent:  nilIndex,
		child:   nilIndex,
		sibling: nilIndex,
		layout:  LayoutFree,
		rect:    geom.FromPoints(geom.Vec2{}, windowSize),
	})

	return ui, nil
}

// SetFontAtlasTextureID records the texture id the caller assigned to the
// uploaded atlas image. Text quads reference this id.
func (ui *Ui) SetFontAtlasTextureID(id uint64) { ui.fontAtlasTextureID = id }

// FontAtlasTextureID returns the id set by SetFontAtlasTextureID.
func (ui *Ui) FontAtlasTextureID() uint64 { return ui.fontAtlasTextureID }

// FontAtlas exposes the immutable atlas for one-time texture upload and
// for text measurement in widget code.
func (ui *Ui) FontAtlas() *text.FontAtlas { return ui.fontAtlas }

// SetWindowSize updates the logical render-target extents used for the
// root rect and draw-list culling from the next frame on.
func (ui *Ui) SetWindowSize(width, height float32) {
	ui.windowSize = geom.V2(width, height)
}

// Scroll accumulates wheel delta for the next frame.
func (ui *Ui) Scroll(deltaX, deltaY float32) {
	ui.scrollDelta = ui.scrollDelta.Add(geom.V2(deltaX, deltaY))
}

// SetCursorPosition sets the absolute cursor position.
func (ui *Ui) SetCursorPosition(x, y float32) {
	ui.cursorPosition = geom.V2(x, y)
}

// PressInputs accumulates pressed buttons/keys for the next frame.
func (ui *Ui) PressInputs(in core.Inputs) { ui.inputsPressed |= in }

// ReleaseInputs accumulates released buttons/keys for the next frame.
func (ui *Ui) ReleaseInputs(in core.Inputs) { ui.inputsReleased |= in }

// SendCharacter queues a received text character. The queue holds at most
// maxReceivedCharacters per frame; overflow is silently dropped.
func (ui *Ui) SendCharacter(c rune) {
	if len(ui.receivedCharacters) < maxReceivedCharacters {
		ui.receivedCharacters = append(ui.receivedCharacters, c)
	}
}

// CtrlCount reports the number of controls in the arena, including the
// root and any not-yet-collected controls.
func (ui *Ui) CtrlCount() int { return len(ui.tree) }

// WantCaptureKeyboard reports whether the UI wants keyboard input this
// frame rather than the application behind it.
func (ui *Ui) WantCaptureKeyboard() bool { return ui.wantCaptureKeyboard }

// WantCaptureMouse reports whether the UI wants mouse input this frame.
func (ui *Ui) WantCaptureMouse() bool { return ui.wantCaptureMouse }

// DrawList returns the frame's output. Valid after EndFrame and until the
// next BeginFrame.
func (ui *Ui) DrawList() *drawlist.DrawList { return ui.drawList }

// BeginFrame opens a build session: it resolves hover and capture from
// the previous frame's layout cache, delegates accumulated scroll, and
// establishes the build cursor at the root. Every BeginFrame must be
// paired with EndFrame; sessions must not be nested.
func (ui *Ui) BeginFrame() *Frame {
	if ui.inFrame {
		panic("ui: BeginFrame while a build session is open")
	}
	ui.inFrame = true

	ui.drawPrimitives = ui.drawPrimitives[:0]
	ui.drawList.Clear()
	ui.wantCaptureKeyboard = false
	ui.wantCaptureMouse = false

	ui.currentFrame++

	root := &ui.tree[rootIndex]
	root.lastFrame = ui.currentFrame
	root.lastFrameInActivePath = ui.currentFrame
	root.rect = geom.FromPoints(geom.Vec2{}, ui.windowSize)

	// Hover first: scroll delegation below targets the hovered leaf.
	ui.hoveredCapturingCtrl = nilIndex
	ui.hoveredCtrl = ui.findHoveredCtrl(rootIndex, ui.cursorPosition)

	if ui.hoveredCtrl != nilIndex {
		idx := ui.hoveredCtrl
		for !ui.tree[idx].flags.Intersects(CaptureHover) && ui.tree[idx].parent != nilIndex {
			idx = ui.tree[idx].parent
		}
		if ui.tree[idx].flags.Intersects(CaptureHover) {
			ui.hoveredCapturingCtrl = idx
			ui.wantCaptureMouse = true
		}
	}

	ui.applyScroll()

	ui.buildParent = rootIndex
	ui.buildSibling = nilIndex

	return &Frame{ui: ui}
}

// EndFrame closes the build session: it seals the root's child list,
// collects controls not revisited this frame, runs layout and renders the
// tree into the draw list. All effects of the frame are visible only
// after EndFrame returns.
func (ui *Ui) EndFrame() {
	if !ui.inFrame {
		panic("ui: EndFrame without an open build session")
	}
	if ui.buildParent != rootIndex {
		panic("ui: EndFrame with unbalanced Push/Pop")
	}

	// Seal the root the same way Pop seals other controls, so that
	// children from previous frames that were not revisited become
	// unreachable before collection.
	if ui.buildSibling != nilIndex {
		ui.tree[ui.buildSibling].sibling = nilIndex
	} else {
		ui.tree[rootIndex].child = nilIndex
	}

	ui.collectGarbage()

	ui.layoutCtrl(rootIndex, geom.Vec2{})

	windowRect := geom.FromPoints(geom.Vec2{}, ui.windowSize)
	ui.renderCtrl(rootIndex, windowRect, windowRect)

	ui.buildParent = nilIndex
	ui.buildSibling = nilIndex
	ui.inFrame = false

	// Inputs from the platform are consumed by exactly one frame.
	ui.scrollDelta = geom.Vec2{}
	ui.inputsPressed = 0
	ui.inputsReleased = 0
	ui.receivedCharacters = ui.receivedCharacters[:0]
}
