// Package drawlist accumulates rectangle quads and scissor push/pop markers
// into a flat vertex buffer plus a command stream. The list is rebuilt from
// scratch every frame and handed to a rendering backend; nothing in here
// talks to a GPU.
package drawlist

import "github.com/softglow/glimmer/engine/geom"

const vertsPerQuad = 6

// Vertex is one corner of a quad triangle. Color is packed RGBA8
// (0xAABBGGRR); the backend multiplies it with the sampled texel.
type Vertex struct {
	Position geom.Vec2
	TexCoord geom.Vec2
	Color    uint32
}

type CommandKind uint8

const (
	// CommandDraw consumes VertexCount vertices from the vertex buffer
	// using TextureID.
	CommandDraw CommandKind = iota
	// CommandPushScissor narrows the clip region to ScissorRect.
	CommandPushScissor
	// CommandPopScissor restores the previous clip region.
	CommandPopScissor
)

type Command struct {
	Kind        CommandKind
	TextureID   uint64
	VertexCount uint32
	ScissorRect geom.Rect
}

// Statistics captures the counts generated during one frame.
type Statistics struct {
	DrawCommands int
	QuadCount    int
}

// TotalVertexCount reports vertices emitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// DrawList is the per-frame output buffer. Backing slices are reused across
// frames; Clear resets lengths without releasing capacity.
type DrawList struct {
	commands []Command
	vertices []Vertex

	// Indices into commands of the open scissor pushes, innermost last.
	scissorStack []int

	stats Statistics
}

func New(capacityHint int) *DrawList {
	if capacityHint <= 0 {
		capacityHint = 1024
	}
	return &DrawList{
		commands: make([]Command, 0, capacityHint),
		vertices: make([]Vertex, 0, capacityHint*vertsPerQuad),
	}
}

func (dl *DrawList) Commands() []Command { return dl.commands }
func (dl *DrawList) Vertices() []Vertex  { return dl.vertices }
func (dl *DrawList) Stats() Statistics   { return dl.stats }

func (dl *DrawList) Clear() {
	dl.commands = dl.commands[:0]
	dl.vertices = dl.vertices[:0]
	dl.scissorStack = dl.scissorStack[:0]
	dl.stats = Statistics{}
}

// PushScissor opens a clip region. Pair every call with PopScissor.
func (dl *DrawList) PushScissor(rect geom.Rect) {
	dl.scissorStack = append(dl.scissorStack, len(dl.commands))
	dl.commands = append(dl.commands, Command{
		Kind:        CommandPushScissor,
		ScissorRect: rect,
	})
}

// PopScissor closes the innermost clip region. If nothing was drawn under
// the matching push, the push itself is removed instead of emitting a pop,
// so backends never see empty scissor scopes.
func (dl *DrawList) PopScissor() {
	if len(dl.scissorStack) == 0 {
		panic("drawlist: PopScissor without matching PushScissor")
	}

	top := dl.scissorStack[len(dl.scissorStack)-1]
	dl.scissorStack = dl.scissorStack[:len(dl.scissorStack)-1]

	if top == len(dl.commands)-1 {
		dl.commands = dl.commands[:top]
		return
	}

	dl.commands = append(dl.commands, Command{Kind: CommandPopScissor})
}

// DrawRect appends one positioned, textured quad. texRect is in normalized
// texture coordinates. Consecutive quads with the same texture merge into
// one draw command.
func (dl *DrawList) DrawRect(rect, texRect geom.Rect, color uint32, textureID uint64) {
	tl := Vertex{Position: rect.MinPoint(), TexCoord: texRect.MinPoint(), Color: color}
	tr := Vertex{Position: geom.V2(rect.MaxX(), rect.Y), TexCoord: geom.V2(texRect.MaxX(), texRect.Y), Color: color}
	bl := Vertex{Position: geom.V2(rect.X, rect.MaxY()), TexCoord: geom.V2(texRect.X, texRect.MaxY()), Color: color}
	br := Vertex{Position: rect.MaxPoint(), TexCoord: texRect.MaxPoint(), Color: color}

	dl.vertices = append(dl.vertices, bl, br, tr, tr, tl, bl)
	dl.stats.QuadCount++

	if n := len(dl.commands); n > 0 {
		last := &dl.commands[n-1]
		if last.Kind == CommandDraw && last.TextureID == textureID {
			last.VertexCount += vertsPerQuad
			return
		}
	}

	dl.commands = append(dl.commands, Command{
		Kind:        CommandDraw,
		TextureID:   textureID,
		VertexCount: vertsPerQuad,
	})
	dl.stats.DrawCommands++
}
